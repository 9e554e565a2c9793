// Package renderer provides the drawing surface the line editor and its
// popups write to.
//
// The editor never touches a frame buffer directly. It positions text,
// fills runs of cells, saves and restores rectangles of the screen and
// places the cursor through the Renderer interface:
//
//	┌─────────────────────────────────────────┐
//	│      editor / popup (Renderer users)    │
//	├─────────────────────────────────────────┤
//	│            Surface (Renderer)           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	_ = b.Init()
//	s := renderer.NewSurface(b)
//	s.WriteText(core.ScreenPos{Row: 0, Col: 0}, []rune("C:\\> "), core.DefaultStyle())
//	s.Flush()
package renderer
