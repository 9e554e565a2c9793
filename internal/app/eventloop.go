package app

import (
	"context"
	"errors"

	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/core"
	"github.com/dshills/keyline/internal/session"
)

// isQuitKey reports Ctrl+C and Ctrl+D typed on an empty line.
func isQuitKey(ev key.Event, line string) bool {
	if line != "" || !ev.IsRune() || !ev.Modifiers.HasCtrl() {
		return false
	}
	return ev.Rune == 'c' || ev.Rune == 'C' || ev.Rune == 'd' || ev.Rune == 'D'
}

// readEvents moves backend key events into q until the backend is
// interrupted. wake is signalled after every event.
func (app *Application) readEvents(b backend.Backend, q *input.Queue, wake chan<- struct{}) {
	defer func() {
		q.Close()
		notify(wake)
	}()
	for {
		ev := b.PollEvent()
		switch ev.Type {
		case backend.EventKey:
			q.Push(ev.Key)
			notify(wake)
		case backend.EventResize:
			app.logger.Debug("terminal resized to %dx%d", ev.Width, ev.Height)
		case backend.EventInterrupt, backend.EventNone:
			return
		}
	}
}

func notify(wake chan<- struct{}) {
	select {
	case wake <- struct{}{}:
	default:
	}
}

// eventLoop reads lines until the user quits. Each completed line is
// handed to OnLine and echoed below the prompt, then a new prompt is
// drawn.
func (app *Application) eventLoop(ctx context.Context, b backend.Backend, surface *renderer.Surface, sess *session.Session) error {
	q := input.NewQueue()
	wake := make(chan struct{}, 1)
	go app.readEvents(b, q, wake)
	defer b.PostEvent(backend.Event{Type: backend.EventInterrupt})

	surface.SetCursor(core.ScreenPos{})
	if done, err := app.prompt(surface, sess); done || err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			sess.Abort()
			return nil
		case <-app.done:
			sess.Abort()
			return nil
		case <-wake:
		}

		for {
			before := q.Len()
			timer := StartTimer()
			res := sess.Pump(q)
			app.stats.RecordKeys(before-q.Len(), timer.Elapsed())

			quit, err := app.handleResult(surface, sess, res)
			if quit || err != nil {
				return err
			}
			if res.Status == session.StatusAwaitingInput && !errors.Is(res.Err, session.ErrLineFull) {
				break
			}
		}
	}
}

// handleResult acts on one read result. It reports quit once the read
// was interrupted or the input closed.
func (app *Application) handleResult(surface *renderer.Surface, sess *session.Session, res session.Result) (bool, error) {
	switch res.Status {
	case session.StatusAwaitingInput:
		if errors.Is(res.Err, session.ErrLineFull) {
			app.stats.RecordTruncated()
			app.logger.Debug("line full for %s", app.owner)
		}
		return false, nil
	case session.StatusRejected:
		app.stats.RecordRejected()
		return false, nil
	case session.StatusAborted:
		if errors.Is(res.Err, session.ErrInterrupted) || errors.Is(res.Err, session.ErrAborted) {
			app.echo(surface, "")
			return true, nil
		}
		return true, res.Err
	}

	app.stats.RecordLine(res.Lines)
	app.deliver(surface, res.Text)
	return app.prompt(surface, sess)
}

// prompt draws the prompt on a fresh row and starts the next read. Lines
// left pending by a multi-command alias complete at once.
func (app *Application) prompt(surface *renderer.Surface, sess *session.Session) (bool, error) {
	for {
		pos := app.lineStart(surface)
		n := surface.WriteText(pos, []rune(app.owner+"> "), core.DefaultStyle())
		origin := pos.Add(0, n)
		surface.SetCursor(origin)
		surface.Flush()

		res, err := sess.Begin(session.ReadOptions{
			Origin:    origin,
			Echo:      true,
			Interrupt: isQuitKey,
		})
		if err != nil {
			return true, err
		}
		if res.Status == session.StatusAwaitingInput {
			return false, nil
		}

		// A pending line: show it as if typed, then run it.
		surface.WriteText(origin, []rune(res.Text), core.DefaultStyle())
		surface.SetCursor(core.ScreenPos{Row: origin.Row + 1})
		app.stats.RecordLine(res.Lines)
		app.deliver(surface, res.Text)
	}
}

// deliver hands cmd to OnLine and echoes it.
func (app *Application) deliver(surface *renderer.Surface, cmd string) {
	app.logger.Debug("line: %q", cmd)
	if app.opts.OnLine != nil {
		app.opts.OnLine(cmd)
	}
	app.echo(surface, cmd)
}

// echo writes text on the row at the cursor and moves below it.
func (app *Application) echo(surface *renderer.Surface, text string) {
	pos := app.lineStart(surface)
	surface.WriteText(pos, []rune(text), core.DefaultStyle())
	surface.SetCursor(pos.Add(1, 0))
	surface.Flush()
}

// lineStart returns column 0 of the cursor row, scrolling the screen
// when the cursor sits below the last row.
func (app *Application) lineStart(surface *renderer.Surface) core.ScreenPos {
	_, height := surface.Size()
	pos := core.ScreenPos{Row: max(surface.Cursor().Row, 0)}
	if pos.Row >= height {
		surface.ScrollUp(pos.Row - height + 1)
		pos.Row = height - 1
	}
	return pos
}
