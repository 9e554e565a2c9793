// Package session ties the line-editing packages together.
//
// ShellState is the process-wide state of a shell front-end: the pool of
// command histories, the alias registry, the owner lookup and the lock
// that serializes every mutation of them. A Session is one attached
// client process. It runs reads: Begin starts one, and SubmitKey or Pump
// feed it key events until it reports a completed line.
//
// A read never blocks. When a Source has no event, Pump returns
// StatusAwaitingInput and the read keeps its state (edit buffer, cursor,
// open popups) until the next call:
//
//	sess, _ := shell.Attach(pid, session.WithRenderer(surface))
//	sess.Begin(session.ReadOptions{Echo: true, Origin: prompt})
//	for {
//		res := sess.Pump(queue)
//		if res.Status != session.StatusAwaitingInput {
//			break
//		}
//		// wait for more input
//	}
//
// Lines produced by a multi-line alias, and the rest of a line cut to
// ReadOptions.MaxLength, are kept as pending input and returned by the
// following reads before any key is consumed.
package session
