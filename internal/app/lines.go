package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/keyline/internal/alias"
)

// RunLines is the non-interactive mode: every line of r is alias expanded
// and the resulting commands are written to w, one per line. Nothing is
// edited or recorded in history.
func (app *Application) RunLines(ctx context.Context, r io.Reader, w io.Writer) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		default:
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		cmds, err := app.expandLine(line)
		if err != nil {
			app.stats.RecordRejected()
			app.logger.Warn("line %q rejected: %v", line, err)
			continue
		}
		app.stats.RecordLine(len(cmds))
		for _, cmd := range cmds {
			if app.opts.OnLine != nil {
				app.opts.OnLine(cmd)
			}
			if _, err := fmt.Fprintln(w, cmd); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func (app *Application) expandLine(line string) ([]string, error) {
	exp, err := app.shell.ExpandAlias(app.owner, line)
	switch {
	case errors.Is(err, alias.ErrNoAlias):
		return []string{line}, nil
	case err != nil:
		return nil, err
	}
	return exp.Commands(), nil
}
