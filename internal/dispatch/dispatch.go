// Package dispatch is the boundary between the snippet engine and the
// host sinks: after argument resolution the final command string goes
// to exactly one of the terminal sink, the editor sink, or a locked
// no-op. It also owns the bounded most-recent-first history.
package dispatch

import (
	"errors"
	"fmt"
	"io"

	"snipbook-cli/internal/model"
)

// ErrLocked is returned when execution is disabled (locked mode is
// used for reorganization-only sessions).
var ErrLocked = errors.New("execution is locked")

type Dispatcher struct {
	// Stdout receives the resolved command in terminal mode so the
	// host shell has it on screen even when the clipboard hand-off
	// fails.
	Stdout io.Writer
}

// Dispatch hands a fully resolved command to the sink for mode.
// Callers must never pass a partially substituted command here;
// cancellation aborts before dispatch.
func (d Dispatcher) Dispatch(resolved string, mode model.ExecMode) error {
	switch mode {
	case model.ExecModeLocked:
		return ErrLocked
	case model.ExecModeEditor:
		return openInEditor(resolved)
	case model.ExecModeTerminal, "":
		if d.Stdout != nil {
			fmt.Fprintln(d.Stdout, resolved)
		}
		if err := CopyToClipboard(resolved); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown exec mode: %s", mode)
	}
}
