package dispatch

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"snipbook-cli/internal/model"
)

func TestDispatch_LockedRefuses(t *testing.T) {
	var buf bytes.Buffer
	d := Dispatcher{Stdout: &buf}
	err := d.Dispatch("rm -rf /tmp/x", model.ExecModeLocked)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("locked mode must not echo: %q", buf.String())
	}
}

func TestDispatch_TerminalEchoes(t *testing.T) {
	var buf bytes.Buffer
	d := Dispatcher{Stdout: &buf}
	// The clipboard hand-off depends on host tooling and may fail in a
	// bare environment; the echo must land either way.
	_ = d.Dispatch("git status", model.ExecModeTerminal)
	if got := buf.String(); !strings.Contains(got, "git status") {
		t.Fatalf("stdout = %q", got)
	}
}

func TestDispatch_UnknownModeErrors(t *testing.T) {
	d := Dispatcher{}
	if err := d.Dispatch("x", model.ExecMode("teleport")); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}
