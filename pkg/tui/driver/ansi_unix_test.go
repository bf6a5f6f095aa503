// ABOUTME: Runs the ANSI driver on a real pseudo-terminal from creack/pty
// ABOUTME: Verifies keys typed on the master side arrive through raw mode and Close restores the tty

//go:build unix

package driver

import (
	"context"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/terminal"
)

func TestANSI_PTY(t *testing.T) {
	t.Parallel()

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer func() {
		_ = tty.Close()
		_ = ptmx.Close()
	}()
	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 50, Rows: 10}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}
	before, err := term.GetState(int(tty.Fd()))
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}

	a, err := NewANSI(terminal.NewFileTerminal(tty, tty))
	if err != nil {
		t.Fatalf("NewANSI: %v", err)
	}
	if a.BufferWidth() != 50 || a.BufferHeight() != 10 {
		t.Errorf("size = %dx%d, want 50x10", a.BufferWidth(), a.BufferHeight())
	}

	// Drain the master so driver writes never block.
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, err := ptmx.Read(buf); err != nil {
				return
			}
		}
	}()

	if _, err := ptmx.Write([]byte("\x1b[B")); err != nil {
		t.Fatalf("writing to master: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	k, err := a.ReadKey(ctx)
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if k.Type != key.KeyDown {
		t.Errorf("ReadKey = %+v, want Down", k)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	after, err := term.GetState(int(tty.Fd()))
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if *after != *before {
		t.Error("terminal state not restored after Close")
	}
}
