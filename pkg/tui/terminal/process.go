// ABOUTME: ProcessTerminal implements Terminal on a pair of files and golang.org/x/term.
// ABOUTME: Manages raw mode state and delegates platform-specific read and resize handling.

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by an input and output file.
type ProcessTerminal struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	stopSig  func()
}

// NewProcessTerminal returns a ProcessTerminal on os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewFileTerminal(os.Stdin, os.Stdout)
}

// NewFileTerminal returns a ProcessTerminal reading from in and writing to
// out. Both are usually the same tty.
func NewFileTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// IsTerminal reports whether both files are attached to a terminal.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

// EnterRawMode switches the input to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// OnResize registers a callback invoked when the terminal is resized.
// Passing nil stops listening.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	t.resizeFn = fn
	stop := t.stopSig
	t.stopSig = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	if fn != nil {
		t.startResizeListener()
	}
}
