// ABOUTME: Windows fallbacks for ProcessTerminal resize handling and input reads.
// ABOUTME: Windows does not use SIGWINCH; reads block and only observe ctx between calls.

//go:build windows

package terminal

import (
	"context"
	"fmt"
)

// startResizeListener is a no-op on Windows.
func (t *ProcessTerminal) startResizeListener() {}

// Read reads from the input file. A blocked read is not interrupted by ctx.
func (t *ProcessTerminal) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := t.in.Read(p)
	if err != nil {
		return n, fmt.Errorf("reading terminal input: %w", err)
	}
	return n, nil
}
