// ABOUTME: Defines the Terminal interface for raw mode, size queries, input and output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

import "context"

// ResetSequence resets colours and shows the cursor.
const ResetSequence = "\x1b[0m\x1b[?25h"

// Terminal abstracts low-level terminal operations: raw mode,
// size queries, input, output writing, and resize notifications.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
	// Read blocks until input is available or ctx is done. It returns
	// ctx.Err() when ctx ends first.
	Read(ctx context.Context, p []byte) (n int, err error)
	OnResize(fn func(width, height int))
}
