// ABOUTME: Driver interface abstracting the console a prompt draws on and reads keys from
// ABOUTME: Also holds the cursor model both drivers share: deferred wrap and wide-rune wrapping

package driver

import (
	"context"
	"errors"

	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
	"github.com/mauromedda/pi-prompt/pkg/tui/width"
)

// ErrClosed is returned by ReadKey after the driver was closed or its input
// reached end of file.
var ErrClosed = errors.New("driver closed")

// Driver is a console that can be written to with a tracked cursor and read
// from one key at a time. Rows and columns are zero based.
//
// Writing advances the cursor by the display width of each rune. A line that
// is exactly BufferWidth columns wide occupies one row: the wrap is deferred
// until the next rune is written. A wide rune that does not fit in the
// current row wraps first.
type Driver interface {
	// ReadKey blocks until a key is pressed or ctx is done. It returns
	// ctx.Err() on cancellation and ErrClosed once no more input can arrive.
	ReadKey(ctx context.Context) (key.Key, error)
	// KeyAvailable reports whether ReadKey would return without blocking.
	KeyAvailable() bool

	Write(text string, color theme.Color)
	// WriteLine moves the cursor to column 0 of the next row.
	WriteLine()
	// ClearLine blanks the given row without moving the cursor.
	ClearLine(row int)
	Beep()

	CursorPosition() (col, row int)
	SetCursorPosition(col, row int)
	BufferWidth() int
	BufferHeight() int
	SetCursorVisible(visible bool)
	CursorVisible() bool

	// Flush pushes pending output to the terminal.
	Flush() error
	// Reset restores default colours and a visible cursor.
	Reset()
	Close() error
}

// cursor tracks the write position over a grid of the given width. col may
// equal width, meaning a wrap is pending.
type cursor struct {
	col, row int
}

// place returns where a rune of width w starts, wrapping first when it does
// not fit, and advances past it.
func (c *cursor) place(w, gridWidth int) (col, row int, wrapped bool) {
	if gridWidth > 0 && c.col+w > gridWidth {
		c.col = 0
		c.row++
		wrapped = true
	}
	col, row = c.col, c.row
	c.col += w
	return col, row, wrapped
}

// newline moves to column 0 of the next row.
func (c *cursor) newline() {
	c.col = 0
	c.row++
}

// runeCells splits text into printable runes with their widths. Control
// characters other than newline are dropped; newline is reported as -1.
func runeCells(text string, fn func(r rune, w int)) {
	for _, r := range text {
		switch {
		case r == '\n':
			fn(r, -1)
		case r < 0x20 || r == 0x7f:
		default:
			fn(r, width.RuneWidth(r))
		}
	}
}
