// ABOUTME: Offscreen render buffer: styled lines drawn to a driver in one pass and erased precisely
// ABOUTME: Tracks a pushed cursor and the physical rows the last frame used, recycled via sync.Pool

package tui

import (
	"strings"
	"sync"

	"github.com/mauromedda/pi-prompt/pkg/tui/driver"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
	"github.com/mauromedda/pi-prompt/pkg/tui/width"
)

var bufferPool = sync.Pool{
	New: func() any {
		return &RenderBuffer{
			lines: make([][]Span, 1, 16),
		}
	},
}

// AcquireBuffer gets a RenderBuffer drawing on d from the pool.
func AcquireBuffer(d driver.Driver) *RenderBuffer {
	buf := bufferPool.Get().(*RenderBuffer)
	buf.driver = d
	buf.ClearBuffer()
	buf.bottom, buf.written = 0, 0
	return buf
}

// ReleaseBuffer returns a RenderBuffer to the pool.
func ReleaseBuffer(buf *RenderBuffer) {
	if buf == nil {
		return
	}
	buf.ClearBuffer()
	buf.driver = nil
	bufferPool.Put(buf)
}

// Span is a run of text drawn in one colour.
type Span struct {
	Text  string
	Color theme.Color
}

// RenderBuffer collects one frame of output. A frame is built with Write,
// WriteLine and PushCursor, drawn with RenderToConsole and removed with
// Clear before the next frame is drawn in its place.
//
// The buffer is owned by a single prompt and is not safe for concurrent use.
type RenderBuffer struct {
	driver driver.Driver
	lines  [][]Span

	pushed    bool
	pushLeft  int
	pushTop   int
	pushSpans int
	bottom    int
	written   int
}

// NewRenderBuffer returns an empty buffer drawing on d.
func NewRenderBuffer(d driver.Driver) *RenderBuffer {
	return &RenderBuffer{driver: d, lines: make([][]Span, 1, 16)}
}

// Write appends text to the current line. Newlines in text start new lines.
func (b *RenderBuffer) Write(text string, color theme.Color) {
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			b.appendSpan(text, color)
			return
		}
		b.appendSpan(text[:i], color)
		b.WriteLine()
		text = text[i+1:]
	}
}

func (b *RenderBuffer) appendSpan(text string, color theme.Color) {
	if text == "" {
		return
	}
	last := len(b.lines) - 1
	b.lines[last] = append(b.lines[last], Span{Text: text, Color: color})
}

// WriteLine starts a new line.
func (b *RenderBuffer) WriteLine() {
	b.lines = append(b.lines, nil)
}

// PushCursor marks the end of the current line as the place the cursor is
// shown after rendering. Only the first call per frame counts.
func (b *RenderBuffer) PushCursor() {
	if b.pushed {
		return
	}
	b.pushed = true
	b.pushTop = len(b.lines) - 1
	b.pushSpans = len(b.lines[b.pushTop])
	b.pushLeft = lineWidth(b.lines[b.pushTop])
}

// PushedCursor returns the pushed cursor as a column sum within its line and
// the line index, and whether one was pushed this frame.
func (b *RenderBuffer) PushedCursor() (left, top int, ok bool) {
	return b.pushLeft, b.pushTop, b.pushed
}

// ClearBuffer discards the frame and the pushed cursor. The row bookkeeping
// of the last render is kept so it can still be erased.
func (b *RenderBuffer) ClearBuffer() {
	for i := range b.lines {
		b.lines[i] = b.lines[i][:0]
	}
	b.lines = b.lines[:1]
	b.pushed = false
	b.pushLeft, b.pushTop, b.pushSpans = 0, 0, 0
}

// Width returns the driver's current width in columns.
func (b *RenderBuffer) Width() int {
	return b.driver.BufferWidth()
}

// Lines returns the number of logical lines in the frame.
func (b *RenderBuffer) Lines() int {
	return len(b.lines)
}

// String returns the frame's text without colours, lines joined by "\n".
func (b *RenderBuffer) String() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range line {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// WrittenLineCount returns how many physical rows the frame occupies above
// its last row at the driver's current width.
func (b *RenderBuffer) WrittenLineCount() int {
	return b.rowsBefore(len(b.lines)) - 1
}

// rowsBefore returns the physical rows used by the first n lines.
func (b *RenderBuffer) rowsBefore(n int) int {
	w := b.driver.BufferWidth()
	rows := 0
	for _, line := range b.lines[:n] {
		_, extra := layout(line, w)
		rows += extra + 1
	}
	return rows
}

// RenderToConsole draws the frame at the driver cursor and flushes it. The
// cursor stays hidden unless one was pushed.
func (b *RenderBuffer) RenderToConsole() error {
	d := b.driver
	d.SetCursorVisible(false)
	for i, line := range b.lines {
		if i > 0 {
			d.WriteLine()
		}
		for _, s := range line {
			d.Write(s.Text, s.Color)
		}
	}

	_, b.bottom = d.CursorPosition()
	b.written = b.WrittenLineCount()

	if b.pushed {
		w := d.BufferWidth()
		left, down := layout(b.lines[b.pushTop][:b.pushSpans], w)
		if w > 0 && left >= w {
			left, down = 0, down+1
		}
		top := b.bottom - b.written + b.rowsBefore(b.pushTop) + down
		if top > b.bottom {
			// The cursor sits right after a full last row.
			d.WriteLine()
			_, b.bottom = d.CursorPosition()
			b.written++
			top = b.bottom
		}
		d.SetCursorPosition(left, top)
		d.SetCursorVisible(true)
	}
	return d.Flush()
}

// ClearConsole blanks written+1 rows ending at bottom and leaves the cursor
// at the start of the topmost of them.
func (b *RenderBuffer) ClearConsole(bottom, written int) {
	for i := 0; i <= written; i++ {
		b.driver.ClearLine(bottom - i)
	}
	b.driver.SetCursorPosition(0, max(bottom-written, 0))
}

// Clear erases the rows drawn by the last RenderToConsole.
func (b *RenderBuffer) Clear() {
	b.ClearConsole(b.bottom, b.written)
}

// Bottom returns the driver row the last render ended on.
func (b *RenderBuffer) Bottom() int {
	return b.bottom
}

// LastWrittenLineCount returns WrittenLineCount as of the last render.
func (b *RenderBuffer) LastWrittenLineCount() int {
	return b.written
}

// lineWidth returns the columns a line takes once drawn. Control characters
// are dropped by the drivers and take no space.
func lineWidth(line []Span) int {
	w := 0
	for _, s := range line {
		for _, r := range s.Text {
			if r < 0x20 || r == 0x7f {
				continue
			}
			w += width.RuneWidth(r)
		}
	}
	return w
}

// layout follows the drivers' wrapping of spans at terminal width w and
// returns the final column and how many rows below the first it ends on.
// A wide rune that does not fit wraps first, so a line may need more rows
// than its width alone suggests.
func layout(spans []Span, w int) (col, row int) {
	if w <= 0 {
		return lineWidth(spans), 0
	}
	for _, s := range spans {
		for _, r := range s.Text {
			if r < 0x20 || r == 0x7f {
				continue
			}
			rw := width.RuneWidth(r)
			if col+rw > w {
				col = 0
				row++
			}
			col += rw
		}
	}
	return col, row
}
