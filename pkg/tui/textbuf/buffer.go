// ABOUTME: Cursor-addressable UTF-16 text buffer for single-line prompt editing
// ABOUTME: Insert/delete/motion never split a surrogate pair; word motion splits on whitespace

package textbuf

import (
	"unicode"
	"unicode/utf16"

	"github.com/mauromedda/pi-prompt/pkg/tui/width"
)

// Buffer holds UTF-16 code units and a cursor measured in code units.
// The cursor always sits on a code point boundary in [0, Len()].
type Buffer struct {
	units  []uint16
	cursor int
}

// State is an immutable copy of a Buffer, used for undo.
type State struct {
	units  []uint16
	cursor int
}

// New returns a Buffer holding s with the cursor at the end.
func New(s string) *Buffer {
	b := &Buffer{units: make([]uint16, 0, 64)}
	b.SetText(s)
	return b
}

// Len returns the number of UTF-16 code units in the buffer.
func (b *Buffer) Len() int { return len(b.units) }

// RuneCount returns the number of code points in the buffer.
func (b *Buffer) RuneCount() int {
	n := 0
	for i := 0; i < len(b.units); i += b.unitsAt(i) {
		n++
	}
	return n
}

// Cursor returns the cursor position in code units.
func (b *Buffer) Cursor() int { return b.cursor }

// IsStart reports whether the cursor is at the beginning of the buffer.
func (b *Buffer) IsStart() bool { return b.cursor == 0 }

// IsEnd reports whether the cursor is at the end of the buffer.
func (b *Buffer) IsEnd() bool { return b.cursor == len(b.units) }

// String returns the whole buffer as UTF-8.
func (b *Buffer) String() string { return decode(b.units) }

// ToBackwardString returns the text before the cursor.
func (b *Buffer) ToBackwardString() string { return decode(b.units[:b.cursor]) }

// ToForwardString returns the text from the cursor to the end.
func (b *Buffer) ToForwardString() string { return decode(b.units[b.cursor:]) }

// Width returns the display width of the whole buffer.
func (b *Buffer) Width() int { return width.UTF16Width(b.units) }

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.units = b.units[:0]
	b.cursor = 0
}

// SetText replaces the content with s and moves the cursor to the end.
func (b *Buffer) SetText(s string) {
	b.units = append(b.units[:0], utf16.Encode([]rune(s))...)
	b.cursor = len(b.units)
}

// Snapshot captures the current content and cursor.
func (b *Buffer) Snapshot() State {
	units := make([]uint16, len(b.units))
	copy(units, b.units)
	return State{units: units, cursor: b.cursor}
}

// Restore replaces the content and cursor with a previous snapshot.
func (b *Buffer) Restore(s State) {
	b.units = append(b.units[:0], s.units...)
	b.cursor = min(max(s.cursor, 0), len(b.units))
}

// Insert inserts r at the cursor and advances past it.
func (b *Buffer) Insert(r rune) {
	var enc []uint16
	if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar || r2 != unicode.ReplacementChar {
		enc = []uint16{uint16(r1), uint16(r2)}
	} else {
		enc = []uint16{uint16(r)}
	}
	b.insertUnits(enc)
}

// InsertString inserts s at the cursor and advances past it.
func (b *Buffer) InsertString(s string) {
	if s == "" {
		return
	}
	b.insertUnits(utf16.Encode([]rune(s)))
}

func (b *Buffer) insertUnits(enc []uint16) {
	b.units = append(b.units, enc...)
	copy(b.units[b.cursor+len(enc):], b.units[b.cursor:len(b.units)-len(enc)])
	copy(b.units[b.cursor:], enc)
	b.cursor += len(enc)
}

// Backspace removes the code point before the cursor. It reports whether
// anything was removed.
func (b *Buffer) Backspace() bool {
	if b.IsStart() {
		return false
	}
	n := b.unitsBefore(b.cursor)
	b.units = append(b.units[:b.cursor-n], b.units[b.cursor:]...)
	b.cursor -= n
	return true
}

// Delete removes the code point at the cursor. It reports whether anything
// was removed.
func (b *Buffer) Delete() bool {
	if b.IsEnd() {
		return false
	}
	n := b.unitsAt(b.cursor)
	b.units = append(b.units[:b.cursor], b.units[b.cursor+n:]...)
	return true
}

// MoveBackward moves the cursor one code point to the left.
func (b *Buffer) MoveBackward() {
	if !b.IsStart() {
		b.cursor -= b.unitsBefore(b.cursor)
	}
}

// MoveForward moves the cursor one code point to the right.
func (b *Buffer) MoveForward() {
	if !b.IsEnd() {
		b.cursor += b.unitsAt(b.cursor)
	}
}

// MoveToStart moves the cursor to the beginning of the buffer.
func (b *Buffer) MoveToStart() { b.cursor = 0 }

// MoveToEnd moves the cursor to the end of the buffer.
func (b *Buffer) MoveToEnd() { b.cursor = len(b.units) }

// unitsAt returns 2 when a surrogate pair starts at i, else 1.
func (b *Buffer) unitsAt(i int) int {
	if i+1 < len(b.units) && isHighSurrogate(b.units[i]) && isLowSurrogate(b.units[i+1]) {
		return 2
	}
	return 1
}

// unitsBefore returns 2 when a surrogate pair ends at i, else 1.
func (b *Buffer) unitsBefore(i int) int {
	if i >= 2 && isLowSurrogate(b.units[i-1]) && isHighSurrogate(b.units[i-2]) {
		return 2
	}
	return 1
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }

func isLowSurrogate(u uint16) bool { return u >= 0xDC00 && u < 0xE000 }

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}
