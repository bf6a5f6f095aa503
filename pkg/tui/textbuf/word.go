// ABOUTME: Word-wise motion and deletion on Buffer plus kill-to-boundary helpers
// ABOUTME: Words are runs of non-whitespace; buffer ends act as implicit boundaries

package textbuf

import "unicode"

// MoveToPreviousWord skips whitespace before the cursor, then the word
// before that.
func (b *Buffer) MoveToPreviousWord() {
	b.cursor = b.previousWordBoundary()
}

// MoveToNextWord skips whitespace after the cursor, then the word after that.
func (b *Buffer) MoveToNextWord() {
	b.cursor = b.nextWordBoundary()
}

// BackspaceWord deletes from the previous word boundary to the cursor and
// returns the deleted text.
func (b *Buffer) BackspaceWord() string {
	start := b.previousWordBoundary()
	return b.cut(start, b.cursor)
}

// DeleteWord deletes from the cursor to the next word boundary and returns
// the deleted text.
func (b *Buffer) DeleteWord() string {
	end := b.nextWordBoundary()
	return b.cut(b.cursor, end)
}

// DeleteToStart deletes everything before the cursor and returns it.
func (b *Buffer) DeleteToStart() string {
	return b.cut(0, b.cursor)
}

// DeleteToEnd deletes everything from the cursor on and returns it.
func (b *Buffer) DeleteToEnd() string {
	return b.cut(b.cursor, len(b.units))
}

// cut removes units[start:end], leaves the cursor at start and returns the
// removed text.
func (b *Buffer) cut(start, end int) string {
	if start >= end {
		return ""
	}
	removed := decode(b.units[start:end])
	b.units = append(b.units[:start], b.units[end:]...)
	b.cursor = start
	return removed
}

func (b *Buffer) previousWordBoundary() int {
	pos := b.cursor
	for pos > 0 && b.spaceBefore(pos) {
		pos -= b.unitsBefore(pos)
	}
	for pos > 0 && !b.spaceBefore(pos) {
		pos -= b.unitsBefore(pos)
	}
	return pos
}

func (b *Buffer) nextWordBoundary() int {
	pos := b.cursor
	for pos < len(b.units) && b.spaceAt(pos) {
		pos += b.unitsAt(pos)
	}
	for pos < len(b.units) && !b.spaceAt(pos) {
		pos += b.unitsAt(pos)
	}
	return pos
}

// Surrogates are never whitespace, so a single unit check is enough.
func (b *Buffer) spaceBefore(pos int) bool { return unicode.IsSpace(rune(b.units[pos-1])) }

func (b *Buffer) spaceAt(pos int) bool { return unicode.IsSpace(rune(b.units[pos])) }
