// ABOUTME: Defines the Key type and ParseKey for terminal keyboard input parsing.
// ABOUTME: Handles printable runes and control characters; escape sequences go to the CSI/SS3 decoder.

package key

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
// Ctrl+letter combinations arrive as KeyRune with Ctrl set and a lowercase Rune.
type Key struct {
	Type  KeyType
	Rune  rune // For printable characters and Ctrl/Alt combinations
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events a prompt can receive.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyInsert                   // Insert key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyUnknown                  // Unrecognized input
)

// Ctrl returns the Key for Ctrl+r.
func Ctrl(r rune) Key {
	return Key{Type: KeyRune, Rune: unicode.ToLower(r), Ctrl: true}
}

// IsCtrl reports whether k is Ctrl+r.
func (k Key) IsCtrl(r rune) bool {
	return k.Type == KeyRune && k.Ctrl && k.Rune == unicode.ToLower(r)
}

// IsAlt reports whether k is Alt+r without Ctrl.
func (k Key) IsAlt(r rune) bool {
	return k.Type == KeyRune && k.Alt && !k.Ctrl && k.Rune == r
}

// IsPrintable reports whether k inserts text: a printable rune with no
// Ctrl or Alt modifier.
func (k Key) IsPrintable() bool {
	return k.Type == KeyRune && !k.Ctrl && !k.Alt && unicode.IsPrint(k.Rune)
}

// ParseKey parses raw terminal input data into a Key.
// It handles single runes, control characters, and escape sequences.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	// Single-byte fast path
	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	// Escape sequence path
	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	// Multi-byte UTF-8 rune
	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d, b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b == 0x00:
		return Key{Type: KeyRune, Rune: ' ', Ctrl: true}
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1))
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence decodes control sequences and falls back to Alt+key.
func parseEscapeSequence(data string) Key {
	if k, ok := decodeSequence(data); ok {
		return k
	}

	// Alt+<key>: ESC followed by one complete key.
	rest := data[1:]
	if rest[0] == 0x1b {
		return Key{Type: KeyUnknown}
	}
	k := ParseKey(rest)
	if k.Type == KeyUnknown {
		return k
	}
	k.Alt = true
	return k
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyUnknown:   "Unknown",
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	var name string
	if k.Type == KeyRune {
		name = string(k.Rune)
		if k.Ctrl {
			name = strings.ToUpper(name)
		}
	} else if n, ok := keyTypeNames[k.Type]; ok {
		name = n
	} else {
		return "Unknown"
	}

	var b strings.Builder
	if k.Ctrl {
		b.WriteString("Ctrl+")
	}
	if k.Alt {
		b.WriteString("Alt+")
	}
	if k.Shift && k.Type != KeyRune && k.Type != KeyBackTab {
		b.WriteString("Shift+")
	}
	b.WriteString(name)
	return b.String()
}
