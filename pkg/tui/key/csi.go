// ABOUTME: Decodes CSI and SS3 key sequences, including Kitty keyboard protocol CSI u reports
// ABOUTME: The modifier parameter maps onto Key flags; Ctrl+letter keeps the lowercase rune model

package key

import (
	"strconv"
	"strings"
	"unicode"
)

// Bits of the modifier parameter, which terminals send as bits+1.
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

// eventRelease is the Kitty event type sent when a key is let go.
const eventRelease = 3

// cursorFinals maps the final byte of cursor-key sequences, CSI and SS3 alike.
var cursorFinals = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeNumbers maps n in CSI n ~.
var tildeNumbers = map[int]KeyType{
	1: KeyHome,
	2: KeyInsert,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

// codepointKeys maps CSI u codepoints that are keys rather than text.
var codepointKeys = map[int]KeyType{
	9:   KeyTab,
	13:  KeyEnter,
	27:  KeyEscape,
	127: KeyBackspace,
}

// decodeSequence decodes one complete ESC [ or ESC O sequence. It reports
// false for anything it does not recognise. A Kitty key release decodes to
// KeyUnknown so readers drop it.
func decodeSequence(data string) (Key, bool) {
	if len(data) == 3 && data[:2] == "\x1bO" {
		kt, ok := cursorFinals[data[2]]
		return Key{Type: kt}, ok
	}
	if len(data) < 3 || data[:2] != "\x1b[" {
		return Key{}, false
	}

	final := data[len(data)-1]
	params, ok := parseParams(data[2 : len(data)-1])
	if !ok {
		return Key{}, false
	}
	first := param(params, 0, 0, 1)
	mods := param(params, 1, 0, 1) - 1
	if param(params, 1, 1, 1) == eventRelease {
		return Key{Type: KeyUnknown}, true
	}

	var k Key
	switch final {
	case 'u':
		cp := param(params, 0, 0, -1)
		if kt, ok := codepointKeys[cp]; ok {
			k.Type = kt
		} else if cp > 0 && cp <= unicode.MaxRune {
			k = Key{Type: KeyRune, Rune: rune(cp)}
		} else {
			return Key{}, false
		}
		if k.Type == KeyTab && mods&modShift != 0 {
			k.Type = KeyBackTab
		}
	case '~':
		kt, ok := tildeNumbers[first]
		if !ok {
			return Key{}, false
		}
		k.Type = kt
	case 'Z':
		if first != 1 {
			return Key{}, false
		}
		k = Key{Type: KeyBackTab, Shift: true}
	default:
		kt, ok := cursorFinals[final]
		if !ok || first != 1 {
			return Key{}, false
		}
		k.Type = kt
	}

	if mods > 0 {
		k.Shift = k.Shift || mods&modShift != 0
		k.Alt = mods&modAlt != 0
		k.Ctrl = mods&modCtrl != 0
	}
	if k.Type == KeyRune && k.Ctrl {
		k.Rune = unicode.ToLower(k.Rune)
	}
	return k, true
}

// parseParams splits CSI parameters on ';' and sub-parameters on ':'.
// Empty values are -1. Private markers such as '?' or '>' are rejected.
func parseParams(body string) ([][]int, bool) {
	fields := strings.Split(body, ";")
	params := make([][]int, len(fields))
	for i, f := range fields {
		subs := strings.Split(f, ":")
		params[i] = make([]int, len(subs))
		for j, s := range subs {
			if s == "" {
				params[i][j] = -1
				continue
			}
			if s[0] < '0' || s[0] > '9' {
				return nil, false
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, false
			}
			params[i][j] = n
		}
	}
	return params, true
}

// param returns sub-parameter j of parameter i, or def when it is absent.
func param(params [][]int, i, j, def int) int {
	if i >= len(params) || j >= len(params[i]) || params[i][j] < 0 {
		return def
	}
	return params[i][j]
}
