// ABOUTME: Tests for the CSI/SS3 decoder with Kitty CSI u reports as the terminal sends them
// ABOUTME: Checks the keys the line editor and pickers bind, plus sequences that must be dropped

package key

import "testing"

func TestParseKey_KittyReports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Key
	}{
		{name: "ctrl+c", data: "\x1b[99;5u", want: Ctrl('c')},
		{name: "ctrl+shift+z", data: "\x1b[122;6u", want: Key{Type: KeyRune, Rune: 'z', Ctrl: true, Shift: true}},
		{name: "ctrl with shifted codepoint", data: "\x1b[87;5u", want: Ctrl('w')},
		{name: "alt+y", data: "\x1b[121;3u", want: Key{Type: KeyRune, Rune: 'y', Alt: true}},
		{name: "plain rune", data: "\x1b[233u", want: Key{Type: KeyRune, Rune: 'é'}},
		{name: "alternate keys ignored", data: "\x1b[97:65;5u", want: Ctrl('a')},
		{name: "escape", data: "\x1b[27u", want: Key{Type: KeyEscape}},
		{name: "enter", data: "\x1b[13u", want: Key{Type: KeyEnter}},
		{name: "alt+backspace", data: "\x1b[127;3u", want: Key{Type: KeyBackspace, Alt: true}},
		{name: "shift+tab", data: "\x1b[9;2u", want: Key{Type: KeyBackTab, Shift: true}},
		{name: "ctrl+space", data: "\x1b[32;5u", want: Key{Type: KeyRune, Rune: ' ', Ctrl: true}},
		{name: "press event", data: "\x1b[100;3:1u", want: Key{Type: KeyRune, Rune: 'd', Alt: true}},
		{name: "release dropped", data: "\x1b[100;3:3u", want: Key{Type: KeyUnknown}},
		{name: "ctrl+alt+right", data: "\x1b[1;7C", want: Key{Type: KeyRight, Ctrl: true, Alt: true}},
		{name: "shift+page down", data: "\x1b[6;2~", want: Key{Type: KeyPageDown, Shift: true}},
		{name: "insert", data: "\x1b[2~", want: Key{Type: KeyInsert}},
		{name: "flags reply", data: "\x1b[?1u", want: Key{Type: KeyUnknown}},
		{name: "unknown tilde", data: "\x1b[42~", want: Key{Type: KeyUnknown}},
		{name: "cursor key with bad first parameter", data: "\x1b[2;5A", want: Key{Type: KeyUnknown}},
		{name: "zero codepoint", data: "\x1b[0u", want: Key{Type: KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseKey(tt.data); got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestParseKey_KittyMatchesLegacyBindings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kitty  string
		legacy string
	}{
		{kitty: "\x1b[99;5u", legacy: "\x03"},
		{kitty: "\x1b[117;5u", legacy: "\x15"},
		{kitty: "\x1b[98;3u", legacy: "\x1bb"},
		{kitty: "\x1b[127;3u", legacy: "\x1b\x7f"},
		{kitty: "\x1b[27u", legacy: "\x1b"},
	}
	for _, tt := range tests {
		if k, l := ParseKey(tt.kitty), ParseKey(tt.legacy); k != l {
			t.Errorf("ParseKey(%q) = %+v, legacy %q gives %+v", tt.kitty, k, tt.legacy, l)
		}
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, ok := parseParams("97:65;6:1")
	if !ok {
		t.Fatal("parseParams rejected valid input")
	}
	if got := param(params, 0, 1, -1); got != 65 {
		t.Errorf("shifted codepoint = %d, want 65", got)
	}
	if got := param(params, 1, 1, 1); got != 1 {
		t.Errorf("event = %d, want 1", got)
	}
	if got := param(params, 2, 0, 7); got != 7 {
		t.Errorf("missing parameter = %d, want default 7", got)
	}
	if _, ok := parseParams(">1"); ok {
		t.Error("private marker accepted")
	}
}
