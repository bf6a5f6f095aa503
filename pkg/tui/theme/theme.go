// ABOUTME: Prompt theme types: Color, Palette, Symbols, Messages, Theme
// ABOUTME: Colors are driver-neutral names; each driver maps them to its own styling

package theme

import (
	"fmt"
	"strconv"
)

// Color names a foreground colour. The empty Color is the terminal default;
// "0" to "255" select an ANSI palette entry; "#rrggbb" is a true colour.
type Color string

// Default leaves the terminal's current foreground colour in place.
const Default Color = ""

// Common ANSI palette entries.
const (
	Black   Color = "0"
	Red     Color = "1"
	Green   Color = "2"
	Yellow  Color = "3"
	Blue    Color = "4"
	Magenta Color = "5"
	Cyan    Color = "6"
	White   Color = "7"
	Gray    Color = "8"
)

// Index returns the ANSI palette index of c.
func (c Color) Index() (int, bool) {
	if c == "" || c[0] == '#' {
		return 0, false
	}
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return n, true
}

// RGB returns the components of a "#rrggbb" colour.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(string(c[1:]), 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// Validate reports an error when c is neither default, an index nor "#rrggbb".
func (c Color) Validate() error {
	if c == Default {
		return nil
	}
	if _, ok := c.Index(); ok {
		return nil
	}
	if _, _, _, ok := c.RGB(); ok {
		return nil
	}
	return fmt.Errorf("invalid color %q", string(c))
}

// Palette maps the semantic roles of a prompt to colours.
type Palette struct {
	Prompt      Color // question mark and message
	Answer      Color // committed answer and typed text
	Hint        Color // key hints and page indicator
	Placeholder Color // shown while the input is empty
	Error       Color // validation and conversion errors
	Selected    Color // highlighted item and its cursor
	Unselected  Color // other items
	Done        Color // finish symbol
}

// Symbols are the glyphs drawn around prompts and items.
type Symbols struct {
	Prompt    string
	Done      string
	Error     string
	Cursor    string
	Checked   string
	Unchecked string
}

// Messages are the user-facing strings emitted by prompts and validators.
// Format verbs are documented per field.
type Messages struct {
	Required    string
	MinLength   string // %d: minimum length
	MaxLength   string // %d: maximum length
	NoMatch     string
	MinSelected string // %d: minimum count
	MaxSelected string // %d: maximum count
	ConfirmHint string
	ConfirmYes  string
	ConfirmNo   string
	Invalid     string // %s: conversion error
	NoItems     string
}

// Theme bundles everything a prompt needs to draw itself.
type Theme struct {
	Name     string
	Palette  Palette
	Symbols  Symbols
	Messages Messages
}

// DefaultPalette returns the palette of the default theme.
func DefaultPalette() Palette {
	return Palette{
		Prompt:      Default,
		Answer:      Cyan,
		Hint:        Gray,
		Placeholder: Gray,
		Error:       Red,
		Selected:    Green,
		Unselected:  Default,
		Done:        Green,
	}
}

// DefaultSymbols returns the Unicode symbol set.
func DefaultSymbols() Symbols {
	return Symbols{
		Prompt:    "?",
		Done:      "✔",
		Error:     "»",
		Cursor:    "›",
		Checked:   "◉",
		Unchecked: "○",
	}
}

// ASCIISymbols returns a symbol set that renders on any terminal.
func ASCIISymbols() Symbols {
	return Symbols{
		Prompt:    "?",
		Done:      "v",
		Error:     ">>",
		Cursor:    ">",
		Checked:   "[x]",
		Unchecked: "[ ]",
	}
}

// DefaultMessages returns the English message catalogue.
func DefaultMessages() Messages {
	return Messages{
		Required:    "Value is required",
		MinLength:   "Value must be at least %d characters",
		MaxLength:   "Value must be at most %d characters",
		NoMatch:     "Value does not match the expected format",
		MinSelected: "Select at least %d items",
		MaxSelected: "Select at most %d items",
		ConfirmHint: "(y/n)",
		ConfirmYes:  "Yes",
		ConfirmNo:   "No",
		Invalid:     "Invalid value: %s",
		NoItems:     "No matching items",
	}
}

// Validate checks every palette colour.
func (t *Theme) Validate() error {
	colors := []Color{
		t.Palette.Prompt, t.Palette.Answer, t.Palette.Hint, t.Palette.Placeholder,
		t.Palette.Error, t.Palette.Selected, t.Palette.Unselected, t.Palette.Done,
	}
	for _, c := range colors {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("theme %q: %w", t.Name, err)
		}
	}
	return nil
}
