// ABOUTME: YAML theme file loading with validation and default fallback
// ABOUTME: Unset fields inherit from the base builtin so partial files stay complete

package theme

import (
	"fmt"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"
)

// filePalette is the YAML representation of a Palette.
type filePalette struct {
	Prompt      string `yaml:"prompt"`
	Answer      string `yaml:"answer"`
	Hint        string `yaml:"hint"`
	Placeholder string `yaml:"placeholder"`
	Error       string `yaml:"error"`
	Selected    string `yaml:"selected"`
	Unselected  string `yaml:"unselected"`
	Done        string `yaml:"done"`
}

type fileSymbols struct {
	Prompt    string `yaml:"prompt"`
	Done      string `yaml:"done"`
	Error     string `yaml:"error"`
	Cursor    string `yaml:"cursor"`
	Checked   string `yaml:"checked"`
	Unchecked string `yaml:"unchecked"`
}

type fileMessages struct {
	Required    string `yaml:"required"`
	MinLength   string `yaml:"min_length"`
	MaxLength   string `yaml:"max_length"`
	NoMatch     string `yaml:"no_match"`
	MinSelected string `yaml:"min_selected"`
	MaxSelected string `yaml:"max_selected"`
	ConfirmHint string `yaml:"confirm_hint"`
	ConfirmYes  string `yaml:"confirm_yes"`
	ConfirmNo   string `yaml:"confirm_no"`
	Invalid     string `yaml:"invalid"`
	NoItems     string `yaml:"no_items"`
}

type fileTheme struct {
	Name     string       `yaml:"name"`
	Base     string       `yaml:"base"`
	Palette  filePalette  `yaml:"palette"`
	Symbols  fileSymbols  `yaml:"symbols"`
	Messages fileMessages `yaml:"messages"`
}

// LoadFile reads a YAML (or JSON) theme file and returns a Theme.
// Missing fields fall back to the builtin named by "base" (default
// "default"). Colours are validated.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a theme document. See LoadFile.
func Parse(data []byte) (*Theme, error) {
	var ft fileTheme
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	baseName := ft.Base
	if baseName == "" {
		baseName = "default"
	}
	th := Builtin(baseName)
	if th == nil {
		return nil, fmt.Errorf("unknown base theme %q", baseName)
	}

	if ft.Name != "" {
		th.Name = ft.Name
	}
	overlay(&th.Palette, ft.Palette)
	overlay(&th.Symbols, ft.Symbols)
	overlay(&th.Messages, ft.Messages)

	if err := th.Validate(); err != nil {
		return nil, err
	}
	return th, nil
}

// overlay copies every non-empty string field of src onto the field of dst
// with the same name. dst must point to a struct.
func overlay(dst any, src any) {
	sv := reflect.ValueOf(src)
	dv := reflect.ValueOf(dst).Elem()
	st := sv.Type()

	for i := range st.NumField() {
		val := sv.Field(i).String()
		if val == "" {
			continue
		}
		df := dv.FieldByName(st.Field(i).Name)
		if df.IsValid() && df.CanSet() && df.Kind() == reflect.String {
			df.SetString(val)
		}
	}
}
