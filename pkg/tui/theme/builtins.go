// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

var builtins = map[string]func() *Theme{
	"default": func() *Theme {
		return &Theme{
			Name:     "default",
			Palette:  DefaultPalette(),
			Symbols:  DefaultSymbols(),
			Messages: DefaultMessages(),
		}
	},
	"dark": func() *Theme {
		return &Theme{
			Name: "dark",
			Palette: Palette{
				Prompt:      "15",
				Answer:      "117",
				Hint:        "240",
				Placeholder: "240",
				Error:       "203",
				Selected:    "114",
				Unselected:  "250",
				Done:        "114",
			},
			Symbols:  DefaultSymbols(),
			Messages: DefaultMessages(),
		}
	},
	"light": func() *Theme {
		return &Theme{
			Name: "light",
			Palette: Palette{
				Prompt:      "0",
				Answer:      "25",
				Hint:        "249",
				Placeholder: "249",
				Error:       "160",
				Selected:    "28",
				Unselected:  "238",
				Done:        "28",
			},
			Symbols:  DefaultSymbols(),
			Messages: DefaultMessages(),
		}
	},
	"monochrome": func() *Theme {
		return &Theme{
			Name:     "monochrome",
			Symbols:  ASCIISymbols(),
			Messages: DefaultMessages(),
		}
	},
}

// Builtin returns a fresh copy of a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	fn, ok := builtins[name]
	if !ok {
		return nil
	}
	return fn()
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
