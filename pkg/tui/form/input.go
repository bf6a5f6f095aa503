// ABOUTME: Input and Password prompts: one edited line converted and validated on Enter
// ABOUTME: Input converts to any supported type; Password echoes a mask instead of the text

package form

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mauromedda/pi-prompt/pkg/tui/key"
)

// InputOptions configures Input.
type InputOptions[T any] struct {
	Message string
	// Default is the text used when Enter is pressed on an empty line. It
	// is converted like typed text.
	Default     string
	Placeholder string
	Validators  []Validator[T]
	// Parse overrides the built-in conversion.
	Parse ParseFunc[T]
}

// Input asks for a line of text and returns it converted to T.
func Input[T any](ctx context.Context, p *Prompter, opts InputOptions[T]) (T, error) {
	var zero T
	parse, err := resolveParser(opts.Parse)
	if err != nil {
		return zero, err
	}
	s := &inputSession[T]{
		message:     opts.Message,
		def:         opts.Default,
		placeholder: opts.Placeholder,
		validators:  opts.Validators,
		parse:       parse,
		edit:        newEditor(""),
	}
	if err := p.run(ctx, "input", s); err != nil {
		return zero, err
	}
	return s.value, nil
}

// PasswordOptions configures Password.
type PasswordOptions struct {
	Message     string
	Placeholder string
	Validators  []Validator[string]
}

// Password asks for a secret. Each typed rune is echoed as the Prompter's
// mask string.
func Password(ctx context.Context, p *Prompter, opts PasswordOptions) (string, error) {
	mask := p.mask
	s := &inputSession[string]{
		message:     opts.Message,
		placeholder: opts.Placeholder,
		validators:  opts.Validators,
		parse:       func(s string) (string, error) { return s, nil },
		edit:        newEditor(""),
		mask:        &mask,
	}
	if err := p.run(ctx, "password", s); err != nil {
		return "", err
	}
	return s.value, nil
}

type inputSession[T any] struct {
	message     string
	def         string
	placeholder string
	validators  []Validator[T]
	parse       ParseFunc[T]
	edit        *editor
	mask        *string

	value  T
	answer string
}

func (s *inputSession[T]) render(f *frame) {
	f.question(s.message)
	if s.def != "" {
		f.hint("(" + s.def + ") ")
	}
	if s.edit.Empty() && s.placeholder != "" {
		f.PushCursor()
		f.Write(s.placeholder, f.theme.Palette.Placeholder)
		return
	}
	s.edit.render(f, f.theme.Palette.Answer, s.mask)
}

func (s *inputSession[T]) handle(k key.Key) bool {
	return s.edit.handle(k)
}

func (s *inputSession[T]) submit() (bool, error) {
	text := s.edit.String()
	if text == "" {
		text = s.def
	}
	v, err := convert(s.parse, text)
	if err != nil {
		return false, err
	}
	if err := validate(v, s.validators); err != nil {
		return false, err
	}
	s.value = v
	s.answer = text
	if s.mask != nil {
		s.answer = strings.Repeat(*s.mask, utf8.RuneCountInString(text))
	}
	return true, nil
}

func (s *inputSession[T]) finish(f *frame) {
	f.answered(s.message, s.answer)
}
