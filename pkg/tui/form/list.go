// ABOUTME: List prompt collecting free-form entries one line at a time
// ABOUTME: Enter adds the typed entry; Enter on an empty line finishes once the minimum is met

package form

import (
	"context"
	"strings"

	"github.com/mauromedda/pi-prompt/pkg/tui/key"
)

// ListOptions configures List.
type ListOptions[T any] struct {
	Message string
	// Minimum and Maximum bound the number of entries. A zero Maximum
	// means no upper bound.
	Minimum int
	Maximum int
	// Validators run on every entry before it is added.
	Validators []Validator[T]
	Parse      ParseFunc[T]
}

// List asks for a list of values, one per line.
func List[T any](ctx context.Context, p *Prompter, opts ListOptions[T]) ([]T, error) {
	if err := checkBounds(opts.Minimum, opts.Maximum); err != nil {
		return nil, err
	}
	parse, err := resolveParser(opts.Parse)
	if err != nil {
		return nil, err
	}
	s := &listSession[T]{opts: opts, parse: parse, edit: newEditor("")}
	if err := p.run(ctx, "list", s); err != nil {
		return nil, err
	}
	return s.values, nil
}

type listSession[T any] struct {
	opts   ListOptions[T]
	parse  ParseFunc[T]
	edit   *editor
	values []T
	texts  []string
}

func (s *listSession[T]) render(f *frame) {
	f.question(s.opts.Message)
	s.edit.render(f, f.theme.Palette.Answer, nil)
	if len(s.texts) > 0 {
		f.WriteLine()
		f.Write(strings.Join(s.texts, ", "), f.theme.Palette.Answer)
	}
}

func (s *listSession[T]) handle(k key.Key) bool {
	if k.Type == key.KeyBackspace && !k.Alt && s.edit.Empty() {
		if len(s.values) == 0 {
			return false
		}
		s.values = s.values[:len(s.values)-1]
		s.texts = s.texts[:len(s.texts)-1]
		return true
	}
	return s.edit.handle(k)
}

func (s *listSession[T]) submit() (bool, error) {
	text := s.edit.String()
	if text == "" {
		if len(s.values) < s.opts.Minimum {
			return false, &ValidationError{Kind: ValidationMinSelected, Limit: s.opts.Minimum}
		}
		return true, nil
	}
	if s.opts.Maximum > 0 && len(s.values) >= s.opts.Maximum {
		return false, &ValidationError{Kind: ValidationMaxSelected, Limit: s.opts.Maximum}
	}
	v, err := convert(s.parse, text)
	if err != nil {
		return false, err
	}
	if err := validate(v, s.opts.Validators); err != nil {
		return false, err
	}
	s.values = append(s.values, v)
	s.texts = append(s.texts, text)
	s.edit.Reset()
	return false, nil
}

func (s *listSession[T]) finish(f *frame) {
	f.answered(s.opts.Message, strings.Join(s.texts, ", "))
}
