// ABOUTME: Confirm prompt answering yes or no
// ABOUTME: Accepts y/yes/n/no in any case; an empty line takes the default when one is set

package form

import (
	"context"
	"errors"
	"strings"

	"github.com/mauromedda/pi-prompt/pkg/tui/key"
)

var errNotYesNo = errors.New("expected yes or no")

// ConfirmOptions configures Confirm.
type ConfirmOptions struct {
	Message string
	// Default answers an empty line. Without it an empty line is rejected.
	Default *bool
}

// Confirm asks a yes/no question.
func Confirm(ctx context.Context, p *Prompter, opts ConfirmOptions) (bool, error) {
	s := &confirmSession{opts: opts, edit: newEditor("")}
	if err := p.run(ctx, "confirm", s); err != nil {
		return false, err
	}
	return s.value, nil
}

type confirmSession struct {
	opts  ConfirmOptions
	edit  *editor
	value bool
}

func (s *confirmSession) render(f *frame) {
	f.question(s.opts.Message)
	f.hint(confirmHint(f, s.opts.Default) + " ")
	s.edit.render(f, f.theme.Palette.Answer, nil)
}

func confirmHint(f *frame, def *bool) string {
	switch {
	case def == nil:
		return f.theme.Messages.ConfirmHint
	case *def:
		return "(Y/n)"
	default:
		return "(y/N)"
	}
}

func (s *confirmSession) handle(k key.Key) bool {
	return s.edit.handle(k)
}

func (s *confirmSession) submit() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s.edit.String())) {
	case "y", "yes":
		s.value = true
	case "n", "no":
		s.value = false
	case "":
		if s.opts.Default == nil {
			return false, &ValidationError{Kind: ValidationRequired}
		}
		s.value = *s.opts.Default
	default:
		text := s.edit.String()
		s.edit.Reset()
		return false, &ConversionError{Input: text, Err: errNotYesNo}
	}
	return true, nil
}

func (s *confirmSession) finish(f *frame) {
	answer := f.theme.Messages.ConfirmNo
	if s.value {
		answer = f.theme.Messages.ConfirmYes
	}
	f.answered(s.opts.Message, answer)
}
