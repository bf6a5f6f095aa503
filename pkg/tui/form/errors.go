// ABOUTME: Error values surfaced by prompts: cancellation, configuration, validation and conversion
// ABOUTME: Validation errors carry a kind and limit so the active theme can word them

package form

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

var (
	// ErrCanceled matches every *CanceledError.
	ErrCanceled = errors.New("prompt canceled")
	// ErrInvalidConfig wraps options that can never produce a valid prompt.
	ErrInvalidConfig = errors.New("invalid prompt configuration")

	errInterrupted = errors.New("interrupted")
)

// CanceledError reports which prompt was active when it was canceled and
// why: the context's error, an interrupt key or a closed driver.
type CanceledError struct {
	Prompt string
	Cause  error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("%s prompt canceled: %v", e.Prompt, e.Cause)
}

// Is makes errors.Is(err, ErrCanceled) true.
func (e *CanceledError) Is(target error) bool {
	return target == ErrCanceled
}

func (e *CanceledError) Unwrap() error {
	return e.Cause
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// ValidationKind identifies a built-in validation rule.
type ValidationKind int

const (
	ValidationRequired ValidationKind = iota
	ValidationMinLength
	ValidationMaxLength
	ValidationNoMatch
	ValidationMinSelected
	ValidationMaxSelected
)

// ValidationError is returned by the built-in validators and by the count
// checks of multi-value prompts.
type ValidationError struct {
	Kind  ValidationKind
	Limit int
}

func (e *ValidationError) Error() string {
	return e.Message(theme.DefaultMessages())
}

// Message words the error with the given catalogue.
func (e *ValidationError) Message(m theme.Messages) string {
	switch e.Kind {
	case ValidationMinLength:
		return fmt.Sprintf(m.MinLength, e.Limit)
	case ValidationMaxLength:
		return fmt.Sprintf(m.MaxLength, e.Limit)
	case ValidationNoMatch:
		return m.NoMatch
	case ValidationMinSelected:
		return fmt.Sprintf(m.MinSelected, e.Limit)
	case ValidationMaxSelected:
		return fmt.Sprintf(m.MaxSelected, e.Limit)
	default:
		return m.Required
	}
}

// ConversionError reports typed text that could not be converted.
type ConversionError struct {
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %q: %v", e.Input, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// reason returns the conversion failure without the input echo and, for
// strconv errors, without the function name.
func (e *ConversionError) reason() string {
	var ne *strconv.NumError
	if errors.As(e.Err, &ne) {
		return ne.Err.Error()
	}
	return e.Err.Error()
}

// errorMessage words err for display below a prompt.
func errorMessage(err error, m theme.Messages) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message(m)
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return fmt.Sprintf(m.Invalid, ce.reason())
	}
	return err.Error()
}
