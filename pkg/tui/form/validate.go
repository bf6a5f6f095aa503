// ABOUTME: Validators run in order on a converted value when Enter is pressed
// ABOUTME: Built-ins return *ValidationError so the theme's message catalogue words them

package form

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// Validator checks a value. The first validator returning an error stops
// the prompt from finishing and its message is shown.
type Validator[T any] func(T) error

// Required rejects the zero value.
func Required[T comparable]() Validator[T] {
	return func(v T) error {
		var zero T
		if v == zero {
			return &ValidationError{Kind: ValidationRequired}
		}
		return nil
	}
}

// MinLength rejects strings with fewer than n runes.
func MinLength(n int) Validator[string] {
	return func(s string) error {
		if utf8.RuneCountInString(s) < n {
			return &ValidationError{Kind: ValidationMinLength, Limit: n}
		}
		return nil
	}
}

// MaxLength rejects strings with more than n runes.
func MaxLength(n int) Validator[string] {
	return func(s string) error {
		if utf8.RuneCountInString(s) > n {
			return &ValidationError{Kind: ValidationMaxLength, Limit: n}
		}
		return nil
	}
}

// Matches rejects strings the regular expression does not match. It
// panics if pattern does not compile.
func Matches(pattern string) Validator[string] {
	re := regexp.MustCompile(pattern)
	return func(s string) error {
		if !re.MatchString(s) {
			return &ValidationError{Kind: ValidationNoMatch}
		}
		return nil
	}
}

// Custom rejects values for which ok returns false, with message as the
// error text.
func Custom[T any](ok func(T) bool, message string) Validator[T] {
	err := errors.New(message)
	return func(v T) error {
		if !ok(v) {
			return err
		}
		return nil
	}
}

func validate[T any](v T, validators []Validator[T]) error {
	for _, fn := range validators {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}
