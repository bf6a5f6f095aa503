// ABOUTME: Conversion of typed text to the value type of a prompt
// ABOUTME: Covers strings, integers, floats, bools, durations and encoding.TextUnmarshaler

package form

import (
	"encoding"
	"strconv"
	"time"
)

// ParseFunc converts typed text to a value.
type ParseFunc[T any] func(string) (T, error)

// parserFor returns the built-in conversion for T, if there is one.
func parserFor[T any]() (ParseFunc[T], bool) {
	var zero T
	var fn func(string) (any, error)
	switch any(&zero).(type) {
	case *string:
		fn = func(s string) (any, error) { return s, nil }
	case *bool:
		fn = func(s string) (any, error) { return strconv.ParseBool(s) }
	case *int:
		fn = func(s string) (any, error) { return strconv.Atoi(s) }
	case *int8:
		fn = signed(8, func(n int64) any { return int8(n) })
	case *int16:
		fn = signed(16, func(n int64) any { return int16(n) })
	case *int32:
		fn = signed(32, func(n int64) any { return int32(n) })
	case *int64:
		fn = signed(64, func(n int64) any { return n })
	case *uint:
		fn = unsigned(0, func(n uint64) any { return uint(n) })
	case *uint8:
		fn = unsigned(8, func(n uint64) any { return uint8(n) })
	case *uint16:
		fn = unsigned(16, func(n uint64) any { return uint16(n) })
	case *uint32:
		fn = unsigned(32, func(n uint64) any { return uint32(n) })
	case *uint64:
		fn = unsigned(64, func(n uint64) any { return n })
	case *float32:
		fn = func(s string) (any, error) {
			f, err := strconv.ParseFloat(s, 32)
			return float32(f), err
		}
	case *float64:
		fn = func(s string) (any, error) { return strconv.ParseFloat(s, 64) }
	case *time.Duration:
		fn = func(s string) (any, error) { return time.ParseDuration(s) }
	case encoding.TextUnmarshaler:
		return func(s string) (T, error) {
			var v T
			err := any(&v).(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
			return v, err
		}, true
	default:
		return nil, false
	}
	return func(s string) (T, error) {
		v, err := fn(s)
		if err != nil {
			var zero T
			return zero, err
		}
		return v.(T), nil
	}, true
}

func signed(bits int, cast func(int64) any) func(string) (any, error) {
	return func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		return cast(n), err
	}
}

func unsigned(bits int, cast func(uint64) any) func(string) (any, error) {
	return func(s string) (any, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		return cast(n), err
	}
}

// resolveParser picks custom when set and the built-in conversion
// otherwise.
func resolveParser[T any](custom ParseFunc[T]) (ParseFunc[T], error) {
	if custom != nil {
		return custom, nil
	}
	fn, ok := parserFor[T]()
	if !ok {
		var zero T
		return nil, invalidConfig("no conversion from text to %T; set Parse", zero)
	}
	return fn, nil
}

// convert runs parse and wraps its failure in a *ConversionError.
func convert[T any](parse ParseFunc[T], s string) (T, error) {
	v, err := parse(s)
	if err != nil {
		return v, &ConversionError{Input: s, Err: err}
	}
	return v, nil
}
