// ABOUTME: Reader turns raw terminal bytes into key.Key events on a channel.
// ABOUTME: Handles split escape sequences, lone-ESC timeout (~50ms), and bracketed paste as runes.

package input

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/pi-prompt/pkg/tui/key"
)

const (
	readBufSize  = 256
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"
)

// EscTimeout is how long a pending escape prefix waits for the rest of its
// sequence before being delivered as it stands.
var EscTimeout = 50 * time.Millisecond

// Source is a cancellable byte source, typically a terminal.Terminal.
type Source interface {
	Read(ctx context.Context, p []byte) (int, error)
}

// Reader decodes key events from a Source.
type Reader struct {
	src     Source
	buf     []byte
	pasting bool
}

// NewReader returns a Reader decoding keys from src.
func NewReader(src Source) *Reader {
	return &Reader{
		src: src,
		buf: make([]byte, 0, readBufSize),
	}
}

// Run reads until ctx is done or the source fails, sending each decoded key
// on out. It returns ctx.Err() on cancellation, io.EOF when the source is
// exhausted, or the wrapped read error.
func (r *Reader) Run(ctx context.Context, out chan<- key.Key) error {
	tmp := make([]byte, readBufSize)
	for {
		rctx, cancel := ctx, context.CancelFunc(func() {})
		if len(r.buf) > 0 {
			rctx, cancel = context.WithTimeout(ctx, EscTimeout)
		}
		n, err := r.src.Read(rctx, tmp)
		cancel()
		if n > 0 {
			r.buf = append(r.buf, tmp[:n]...)
		}

		switch {
		case err == nil:
			if !r.dispatch(ctx, out, false) {
				return ctx.Err()
			}
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			// Nothing completed the pending prefix in time.
			if !r.dispatch(ctx, out, true) {
				return ctx.Err()
			}
		case errors.Is(err, io.EOF):
			r.dispatch(ctx, out, true)
			return io.EOF
		default:
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// dispatch sends every complete key in the buffer. With final set,
// incomplete prefixes are flushed too. It returns false if ctx ended.
func (r *Reader) dispatch(ctx context.Context, out chan<- key.Key, final bool) bool {
	for len(r.buf) > 0 {
		n, k, ok := r.next(final)
		if n == 0 {
			break
		}
		r.buf = r.buf[n:]
		if !ok {
			continue
		}
		select {
		case out <- k:
		case <-ctx.Done():
			return false
		}
	}
	if len(r.buf) == 0 {
		r.buf = r.buf[:0]
	}
	return true
}

// next decodes one unit from the front of the buffer. It returns the bytes
// consumed (0 means wait for more input), the key, and whether the key
// should be delivered.
func (r *Reader) next(final bool) (int, key.Key, bool) {
	if r.pasting {
		return r.nextPasted(final)
	}
	if bytes.HasPrefix(r.buf, []byte(bracketStart)) {
		r.pasting = true
		return len(bracketStart), key.Key{}, false
	}

	if r.buf[0] == 0x1b {
		n, complete := sequenceLength(r.buf)
		if !complete {
			if !final {
				return 0, key.Key{}, false
			}
			// Deliver the ESC alone and re-parse whatever followed it.
			return 1, key.Key{Type: key.KeyEscape}, true
		}
		k := key.ParseKey(string(r.buf[:n]))
		return n, k, k.Type != key.KeyUnknown
	}

	if !utf8.FullRune(r.buf) {
		if !final {
			return 0, key.Key{}, false
		}
		return 1, key.Key{}, false
	}
	_, size := utf8.DecodeRune(r.buf)
	k := key.ParseKey(string(r.buf[:size]))
	return size, k, k.Type != key.KeyUnknown
}

// nextPasted decodes pasted content. Text is delivered as plain rune keys;
// line breaks and tabs become spaces and other control bytes are dropped.
func (r *Reader) nextPasted(final bool) (int, key.Key, bool) {
	if bytes.HasPrefix(r.buf, []byte(bracketEnd)) {
		r.pasting = false
		return len(bracketEnd), key.Key{}, false
	}
	if !final && r.buf[0] == 0x1b && len(r.buf) < len(bracketEnd) &&
		bytes.HasPrefix([]byte(bracketEnd), r.buf) {
		return 0, key.Key{}, false
	}
	if !utf8.FullRune(r.buf) {
		if !final {
			return 0, key.Key{}, false
		}
		return 1, key.Key{}, false
	}

	ch, size := utf8.DecodeRune(r.buf)
	switch {
	case ch == '\r' || ch == '\n' || ch == '\t':
		ch = ' '
	case ch < 0x20 || ch == 0x7f || ch == utf8.RuneError:
		return size, key.Key{}, false
	}
	return size, key.Key{Type: key.KeyRune, Rune: ch}, true
}

// sequenceLength returns the length of the escape sequence at the start of
// buf and whether it is complete.
func sequenceLength(buf []byte) (int, bool) {
	if len(buf) < 2 {
		return len(buf), false
	}
	switch buf[1] {
	case '[':
		for i := 2; i < len(buf); i++ {
			c := buf[i]
			switch {
			case c >= 0x40 && c <= 0x7e:
				return i + 1, true
			case c >= 0x20 && c <= 0x3f:
			default:
				// Malformed: drop what was read so far.
				return i, true
			}
		}
		return len(buf), false
	case 'O':
		if len(buf) >= 3 {
			return 3, true
		}
		return len(buf), false
	case 0x1b:
		return 1, true
	}
	if !utf8.FullRune(buf[1:]) {
		return len(buf), false
	}
	_, size := utf8.DecodeRune(buf[1:])
	return 1 + size, true
}
