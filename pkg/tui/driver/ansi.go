// ABOUTME: ANSI driver drawing prompts inline below the shell prompt, keeping scrollback intact
// ABOUTME: Tracks the cursor on an unbounded row canvas and moves it with relative CSI sequences

package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pi-prompt/internal/log"
	"github.com/mauromedda/pi-prompt/pkg/tui/input"
	"github.com/mauromedda/pi-prompt/pkg/tui/internal/pool"
	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/terminal"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

const (
	keyQueueSize = 64

	syncBegin   = "\x1b[?2026h"
	syncEnd     = "\x1b[?2026l"
	showCursor  = "\x1b[?25h"
	hideCursor  = "\x1b[?25l"
	eraseLine   = "\x1b[2K"
	pasteOn     = "\x1b[?2004h"
	pasteOff    = "\x1b[?2004l"
	fallbackCol = 80
	fallbackRow = 24

	// Kitty keyboard protocol: push and pop the disambiguate flag.
	kittyPush = "\x1b[>1u"
	kittyPop  = "\x1b[<u"
)

// ANSIOption configures an ANSI driver.
type ANSIOption func(*ANSI)

// WithColorProfile overrides the colour profile detected from the environment.
func WithColorProfile(p termenv.Profile) ANSIOption {
	return func(a *ANSI) { a.profile = p }
}

// ANSI implements Driver on a raw-mode terminal without taking over the
// screen. Row 0 is the row the cursor was on when the driver was created.
type ANSI struct {
	term     terminal.Terminal
	profile  termenv.Profile
	renderer *lipgloss.Renderer
	styles   map[theme.Color]lipgloss.Style

	mu      sync.Mutex
	out     *strings.Builder
	cur     cursor
	maxRow  int
	visible bool
	width   int
	height  int

	keys    chan key.Key
	done    chan struct{}
	readErr error
	cancel  context.CancelFunc
	group   *errgroup.Group

	closeOnce sync.Once
	closeErr  error
}

var _ Driver = (*ANSI)(nil)

// NewANSI puts t into raw mode and starts reading keys from it.
func NewANSI(t terminal.Terminal, opts ...ANSIOption) (*ANSI, error) {
	a := &ANSI{
		term:    t,
		profile: termenv.EnvColorProfile(),
		styles:  make(map[theme.Color]lipgloss.Style),
		out:     pool.GetStringBuilder(),
		visible: true,
		keys:    make(chan key.Key, keyQueueSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.renderer = lipgloss.NewRenderer(t)
	a.renderer.SetColorProfile(a.profile)

	if err := t.EnterRawMode(); err != nil {
		pool.PutStringBuilder(a.out)
		return nil, fmt.Errorf("starting ansi driver: %w", err)
	}

	a.width, a.height = fallbackCol, fallbackRow
	if w, h, err := t.Size(); err == nil && w > 0 && h > 0 {
		a.width, a.height = w, h
	}
	t.OnResize(func(w, h int) {
		a.mu.Lock()
		a.width, a.height = w, h
		a.mu.Unlock()
		log.Debug("ansi driver: resized to %dx%d", w, h)
	})

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	a.cancel = cancel
	a.group = g
	g.Go(func() error {
		defer close(a.done)
		defer terminal.RecoverGoroutine(t)

		err := input.NewReader(t).Run(gctx, a.keys)
		a.mu.Lock()
		a.readErr = err
		a.mu.Unlock()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		log.Debug("ansi driver: input stopped: %v", err)
		return err
	})

	if _, err := t.Write([]byte(pasteOn + kittyPush)); err != nil {
		log.Warn("ansi driver: enabling paste and key modes: %v", err)
	}
	log.Debug("ansi driver: opened %dx%d", a.width, a.height)
	return a, nil
}

// ReadKey returns the next decoded key.
func (a *ANSI) ReadKey(ctx context.Context) (key.Key, error) {
	select {
	case k := <-a.keys:
		return k, nil
	default:
	}

	select {
	case k := <-a.keys:
		return k, nil
	case <-ctx.Done():
		return key.Key{}, ctx.Err()
	case <-a.done:
		select {
		case k := <-a.keys:
			return k, nil
		default:
		}
		a.mu.Lock()
		err := a.readErr
		a.mu.Unlock()
		if err == nil || errors.Is(err, context.Canceled) {
			return key.Key{}, ErrClosed
		}
		return key.Key{}, fmt.Errorf("%w: %w", ErrClosed, err)
	}
}

// KeyAvailable reports whether a decoded key is queued.
func (a *ANSI) KeyAvailable() bool {
	return len(a.keys) > 0
}

func (a *ANSI) style(c theme.Color) lipgloss.Style {
	if st, ok := a.styles[c]; ok {
		return st
	}
	st := a.renderer.NewStyle()
	if c != theme.Default {
		st = st.Foreground(lipgloss.Color(string(c)))
	}
	a.styles[c] = st
	return st
}

// Write queues text in the given colour. The terminal wraps on its own; the
// tracked cursor follows the same rules.
func (a *ANSI) Write(text string, color theme.Color) {
	a.mu.Lock()
	defer a.mu.Unlock()

	seg := pool.GetStringBuilder()
	defer pool.PutStringBuilder(seg)

	emit := func() {
		if seg.Len() == 0 {
			return
		}
		if color == theme.Default {
			a.out.WriteString(seg.String())
		} else {
			a.out.WriteString(a.style(color).Render(seg.String()))
		}
		seg.Reset()
	}

	runeCells(text, func(r rune, rw int) {
		if rw < 0 {
			emit()
			a.newlineLocked()
			return
		}
		a.cur.place(rw, a.width)
		a.maxRow = max(a.maxRow, a.cur.row)
		seg.WriteRune(r)
	})
	emit()
}

// WriteLine moves to column 0 of the next row.
func (a *ANSI) WriteLine() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.newlineLocked()
}

func (a *ANSI) newlineLocked() {
	a.out.WriteString("\r\n")
	a.cur.newline()
	a.maxRow = max(a.maxRow, a.cur.row)
}

// moveLocked emits the relative movement from the tracked cursor to
// (col, row). Rows below the lowest row drawn so far are created with
// newlines so the terminal scrolls when needed.
func (a *ANSI) moveLocked(col, row int) {
	var num [20]byte
	switch {
	case row < a.cur.row:
		a.out.WriteString("\x1b[")
		a.out.Write(strconv.AppendInt(num[:0], int64(a.cur.row-row), 10))
		a.out.WriteByte('A')
	case row > a.cur.row:
		if down := min(row, a.maxRow) - a.cur.row; down > 0 {
			a.out.WriteString("\x1b[")
			a.out.Write(strconv.AppendInt(num[:0], int64(down), 10))
			a.out.WriteByte('B')
		}
		for i := max(a.maxRow, a.cur.row); i < row; i++ {
			a.out.WriteString("\r\n")
		}
		a.maxRow = max(a.maxRow, row)
	}

	col = min(max(col, 0), max(a.width-1, 0))
	a.out.WriteByte('\r')
	if col > 0 {
		a.out.WriteString("\x1b[")
		a.out.Write(strconv.AppendInt(num[:0], int64(col), 10))
		a.out.WriteByte('C')
	}
	a.cur = cursor{col: col, row: row}
}

// ClearLine erases row and returns to the previous position.
func (a *ANSI) ClearLine(row int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if row < 0 {
		return
	}
	saved := a.cur
	a.moveLocked(0, row)
	a.out.WriteString(eraseLine)
	a.moveLocked(saved.col, saved.row)
}

// Beep queues the terminal bell.
func (a *ANSI) Beep() {
	a.mu.Lock()
	a.out.WriteByte('\a')
	a.mu.Unlock()
}

// CursorPosition returns the tracked cursor.
func (a *ANSI) CursorPosition() (col, row int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cur.col, a.cur.row
}

// SetCursorPosition moves the cursor. Rows are unbounded below.
func (a *ANSI) SetCursorPosition(col, row int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.moveLocked(col, max(row, 0))
}

// BufferWidth returns the terminal width from the last size report.
func (a *ANSI) BufferWidth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width
}

// BufferHeight returns the terminal height from the last size report.
func (a *ANSI) BufferHeight() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// SetCursorVisible queues a cursor show or hide sequence.
func (a *ANSI) SetCursorVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.visible = visible
	if visible {
		a.out.WriteString(showCursor)
	} else {
		a.out.WriteString(hideCursor)
	}
}

// CursorVisible reports the last requested visibility.
func (a *ANSI) CursorVisible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// Flush writes queued output as one synchronized update.
func (a *ANSI) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked()
}

func (a *ANSI) flushLocked() error {
	if a.out.Len() == 0 {
		return nil
	}
	frame := pool.GetBytesBuffer()
	defer pool.PutBytesBuffer(frame)
	frame.WriteString(syncBegin)
	frame.WriteString(a.out.String())
	frame.WriteString(syncEnd)
	a.out.Reset()
	if _, err := a.term.Write(frame.Bytes()); err != nil {
		return fmt.Errorf("flushing ansi output: %w", err)
	}
	return nil
}

// Reset restores default colours and shows the cursor.
func (a *ANSI) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.visible = true
	a.out.WriteString(terminal.ResetSequence)
	if err := a.flushLocked(); err != nil {
		log.Warn("ansi driver: reset: %v", err)
	}
}

// Close resets the terminal, stops the input reader and leaves raw mode.
func (a *ANSI) Close() error {
	a.closeOnce.Do(func() {
		a.Reset()
		a.term.OnResize(nil)
		if _, err := a.term.Write([]byte(kittyPop + pasteOff)); err != nil {
			log.Warn("ansi driver: disabling paste and key modes: %v", err)
		}

		a.cancel()
		var errs []error
		if err := a.group.Wait(); err != nil && !errors.Is(err, io.EOF) {
			errs = append(errs, fmt.Errorf("input reader: %w", err))
		}
		if err := a.term.ExitRawMode(); err != nil {
			errs = append(errs, err)
		}

		a.mu.Lock()
		pool.PutStringBuilder(a.out)
		a.out = new(strings.Builder)
		a.mu.Unlock()

		a.closeErr = errors.Join(errs...)
		log.Debug("ansi driver: closed")
	})
	return a.closeErr
}
