// ABOUTME: Screen driver drawing prompts on a full-screen tcell.Screen grid
// ABOUTME: Cancellation posts an interrupt event so a blocked PollEvent returns promptly

package driver

import (
	"context"
	"fmt"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/pi-prompt/internal/log"
	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

// Screen implements Driver on a tcell.Screen. Output scrolls up when a
// newline is written on the last row.
type Screen struct {
	screen tcell.Screen

	mu        sync.Mutex
	cur       cursor
	visible   bool
	pending   []key.Key
	closeOnce sync.Once
}

var _ Driver = (*Screen)(nil)

// NewScreen creates a tcell screen on the process terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewScreenOn(s)
}

// NewScreenOn initializes s and takes ownership of it. Close finalizes it.
func NewScreenOn(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.Clear()
	w, h := s.Size()
	log.Debug("screen driver: opened %dx%d", w, h)
	return &Screen{screen: s, visible: true}, nil
}

// ReadKey waits for the next key event. Resize events are handled in place.
func (s *Screen) ReadKey(ctx context.Context) (key.Key, error) {
	if k, ok := s.popPending(); ok {
		return k, nil
	}
	if err := ctx.Err(); err != nil {
		return key.Key{}, err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return key.Key{}, ErrClosed
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			if err := ctx.Err(); err != nil {
				return key.Key{}, err
			}
			// Left over from an earlier, already finished read.
			continue
		}
		if k, ok := s.handleEvent(ev); ok {
			return k, nil
		}
	}
}

// KeyAvailable drains already queued events without blocking and reports
// whether any of them was a key.
func (s *Screen) KeyAvailable() bool {
	for {
		s.mu.Lock()
		n := len(s.pending)
		s.mu.Unlock()
		if n > 0 {
			return true
		}
		if !s.screen.HasPendingEvent() {
			return false
		}
		ev := s.screen.PollEvent()
		if ev == nil {
			return false
		}
		if k, ok := s.handleEvent(ev); ok {
			s.mu.Lock()
			s.pending = append(s.pending, k)
			s.mu.Unlock()
		}
	}
}

func (s *Screen) popPending() (key.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return key.Key{}, false
	}
	k := s.pending[0]
	s.pending = s.pending[1:]
	return k, true
}

// handleEvent applies non-key events and converts key events.
func (s *Screen) handleEvent(ev tcell.Event) (key.Key, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := mapKey(ev)
		if !ok {
			log.Debug("screen driver: unmapped key %v", ev.Name())
		}
		return k, ok
	case *tcell.EventResize:
		s.screen.Sync()
		w, h := ev.Size()
		s.mu.Lock()
		s.cur.row = min(s.cur.row, max(h-1, 0))
		s.mu.Unlock()
		log.Debug("screen driver: resized to %dx%d", w, h)
	case *tcell.EventError:
		log.Warn("screen driver: %v", ev)
	}
	return key.Key{}, false
}

// Write draws text at the cursor in the given colour.
func (s *Screen) Write(text string, color theme.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	style := tcell.StyleDefault.Foreground(tcellColor(color))
	w, _ := s.screen.Size()
	runeCells(text, func(r rune, rw int) {
		if rw < 0 {
			s.newlineLocked()
			return
		}
		col, row, _ := s.cur.place(rw, w)
		row = s.fitRowLocked(row)
		s.screen.SetContent(col, row, r, nil, style)
	})
}

// WriteLine moves to the start of the next row, scrolling at the bottom.
func (s *Screen) WriteLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newlineLocked()
}

func (s *Screen) newlineLocked() {
	s.cur.newline()
	s.fitRowLocked(s.cur.row)
}

// fitRowLocked scrolls the grid until row is on screen and returns the
// row's index after scrolling.
func (s *Screen) fitRowLocked(row int) int {
	_, h := s.screen.Size()
	if h <= 0 || row < h {
		return row
	}
	s.scrollLocked(row - h + 1)
	s.cur.row = h - 1
	return h - 1
}

func (s *Screen) scrollLocked(n int) {
	w, h := s.screen.Size()
	for y := range h {
		src := y + n
		for x := range w {
			if src < h {
				mainc, comb, style, _ := s.screen.GetContent(x, src)
				s.screen.SetContent(x, y, mainc, comb, style)
				continue
			}
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

// ClearLine blanks row.
func (s *Screen) ClearLine(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	if row < 0 || row >= h {
		return
	}
	for x := range w {
		s.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}

// Beep rings the terminal bell.
func (s *Screen) Beep() {
	_ = s.screen.Beep()
}

// CursorPosition returns the write position.
func (s *Screen) CursorPosition() (col, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.col, s.cur.row
}

// SetCursorPosition moves the write position, clamped to the screen.
func (s *Screen) SetCursorPosition(col, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	s.cur.col = min(max(col, 0), max(w-1, 0))
	s.cur.row = min(max(row, 0), max(h-1, 0))
}

// BufferWidth returns the screen width in columns.
func (s *Screen) BufferWidth() int {
	w, _ := s.screen.Size()
	return w
}

// BufferHeight returns the screen height in rows.
func (s *Screen) BufferHeight() int {
	_, h := s.screen.Size()
	return h
}

// SetCursorVisible shows or hides the cursor from the next Flush on.
func (s *Screen) SetCursorVisible(visible bool) {
	s.mu.Lock()
	s.visible = visible
	s.mu.Unlock()
}

// CursorVisible reports the requested cursor visibility.
func (s *Screen) CursorVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Flush shows the drawn grid and places the cursor.
func (s *Screen) Flush() error {
	s.mu.Lock()
	s.applyCursorLocked()
	s.mu.Unlock()
	s.screen.Show()
	return nil
}

func (s *Screen) applyCursorLocked() {
	if !s.visible {
		s.screen.HideCursor()
		return
	}
	w, _ := s.screen.Size()
	s.screen.ShowCursor(min(s.cur.col, max(w-1, 0)), s.cur.row)
}

// Reset makes the cursor visible again.
func (s *Screen) Reset() {
	s.mu.Lock()
	s.visible = true
	s.applyCursorLocked()
	s.mu.Unlock()
	s.screen.Show()
}

// Close finalizes the tcell screen. Pending and later reads return ErrClosed.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		s.screen.Fini()
		log.Debug("screen driver: closed")
	})
	return nil
}

// tcellColor maps a theme colour onto tcell.
func tcellColor(c theme.Color) tcell.Color {
	if i, ok := c.Index(); ok {
		return tcell.PaletteColor(i)
	}
	if r, g, b, ok := c.RGB(); ok {
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.ColorDefault
}

// mapKey converts a tcell key event. Ctrl+letter arrives either as a
// control key or as a rune with ModCtrl depending on the terminal.
func mapKey(ev *tcell.EventKey) (key.Key, bool) {
	mods := ev.Modifiers()
	k := key.Key{
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}

	switch ev.Key() {
	case tcell.KeyRune:
		k.Type = key.KeyRune
		k.Rune = ev.Rune()
		k.Shift = false
		if k.Ctrl {
			k.Rune = unicode.ToLower(k.Rune)
		}
	case tcell.KeyEnter:
		k.Type = key.KeyEnter
	case tcell.KeyTab:
		k.Type = key.KeyTab
		if k.Shift {
			k.Type = key.KeyBackTab
		}
	case tcell.KeyBacktab:
		k.Type = key.KeyBackTab
		k.Shift = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		k.Type = key.KeyBackspace
		k.Ctrl = false
	case tcell.KeyDelete:
		k.Type = key.KeyDelete
	case tcell.KeyInsert:
		k.Type = key.KeyInsert
	case tcell.KeyUp:
		k.Type = key.KeyUp
	case tcell.KeyDown:
		k.Type = key.KeyDown
	case tcell.KeyLeft:
		k.Type = key.KeyLeft
	case tcell.KeyRight:
		k.Type = key.KeyRight
	case tcell.KeyHome:
		k.Type = key.KeyHome
	case tcell.KeyEnd:
		k.Type = key.KeyEnd
	case tcell.KeyPgUp:
		k.Type = key.KeyPageUp
	case tcell.KeyPgDn:
		k.Type = key.KeyPageDown
	case tcell.KeyEsc:
		k.Type = key.KeyEscape
	case tcell.KeyCtrlSpace:
		return key.Key{Type: key.KeyRune, Rune: ' ', Ctrl: true, Alt: k.Alt}, true
	default:
		kk := ev.Key()
		if kk < tcell.KeyCtrlA || kk > tcell.KeyCtrlZ {
			return key.Key{}, false
		}
		return key.Key{Type: key.KeyRune, Rune: rune('a' + kk - tcell.KeyCtrlA), Ctrl: true, Alt: k.Alt}, true
	}
	return k, true
}
