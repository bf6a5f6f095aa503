// ABOUTME: Test harness running prompts on the Screen driver over a tcell simulation screen
// ABOUTME: Covers Prompter construction, cancellation and terminal restoration

package form

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/pi-prompt/pkg/tui/driver"
	"github.com/mauromedda/pi-prompt/pkg/tui/terminal"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

type harness struct {
	t   *testing.T
	p   *Prompter
	d   *driver.Screen
	sim tcell.SimulationScreen
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	d, err := driver.NewScreenOn(sim)
	if err != nil {
		t.Fatalf("NewScreenOn: %v", err)
	}
	sim.SetSize(40, 12)
	t.Cleanup(func() { _ = d.Close() })

	p, err := New(d, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{t: t, p: p, d: d, sim: sim}
}

// send posts events in order from a goroutine, retrying while the event
// queue is full.
func (h *harness) send(evs ...*tcell.EventKey) {
	ctx := h.t.Context()
	go func() {
		for _, ev := range evs {
			for h.sim.PostEvent(ev) != nil {
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Millisecond):
				}
			}
		}
	}()
}

// row returns the text on row y with trailing blanks removed.
func (h *harness) row(y int) string {
	w, _ := h.sim.Size()
	var b strings.Builder
	for x := 0; x < w; {
		r, _, _, cw := h.sim.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
		x += max(cw, 1)
	}
	return strings.TrimRight(b.String(), " ")
}

// eventually polls until row y reads want and reports whether it did.
func (h *harness) eventually(y int, want string) bool {
	deadline := time.Now().Add(2 * time.Second)
	for h.row(y) != want {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}

// waitRow fails the test unless row y comes to read want.
func (h *harness) waitRow(y int, want string) {
	h.t.Helper()
	if !h.eventually(y, want) {
		h.t.Fatalf("row %d = %q, want %q", y, h.row(y), want)
	}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func typed(s string) []*tcell.EventKey {
	evs := make([]*tcell.EventKey, 0, len(s))
	for _, r := range s {
		evs = append(evs, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return evs
}

func press(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func ctrl(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(r-'a'), 0, tcell.ModCtrl)
}

func keys(parts ...any) []*tcell.EventKey {
	var evs []*tcell.EventKey
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			evs = append(evs, typed(v)...)
		case tcell.Key:
			evs = append(evs, press(v))
		case *tcell.EventKey:
			evs = append(evs, v)
		}
	}
	return evs
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	sim := tcell.NewSimulationScreen("UTF-8")
	d, err := driver.NewScreenOn(sim)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })

	bad := theme.Builtin("default")
	bad.Palette.Error = "chartreuse"

	tests := []struct {
		name string
		d    driver.Driver
		opts []Option
	}{
		{name: "nil driver"},
		{name: "negative page size", d: d, opts: []Option{WithPageSize(-1)}},
		{name: "invalid theme colour", d: d, opts: []Option{WithTheme(bad)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.d, tt.opts...); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	h := newHarness(t, WithTheme(nil), WithExit(nil))

	if h.p.Theme().Name != "default" {
		t.Errorf("theme = %q, want default", h.p.Theme().Name)
	}
	if h.p.Driver() != h.d {
		t.Error("Driver() is not the driver passed to New")
	}
	if h.p.exit == nil || h.p.mask != "*" || h.p.pageSize != 7 || !h.p.loop {
		t.Errorf("defaults = exit %v mask %q page %d loop %v", h.p.exit != nil, h.p.mask, h.p.pageSize, h.p.loop)
	}
}

func TestPrompt_CancelByContext(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	h.send(typed("ab")...)
	go func() {
		h.eventually(0, "? Name ab")
		cancel()
	}()

	_, err := Input(ctx, h.p, InputOptions[string]{Message: "Name"})
	if !errors.Is(err, ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want canceled wrapping context.Canceled", err)
	}
	var ce *CanceledError
	if !errors.As(err, &ce) || ce.Prompt != "input" {
		t.Errorf("CanceledError = %+v", ce)
	}
	if !h.d.CursorVisible() {
		t.Error("cursor left hidden after cancel")
	}
	if _, _, visible := h.sim.GetCursor(); !visible {
		t.Error("screen cursor hidden after cancel")
	}
	if col, row := h.d.CursorPosition(); col != 0 || row != 1 {
		t.Errorf("cursor = (%d, %d), want below the prompt", col, row)
	}
	if got := h.row(0); got != "? Name ab" {
		t.Errorf("prompt row = %q, want the last frame kept", got)
	}
}

func TestPrompt_CancelByInterrupt(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.send(keys("x", ctrl('c'))...)

	_, err := Confirm(testContext(t), h.p, ConfirmOptions{Message: "Sure?"})
	var ce *CanceledError
	if !errors.As(err, &ce) || ce.Prompt != "confirm" || !errors.Is(err, errInterrupted) {
		t.Fatalf("error = %v, want interrupted confirm", err)
	}
	if !errors.Is(err, ErrCanceled) {
		t.Error("errors.Is(err, ErrCanceled) = false")
	}
}

func TestPrompt_CancelExit(t *testing.T) {
	t.Parallel()

	var code int
	h := newHarness(t, WithCancelBehavior(CancelExit), WithExit(func(c int) { code = c }))
	h.send(ctrl('c'))

	_, err := Password(testContext(t), h.p, PasswordOptions{Message: "Secret"})
	if code != ExitCodeCanceled {
		t.Errorf("exit code = %d, want %d", code, ExitCodeCanceled)
	}
	if !errors.Is(err, ErrCanceled) {
		t.Errorf("error = %v", err)
	}
}

func TestPrompt_CancelAfterClose(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	go func() {
		h.eventually(0, "? Name")
		_ = h.d.Close()
	}()
	_, err := Input(testContext(t), h.p, InputOptions[string]{Message: "Name"})
	if !errors.Is(err, ErrCanceled) || !errors.Is(err, driver.ErrClosed) {
		t.Errorf("error = %v, want canceled wrapping ErrClosed", err)
	}
}

func TestPrompt_ANSICancelRestoresTerminal(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(40, 10)
	d, err := driver.NewANSI(vt)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	p, err := New(d)
	if err != nil {
		t.Fatal(err)
	}

	vt.Feed("ab\x03")
	_, err = Input(testContext(t), p, InputOptions[string]{Message: "Name"})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("error = %v, want canceled", err)
	}
	out := vt.Output()
	if !strings.HasSuffix(strings.TrimSuffix(out, "\x1b[?2026l"), terminal.ResetSequence) {
		t.Errorf("output does not end with a reset: %q", out)
	}
	if !d.CursorVisible() {
		t.Error("cursor hidden after cancel")
	}
}

func TestPrompt_CancelExitRestoresANSITerminal(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(40, 10)
	d, err := driver.NewANSI(vt)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })

	var exited, rawAtExit bool
	var outAtExit string
	p, err := New(d, WithCancelBehavior(CancelExit), WithExit(func(int) {
		exited = true
		rawAtExit = vt.IsRawMode()
		outAtExit = vt.Output()
	}))
	if err != nil {
		t.Fatal(err)
	}

	vt.Feed("ab\x03")
	if _, err := Input(testContext(t), p, InputOptions[string]{Message: "Name"}); !errors.Is(err, ErrCanceled) {
		t.Fatalf("error = %v, want canceled", err)
	}
	if !exited {
		t.Fatal("exit function not called")
	}
	if rawAtExit {
		t.Error("terminal still in raw mode when exiting")
	}
	if !strings.Contains(outAtExit, "\x1b[?2004l") {
		t.Errorf("bracketed paste still on when exiting: %q", outAtExit)
	}
	if vt.ExitCount() != 1 {
		t.Errorf("ExitRawMode called %d times, want 1", vt.ExitCount())
	}
}

func TestPrompt_ANSIInput(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(40, 10)
	d, err := driver.NewANSI(vt)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	p, err := New(d)
	if err != nil {
		t.Fatal(err)
	}

	vt.Feed("hi\r")
	got, err := Input(testContext(t), p, InputOptions[string]{Message: "Say"})
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if got != "hi" {
		t.Errorf("Input() = %q, want hi", got)
	}
	if !strings.Contains(vt.Output(), "Say") {
		t.Errorf("prompt never drawn: %q", vt.Output())
	}
	if col, row := d.CursorPosition(); col != 0 || row != 1 {
		t.Errorf("cursor = (%d, %d), want (0, 1)", col, row)
	}
}
