// ABOUTME: Interaction loop shared by every prompt: render, read keys, validate on Enter, finish or cancel
// ABOUTME: Keys already queued after a keystroke are applied before the next redraw

package form

import (
	"context"
	"fmt"

	"github.com/mauromedda/pi-prompt/internal/log"
	"github.com/mauromedda/pi-prompt/pkg/tui"
	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

// session is one prompt's side of the loop.
type session interface {
	// render draws the editing frame.
	render(f *frame)
	// handle applies a key other than Enter or Ctrl+C and reports whether
	// the key meant anything.
	handle(k key.Key) bool
	// submit is called on Enter. A nil error with done unset keeps the
	// prompt open.
	submit() (done bool, err error)
	// finish draws the frame left behind once the prompt is done.
	finish(f *frame)
}

type outcome int

const (
	outcomeContinue outcome = iota
	outcomeInvalid
	outcomeDone
	outcomeInterrupted
)

// frame is a render buffer with the prompt's theme at hand.
type frame struct {
	*tui.RenderBuffer
	theme *theme.Theme
}

// question starts the editing frame's first line.
func (f *frame) question(message string) {
	f.Write(f.theme.Symbols.Prompt, f.theme.Palette.Selected)
	f.Write(" "+message+" ", f.theme.Palette.Prompt)
}

// answered writes the single line a finished prompt leaves behind.
func (f *frame) answered(message, answer string) {
	f.Write(f.theme.Symbols.Done, f.theme.Palette.Done)
	f.Write(" "+message+" ", f.theme.Palette.Prompt)
	f.Write(answer, f.theme.Palette.Answer)
}

func (f *frame) hint(text string) {
	f.Write(text, f.theme.Palette.Hint)
}

// run drives s until it is done or canceled.
func (p *Prompter) run(ctx context.Context, kind string, s session) error {
	buf := tui.AcquireBuffer(p.driver)
	defer tui.ReleaseBuffer(buf)
	f := &frame{RenderBuffer: buf, theme: p.theme}

	log.Debug("form: %s prompt started", kind)
	var errMsg string
	drawn := false
	for {
		if err := p.draw(f, s, drawn, errMsg); err != nil {
			return fmt.Errorf("%s prompt: %w", kind, err)
		}
		drawn, errMsg = true, ""

		k, err := p.driver.ReadKey(ctx)
		for {
			if err != nil {
				return p.abort(f, kind, err)
			}
			var out outcome
			out, errMsg = p.dispatch(s, k)
			switch out {
			case outcomeDone:
				return p.complete(f, kind, s)
			case outcomeInterrupted:
				return p.abort(f, kind, errInterrupted)
			}
			if out == outcomeInvalid || !p.driver.KeyAvailable() {
				break
			}
			k, err = p.driver.ReadKey(ctx)
		}
	}
}

// dispatch applies one key and returns the error text to show, if any.
func (p *Prompter) dispatch(s session, k key.Key) (outcome, string) {
	switch {
	case k.IsCtrl('c'):
		return outcomeInterrupted, ""
	case k.Type == key.KeyEnter:
		done, err := s.submit()
		if err != nil {
			return outcomeInvalid, errorMessage(err, p.theme.Messages)
		}
		if done {
			return outcomeDone, ""
		}
	case !s.handle(k):
		p.driver.Beep()
	}
	return outcomeContinue, ""
}

// draw replaces the previous frame with the current one. errMsg is shown
// on its own line below the prompt for this frame only.
func (p *Prompter) draw(f *frame, s session, redraw bool, errMsg string) error {
	f.ClearBuffer()
	s.render(f)
	if errMsg != "" {
		f.WriteLine()
		f.Write(p.theme.Symbols.Error+" "+errMsg, p.theme.Palette.Error)
	}
	if redraw {
		f.Clear()
	}
	return f.RenderToConsole()
}

// complete draws the finish frame and leaves the cursor on the row below.
func (p *Prompter) complete(f *frame, kind string, s session) error {
	f.ClearBuffer()
	s.finish(f)
	f.Clear()
	if err := f.RenderToConsole(); err != nil {
		return fmt.Errorf("%s prompt: %w", kind, err)
	}
	p.driver.WriteLine()
	p.driver.Reset()
	if err := p.driver.Flush(); err != nil {
		return fmt.Errorf("%s prompt: %w", kind, err)
	}
	log.Debug("form: %s prompt done", kind)
	return nil
}

// abort restores the terminal below the last frame and applies the cancel
// behaviour.
func (p *Prompter) abort(f *frame, kind string, cause error) error {
	p.driver.SetCursorPosition(0, f.Bottom())
	p.driver.WriteLine()
	p.driver.Reset()
	if err := p.driver.Flush(); err != nil {
		log.Warn("form: restoring terminal after cancel: %v", err)
	}

	err := &CanceledError{Prompt: kind, Cause: cause}
	log.Info("form: %v", err)
	if p.cancel == CancelExit {
		// Exit skips deferred cleanup, so the terminal modes go now.
		if cerr := p.driver.Close(); cerr != nil {
			log.Warn("form: closing driver before exit: %v", cerr)
		}
		p.exit(ExitCodeCanceled)
	}
	return err
}
