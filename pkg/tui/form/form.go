// ABOUTME: Prompter holds the driver and settings every prompt runs with
// ABOUTME: Built with functional options; cancel behaviour decides between an error and exiting

package form

import (
	"os"

	"github.com/mauromedda/pi-prompt/pkg/tui/driver"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

// CancelBehavior selects what happens when a prompt is canceled.
type CancelBehavior int

const (
	// CancelReturnError returns a *CanceledError to the caller.
	CancelReturnError CancelBehavior = iota
	// CancelExit calls the exit function with ExitCodeCanceled.
	CancelExit
)

// ExitCodeCanceled is the status passed to the exit function on cancel.
const ExitCodeCanceled = 130

// Option configures a Prompter.
type Option func(*Prompter)

// WithTheme sets the palette, symbols and messages. A nil theme is ignored.
func WithTheme(t *theme.Theme) Option {
	return func(p *Prompter) {
		if t != nil {
			p.theme = t
		}
	}
}

// WithCancelBehavior sets what a canceled prompt does.
func WithCancelBehavior(b CancelBehavior) Option {
	return func(p *Prompter) { p.cancel = b }
}

// WithExit replaces os.Exit for CancelExit.
func WithExit(fn func(code int)) Option {
	return func(p *Prompter) { p.exit = fn }
}

// WithPageSize sets the default page size of selection prompts. Zero shows
// every item on one page.
func WithPageSize(n int) Option {
	return func(p *Prompter) { p.pageSize = n }
}

// WithLoop makes selection wrap within a page.
func WithLoop(loop bool) Option {
	return func(p *Prompter) { p.loop = loop }
}

// WithMaskChar sets the string echoed per typed rune by Password. An empty
// mask echoes nothing.
func WithMaskChar(mask string) Option {
	return func(p *Prompter) { p.mask = mask }
}

// Prompter runs prompts on one driver. Prompts run one at a time; a
// Prompter is not safe for concurrent use.
type Prompter struct {
	driver   driver.Driver
	theme    *theme.Theme
	cancel   CancelBehavior
	exit     func(code int)
	pageSize int
	loop     bool
	mask     string
}

// New returns a Prompter drawing on d.
func New(d driver.Driver, opts ...Option) (*Prompter, error) {
	if d == nil {
		return nil, invalidConfig("nil driver")
	}
	p := &Prompter{
		driver:   d,
		theme:    theme.Builtin("default"),
		cancel:   CancelReturnError,
		exit:     os.Exit,
		pageSize: 7,
		loop:     true,
		mask:     "*",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pageSize < 0 {
		return nil, invalidConfig("negative page size %d", p.pageSize)
	}
	if p.exit == nil {
		p.exit = os.Exit
	}
	if err := p.theme.Validate(); err != nil {
		return nil, invalidConfig("%v", err)
	}
	return p, nil
}

// Driver returns the driver prompts draw on.
func (p *Prompter) Driver() driver.Driver {
	return p.driver
}

// Theme returns the active theme.
func (p *Prompter) Theme() *theme.Theme {
	return p.theme
}
