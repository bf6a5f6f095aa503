// ABOUTME: CLI entry point for the pi-prompt demo with terminal crash recovery
// ABOUTME: Loads settings, opens the selected driver and runs the demo questionnaire

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mauromedda/pi-prompt/internal/config"
	pilog "github.com/mauromedda/pi-prompt/internal/log"
	"github.com/mauromedda/pi-prompt/pkg/tui/driver"
	"github.com/mauromedda/pi-prompt/pkg/tui/form"
	"github.com/mauromedda/pi-prompt/pkg/tui/terminal"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("pi-prompt %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		if errors.Is(err, form.ErrCanceled) {
			os.Exit(form.ExitCodeCanceled)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings, opens the driver and runs the demo.
func run(args cliArgs) error {
	settings, err := loadSettings(args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lvl, err := pilog.ParseLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	pilog.SetLevel(lvl)

	th, err := resolveTheme(settings.Theme)
	if err != nil {
		return err
	}

	d, term, err := openDriver(settings.Driver)
	if err != nil {
		return err
	}
	if term != nil {
		defer terminal.RestoreOnPanic(term)
	}
	defer func() {
		if err := d.Close(); err != nil {
			pilog.Warn("closing driver: %v", err)
		}
	}()

	p, err := form.New(d, prompterOptions(settings, th)...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	answers, err := runDemo(ctx, p)
	if err != nil {
		return err
	}
	_ = d.Close()
	printAnswers(os.Stdout, answers)
	return nil
}

// loadSettings reads --config when given and the global and project files
// otherwise, then applies flag overrides.
func loadSettings(args cliArgs) (*config.Settings, error) {
	var (
		settings *config.Settings
		err      error
	)
	if args.config != "" {
		settings, err = config.LoadExplicit(args.config)
	} else {
		cwd, werr := os.Getwd()
		if werr != nil {
			return nil, fmt.Errorf("getting working directory: %w", werr)
		}
		settings, err = config.Load(cwd)
	}
	if err != nil {
		return nil, err
	}

	if args.driver != "" {
		settings.Driver = strings.ToLower(args.driver)
	}
	if args.theme != "" {
		settings.Theme = args.theme
	}
	if args.logLevel != "" {
		settings.LogLevel = args.logLevel
	}
	return settings, settings.Validate()
}

// resolveTheme returns the builtin theme called name, or loads name as a
// theme file, looking in the themes directory for bare names.
func resolveTheme(name string) (*theme.Theme, error) {
	if name == "" {
		return theme.Builtin("default"), nil
	}
	if th := theme.Builtin(name); th != nil {
		return th, nil
	}

	path := name
	if !strings.ContainsRune(name, os.PathSeparator) && filepath.Ext(name) == "" {
		path = filepath.Join(config.ThemesDir(), name+".yaml")
	}
	th, err := theme.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w (builtins: %s)", name, err, strings.Join(theme.BuiltinNames(), ", "))
	}
	return th, nil
}

// openDriver opens the named driver on the process terminal. The inline
// driver also returns the terminal it put in raw mode.
func openDriver(name string) (driver.Driver, terminal.Terminal, error) {
	switch name {
	case config.DriverScreen:
		d, err := driver.NewScreen()
		return d, nil, err
	case "", config.DriverANSI:
		term := terminal.NewProcessTerminal()
		if !term.IsTerminal() {
			return nil, nil, errors.New("stdin and stdout must be a terminal")
		}
		d, err := driver.NewANSI(term)
		if err != nil {
			return nil, nil, err
		}
		return d, term, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", name)
	}
}

// prompterOptions maps settings onto Prompter options.
func prompterOptions(s *config.Settings, th *theme.Theme) []form.Option {
	opts := []form.Option{
		form.WithTheme(th),
		form.WithPageSize(s.PageSize),
		form.WithMaskChar(s.MaskChar),
	}
	if s.LoopSelection != nil {
		opts = append(opts, form.WithLoop(*s.LoopSelection))
	}
	if s.CancelBehavior == config.CancelExit {
		opts = append(opts, form.WithCancelBehavior(form.CancelExit))
	}
	return opts
}
