// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --driver, --theme, --config, --log-level and --version

package main

import "flag"

type cliArgs struct {
	driver   string
	theme    string
	config   string
	logLevel string
	version  bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.driver, "driver", "", "Terminal driver: ansi (inline) or screen (full screen)")
	flag.StringVar(&args.theme, "theme", "", "Builtin theme name or path to a theme file")
	flag.StringVar(&args.config, "config", "", "Settings file to use instead of the global and project ones")
	flag.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
