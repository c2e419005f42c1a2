// Command decksim runs a simulated HyperDeck-style recorder in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/decksim/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("decksim", flag.ContinueOnError)
	var opts app.Options
	fs.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/decksim/config.toml)")
	fs.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/decksim/prefs.toml)")
	fs.StringVar(&opts.Address, "address", "", "deck address shown in the connection bar")
	fs.StringVar(&opts.LogLevel, "log-level", "", "application log level: trace, debug, info, warn, error")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Println("decksim", version)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "decksim: %v\n", err)
		return 1
	}
	return 0
}
