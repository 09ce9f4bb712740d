// Command tracker-cli manages the same ledger as the web page from a
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"tracker/internal/chrome"
	"tracker/internal/cli"
	applog "tracker/internal/log"
	"tracker/internal/view"
)

func main() {
	cli.LoadEnvFile()

	verbose := flag.Bool("v", false, "log at debug level")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), cli.ErrUsage)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := cli.SetupLogger(os.Stderr, "warn", applog.ComponentCLI)
	cfg := cli.LoadAndValidateConfig(logger)
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	} else if level == "info" {
		// keep routine info lines out of command output
		level = "warn"
	}
	logger = cli.SetupLogger(os.Stderr, level, applog.ComponentCLI)

	ctx := context.Background()
	ledger, err := cli.OpenLedger(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to open ledger", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	runner := &cli.Runner{
		Ledger:    ledger.Service,
		Formatter: view.NewFormatter(chrome.ParseTag(cfg.DateLocale), cfg.CurrencySymbol),
		In:        os.Stdin,
		Out:       os.Stdout,
	}
	runErr := runner.Run(ctx, flag.Args())

	if err := ledger.Close(); err != nil {
		logger.Error("Failed to release resources", "error", err)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		if errors.Is(runErr, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
