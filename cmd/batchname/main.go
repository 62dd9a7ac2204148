// Package main provides the batchname CLI for bulk creating and renaming
// files and folders.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/kaeawc/batchname/internal/cmd"
	"github.com/kaeawc/batchname/internal/config"
	"github.com/kaeawc/batchname/internal/dirsession"
	"github.com/kaeawc/batchname/internal/logging"
	"github.com/kaeawc/batchname/internal/perf"
	"github.com/kaeawc/batchname/internal/ui"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Printf("%s version %s\n", cmd.AppName, version)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	os.Exit(run(os.Args[1:]))
}

func printUsage() {
	fmt.Printf(`%s - bulk create and rename files and folders

Usage:
  %s [path]     start in path (prompted for when omitted)
  %s version    print the version
  %s help       show this help

Settings are read from .env and .local.env in the working directory and
from the environment:
  %s, %s, %s,
  %s, %s, %s, %s,
  %s
`,
		cmd.AppName, cmd.AppName, cmd.AppName, cmd.AppName,
		config.KeyLogFile, config.KeyLogLevel, config.KeyFolderPrefix,
		config.KeyFilePrefix, config.KeyFileExt, config.KeyPreview, config.KeyReserveStaged,
		config.KeyPerf,
	)
}

func run(args []string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	loader, err := config.NewEnvLoader(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(loader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.NewFileLogger(cfg.LogFile, logging.GetLevelFromString(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Close() //nolint:errcheck // nothing left to report to

	tracer := perf.New(os.Stderr, cfg.Perf)
	defer tracer.Shutdown()

	prompter := cmd.NewTeaPrompter()

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		path, err = prompter.Input("Starting folder", cwd, nil)
		if err != nil {
			if !errors.Is(err, ui.ErrCanceled) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}

			return 0
		}
	}

	session, err := dirsession.New(path,
		dirsession.WithLogger(logger),
		dirsession.WithFileExt(cfg.FileExt),
		dirsession.WithReserveStaged(cfg.ReserveStaged),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cmd.NewApp(session, cfg, logger,
		cmd.WithPrompter(prompter),
		cmd.WithSources(loader.Loaded),
		cmd.WithTracer(tracer),
	)
	if err := app.RunInteractiveMenu(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}
