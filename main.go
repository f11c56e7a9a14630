// Package main implements the main entry point for the pinball and sampler machine drivers
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrodrivers/internal/cli"
	"github.com/retroenv/retrodrivers/internal/config"
	"github.com/retroenv/retrodrivers/internal/drivers"
	"github.com/retroenv/retrodrivers/internal/gameprocessor"
	"github.com/retroenv/retrodrivers/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			gameprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	registry, err := drivers.Registry()
	if err != nil {
		logger.Fatal(err.Error())
	}

	if opts.List {
		if err := gameprocessor.PrintGameList(os.Stdout, registry, gameprocessor.TerminalWidth()); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	gameprocessor.PrintBanner(logger, opts, version, commit, date)

	games, err := gameprocessor.GetGamesToProcess(&opts, registry)
	if err != nil {
		logger.Fatal(err.Error())
	}

	p := pipeline.New(logger, registry)
	if len(games) > 0 {
		_, err = p.ExecuteBatch(ctx, games, opts, os.Stdout)
	} else {
		_, err = p.Execute(ctx, opts, os.Stdout)
	}

	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}
