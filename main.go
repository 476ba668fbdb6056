// Package main implements the NSF driver header generator that builds the
// sound driver for every supported chip and exports it as C headers.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/nsfdriver/internal/assembler/ca65"
	"github.com/retroenv/nsfdriver/internal/cli"
	"github.com/retroenv/nsfdriver/internal/config"
	"github.com/retroenv/nsfdriver/internal/fileprocessor"
	"github.com/retroenv/nsfdriver/internal/pipeline"
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

	opts, err := cli.ParseBuildFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts.Quiet, "buildengine", version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts.Quiet, "buildengine", version, commit, date)

	tools := config.ToolchainFromEnv()
	toolchain := ca65.New(logger, tools.Assembler, tools.Linker)
	if err := toolchain.CheckInstalled(); err != nil {
		logger.Fatal(err.Error())
	}

	if err := pipeline.New(logger, toolchain).Execute(ctx, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Building drivers failed", log.Err(err))
		os.Exit(1)
	}
}
