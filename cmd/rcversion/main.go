// Package main implements the resource file version updater that sets the
// product and file version of the resource to match version.h.
package main

import (
	"errors"
	"os"

	"github.com/retroenv/nsfdriver/internal/cli"
	"github.com/retroenv/nsfdriver/internal/config"
	"github.com/retroenv/nsfdriver/internal/fileprocessor"
	"github.com/retroenv/nsfdriver/internal/rcversion"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseVersionFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts.Quiet, "rcversion", version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	fileprocessor.PrintBanner(logger, opts.Quiet, "rcversion", version, commit, date)

	v, err := rcversion.UpdateFile(opts.Header, opts.Resource)
	if err != nil {
		logger.Error("Updating resource versions failed", log.Err(err))
		os.Exit(1)
	}

	logger.Info("Resource versions updated",
		log.String("file", opts.Resource),
		log.String("version", v.String()))
}
