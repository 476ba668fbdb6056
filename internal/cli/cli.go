// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/nsfdriver/internal/chip"
	"github.com/retroenv/nsfdriver/internal/options"
)

// ParseBuildFlags parses the command line flags of the driver header generator.
func ParseBuildFlags() (options.Build, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Build
	readBuildFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, name: "buildengine", msg: err.Error()}
	}
	if err := validateArgs(flags, "buildengine"); err != nil {
		return opts, err
	}

	if _, err := chip.ParseList(opts.Chips); err != nil {
		return opts, fmt.Errorf("parsing chip list: %w", err)
	}
	return opts, nil
}

// ParseVersionFlags parses the command line flags of the resource version updater.
func ParseVersionFlags() (options.Version, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Version
	readVersionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, name: "rcversion", msg: err.Error()}
	}
	if err := validateArgs(flags, "rcversion"); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	name  string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s [options]\n\n", e.name)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs rejects positional arguments, all input is passed with flags.
func validateArgs(flags *flag.FlagSet, name string) error {
	if flags.NArg() == 0 {
		return nil
	}
	return &UsageError{
		flags: flags,
		name:  name,
		msg:   fmt.Sprintf("Unexpected argument %s found, all options have to be passed as flags", flags.Arg(0)),
	}
}

func readBuildFlags(flags *flag.FlagSet, opts *options.Build) {
	flags.StringVar(&opts.Source, "src", "../driver.s", "driver assembly source file")
	flags.StringVar(&opts.OutputDir, "o", "drivers", "output directory of the generated headers")
	flags.StringVar(&opts.WorkDir, "w", ".", "directory for intermediate files")
	flags.StringVar(&opts.Chips, "chips", "", "comma separated list of chips to build (default: all)")
	flags.BoolVar(&opts.Debug, "debug", false, "keep intermediate files and enable debug logging")
	flags.BoolVar(&opts.Debug, "d", false, "shorthand for -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readVersionFlags(flags *flag.FlagSet, opts *options.Version) {
	flags.StringVar(&opts.Header, "header", "version.h", "version header file")
	flags.StringVar(&opts.Resource, "rc", "Dn-FamiTracker.rc", "resource file to update")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
