// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/nsfdriver/internal/assembler/ca65"
	"github.com/retroenv/nsfdriver/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/xyproto/env/v2"
)

// Environment variables that override the toolchain binaries.
const (
	AssemblerEnv = "CA65"
	LinkerEnv    = "LD65"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ToolchainFromEnv returns the toolchain binaries, using the defaults unless
// overridden by the environment.
func ToolchainFromEnv() options.Toolchain {
	return options.Toolchain{
		Assembler: env.Str(AssemblerEnv, ca65.AssemblerName),
		Linker:    env.Str(LinkerEnv, ca65.LinkerName),
	}
}
