// Package assembler defines the toolchain interface used to build the driver.
package assembler

import (
	"context"
)

// Toolchain assembles and links the driver source.
type Toolchain interface {
	// Assemble assembles the source file into an object file and writes a listing.
	Assemble(ctx context.Context, params AssembleParams) error
	// Link links the object file into a raw binary using the given linker config.
	Link(ctx context.Context, objectFile, outputFile, configFile string) error
}

// AssembleParams contains the parameters of an assembler run.
type AssembleParams struct {
	Source      string
	ListingFile string
	ObjectFile  string
	Defines     []string // symbols to define, either NAME or NAME=VALUE
}

// DriverDefines are the fixed feature symbols that every driver build is assembled with.
var DriverDefines = []string{
	"NAMCO_CHANNELS=8",
	"PACKAGE",
	"RELOCATE_MUSIC",
	"USE_BANKSWITCH",
	"USE_OLDVIBRATO",
	"USE_LINEARPITCH",
}
