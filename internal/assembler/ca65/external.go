// Package ca65 runs the external ca65 assembler and ld65 linker.
package ca65

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/retroenv/nsfdriver/internal/assembler"
	"github.com/retroenv/retrogolib/log"
)

// Default names of the external binaries.
const (
	AssemblerName = "ca65"
	LinkerName    = "ld65"
)

var _ assembler.Toolchain = &External{}

// External calls the installed ca65 and ld65 binaries.
type External struct {
	assembler string
	linker    string
	logger    *log.Logger
}

// New returns a toolchain using the given binaries, empty names select the
// defaults. The combined output of every successful tool run is written to
// the debug log line by line.
func New(logger *log.Logger, assemblerBinary, linkerBinary string) *External {
	if assemblerBinary == "" {
		assemblerBinary = AssemblerName
	}
	if linkerBinary == "" {
		linkerBinary = LinkerName
	}
	return &External{
		assembler: executableName(assemblerBinary),
		linker:    executableName(linkerBinary),
		logger:    logger,
	}
}

// CheckInstalled returns an error if one of the binaries can not be found.
func (e *External) CheckInstalled() error {
	if _, err := exec.LookPath(e.assembler); err != nil {
		return fmt.Errorf("%s is not installed", e.assembler)
	}
	if _, err := exec.LookPath(e.linker); err != nil {
		return fmt.Errorf("%s is not installed", e.linker)
	}
	return nil
}

// Assemble runs ca65 on the source file.
func (e *External) Assemble(ctx context.Context, params assembler.AssembleParams) error {
	if err := e.run(ctx, e.assembler, AssembleArgs(params)); err != nil {
		return fmt.Errorf("assembling file: %w", err)
	}
	return nil
}

// Link runs ld65 on the object file.
func (e *External) Link(ctx context.Context, objectFile, outputFile, configFile string) error {
	if err := e.run(ctx, e.linker, LinkArgs(objectFile, outputFile, configFile)); err != nil {
		return fmt.Errorf("linking file: %w", err)
	}
	return nil
}

func (e *External) run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %s: %w", name, strings.TrimSpace(string(out)), err)
	}

	for _, line := range outputLines(out) {
		e.logger.Debug(line, log.String("tool", name))
	}
	return nil
}

// outputLines splits tool output into its non empty lines.
func outputLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r\t ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// AssembleArgs returns the ca65 command line arguments.
func AssembleArgs(params assembler.AssembleParams) []string {
	args := []string{params.Source, "-l", params.ListingFile}
	for _, define := range params.Defines {
		args = append(args, "-D", define)
	}
	return append(args, "-o", params.ObjectFile)
}

// LinkArgs returns the ld65 command line arguments.
func LinkArgs(objectFile, outputFile, configFile string) []string {
	return []string{"-o", outputFile, objectFile, "-C", configFile}
}

func executableName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}
