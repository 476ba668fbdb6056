// Package options contains the program options.
package options

// Build contains the options of the driver header generator.
type Build struct {
	Source    string `flag:"src" usage:"driver assembly source file" default:"../driver.s"`
	OutputDir string `flag:"o" usage:"output directory of the generated headers" default:"drivers"`
	WorkDir   string `flag:"w" usage:"directory for intermediate files" default:"."`
	Chips     string `flag:"chips" usage:"comma separated list of chips to build (default: all)"`
	Debug     bool   `flag:"debug" usage:"keep intermediate files and enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// Toolchain contains the external tool binaries.
type Toolchain struct {
	Assembler string // ca65 binary name or path
	Linker    string // ld65 binary name or path
}

// Version contains the options of the resource version updater.
type Version struct {
	Header   string `flag:"header" usage:"version header file" default:"version.h"`
	Resource string `flag:"rc" usage:"resource file to update" default:"Dn-FamiTracker.rc"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}
