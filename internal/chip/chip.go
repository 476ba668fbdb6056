// Package chip defines the sound chip targets that the NSF driver is built for.
package chip

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Target is a sound chip variant of the driver.
type Target string

// Supported targets, ALL contains the support code for every expansion chip.
const (
	APU  Target = "2A03"
	VRC6 Target = "VRC6"
	VRC7 Target = "VRC7"
	FDS  Target = "FDS"
	MMC5 Target = "MMC5"
	N163 Target = "N163"
	S5B  Target = "S5B"
	All  Target = "ALL"
)

// Targets lists all targets in build order.
var Targets = []Target{APU, VRC6, VRC7, FDS, MMC5, N163, S5B, All}

// Parse returns the target matching the given name, case insensitive.
func Parse(name string) (Target, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, target := range Targets {
		if string(target) == name {
			return target, nil
		}
	}
	return "", fmt.Errorf("unsupported chip '%s'", name)
}

// ParseList parses a comma separated list of target names.
// An empty list selects all targets.
func ParseList(list string) ([]Target, error) {
	if strings.TrimSpace(list) == "" {
		return Targets, nil
	}

	var targets []Target
	seen := set.New[Target]()
	for _, name := range strings.Split(list, ",") {
		target, err := Parse(name)
		if err != nil {
			return nil, err
		}
		if seen.Contains(target) {
			continue
		}
		seen.Add(target)
		targets = append(targets, target)
	}
	return targets, nil
}

// Define returns the assembler symbol that enables support for the chip.
func (t Target) Define() string {
	return "USE_" + string(t)
}

// ListingFile returns the file name of the assembler listing.
func (t Target) ListingFile() string {
	return "out_" + string(t) + ".lst"
}

// ImageFile returns the file name of the linked binary for the given linker config prefix.
func (t Target) ImageFile(prefix string) string {
	return prefix + "_" + string(t) + ".bin"
}

// HeaderFile returns the file name of the generated C header.
func (t Target) HeaderFile() string {
	return "drv_" + strings.ToLower(string(t)) + ".h"
}
