package ca65

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Linker config file names and the code base address they place the driver at.
const (
	BaseConfigName    = "c0"
	ShiftedConfigName = "c1"
)

const linkerConfigTemplate = `MEMORY {
  ZP:  start = $00,   size = $100,   type = rw, file = "";
  RAM: start = $200,  size = $600,   type = rw, file = "";
  PRG: start = $%04X, size = $40000, type = rw, file = %%O;
}

SEGMENTS {
  ZEROPAGE: load = ZP,  type = zp;
  BSS:      load = RAM, type = bss;
  CODE:     load = PRG, type = rw;
}`

// LinkerConfig describes one of the generated linker configurations.
type LinkerConfig struct {
	Name        string // prefix of the config file and the linked images
	BaseAddress uint16
	Path        string
}

// GenerateLinkerConfig generates a ld65 linker config that places the code
// segment at the given base address.
func GenerateLinkerConfig(baseAddress uint16) (string, error) {
	buf := &strings.Builder{}
	if _, err := fmt.Fprintf(buf, linkerConfigTemplate, baseAddress); err != nil {
		return "", fmt.Errorf("writing linker config: %w", err)
	}
	return buf.String(), nil
}

// WriteLinkerConfigs writes the base and shifted linker configs to the
// directory and returns their descriptions in that order.
func WriteLinkerConfigs(dir string, baseAddress, shiftedAddress uint16) ([]LinkerConfig, error) {
	configs := []LinkerConfig{
		{Name: BaseConfigName, BaseAddress: baseAddress},
		{Name: ShiftedConfigName, BaseAddress: shiftedAddress},
	}

	for i := range configs {
		cfg := &configs[i]
		content, err := GenerateLinkerConfig(cfg.BaseAddress)
		if err != nil {
			return nil, err
		}

		cfg.Path = filepath.Join(dir, cfg.Name+".cfg")
		if err := os.WriteFile(cfg.Path, []byte(content), 0666); err != nil {
			return nil, fmt.Errorf("writing linker config '%s': %w", cfg.Path, err)
		}
	}
	return configs, nil
}
