package ca65

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/nsfdriver/internal/assembler"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const expectedShiftedConfig = `MEMORY {
  ZP:  start = $00,   size = $100,   type = rw, file = "";
  RAM: start = $200,  size = $600,   type = rw, file = "";
  PRG: start = $C100, size = $40000, type = rw, file = %O;
}

SEGMENTS {
  ZEROPAGE: load = ZP,  type = zp;
  BSS:      load = RAM, type = bss;
  CODE:     load = PRG, type = rw;
}`

func TestGenerateLinkerConfig(t *testing.T) {
	cfg, err := GenerateLinkerConfig(0xC100)
	assert.NoError(t, err)
	assert.Equal(t, expectedShiftedConfig, cfg)
}

func TestWriteLinkerConfigs(t *testing.T) {
	dir := t.TempDir()

	configs, err := WriteLinkerConfigs(dir, 0xC000, 0xC100)
	assert.NoError(t, err)
	assert.Len(t, configs, 2)

	assert.Equal(t, filepath.Join(dir, "c0.cfg"), configs[0].Path)
	assert.Equal(t, filepath.Join(dir, "c1.cfg"), configs[1].Path)

	base, err := os.ReadFile(configs[0].Path)
	assert.NoError(t, err)
	shifted, err := os.ReadFile(configs[1].Path)
	assert.NoError(t, err)

	assert.Contains(t, string(base), "PRG: start = $C000,")
	assert.Equal(t, expectedShiftedConfig, string(shifted))
	assert.Equal(t, strings.Replace(string(base), "$C000", "$C100", 1), string(shifted))
}

func TestAssembleArgs(t *testing.T) {
	params := assembler.AssembleParams{
		Source:      "../driver.s",
		ListingFile: "out_VRC6.lst",
		ObjectFile:  "driver.o",
		Defines:     append([]string{"USE_VRC6"}, assembler.DriverDefines...),
	}

	args := AssembleArgs(params)
	expected := []string{
		"../driver.s", "-l", "out_VRC6.lst",
		"-D", "USE_VRC6",
		"-D", "NAMCO_CHANNELS=8",
		"-D", "PACKAGE",
		"-D", "RELOCATE_MUSIC",
		"-D", "USE_BANKSWITCH",
		"-D", "USE_OLDVIBRATO",
		"-D", "USE_LINEARPITCH",
		"-o", "driver.o",
	}
	assert.Equal(t, expected, args)
}

func TestLinkArgs(t *testing.T) {
	assert.Equal(t, []string{"-o", "c0_FDS.bin", "driver.o", "-C", "c0.cfg"},
		LinkArgs("driver.o", "c0_FDS.bin", "c0.cfg"))
}

func TestNewDefaults(t *testing.T) {
	ext := New(log.NewTestLogger(t), "", "")
	assert.True(t, strings.HasPrefix(ext.assembler, AssemblerName))
	assert.True(t, strings.HasPrefix(ext.linker, LinkerName))

	ext = New(log.NewTestLogger(t), "/opt/cc65/bin/ca65", "/opt/cc65/bin/ld65")
	assert.True(t, strings.HasPrefix(ext.assembler, "/opt/cc65/bin/ca65"))
}

func TestCheckInstalledMissing(t *testing.T) {
	ext := New(log.NewTestLogger(t), "ca65-binary-that-does-not-exist", "")
	err := ext.CheckInstalled()
	assert.ErrorContains(t, err, "is not installed")
}

func TestOutputLines(t *testing.T) {
	out := []byte("ld65: Warning: segment 'ZEROPAGE' is empty\r\n\r\nld65: Warning: unused config\n")
	assert.Equal(t, []string{
		"ld65: Warning: segment 'ZEROPAGE' is empty",
		"ld65: Warning: unused config",
	}, outputLines(out))
	assert.Empty(t, outputLines(nil))
}
