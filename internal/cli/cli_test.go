package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/nsfdriver/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseBuildFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Build
	}{
		{
			name: "default flags",
			args: []string{"prog"},
			want: options.Build{Source: "../driver.s", OutputDir: "drivers", WorkDir: "."},
		},
		{
			name: "debug flag",
			args: []string{"prog", "-debug"},
			want: options.Build{Source: "../driver.s", OutputDir: "drivers", WorkDir: ".", Debug: true},
		},
		{
			name: "debug shorthand",
			args: []string{"prog", "-d"},
			want: options.Build{Source: "../driver.s", OutputDir: "drivers", WorkDir: ".", Debug: true},
		},
		{
			name: "all flags",
			args: []string{"prog", "-src", "driver.s", "-o", "out", "-w", "tmp", "-chips", "vrc6,n163", "-q"},
			want: options.Build{Source: "driver.s", OutputDir: "out", WorkDir: "tmp", Chips: "vrc6,n163", Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseBuildFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBuildFlagsErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
	}{
		{name: "positional argument", args: []string{"prog", "driver.s"}, usageError: true},
		{name: "unknown flag", args: []string{"prog", "-unknown"}, usageError: true},
		{name: "unknown chip", args: []string{"prog", "-chips", "sid"}, usageError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseBuildFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
		})
	}
}

func TestParseVersionFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}
	got, err := ParseVersionFlags()
	assert.NoError(t, err)
	assert.Equal(t, options.Version{Header: "version.h", Resource: "Dn-FamiTracker.rc"}, got)

	os.Args = []string{"prog", "-header", "src/version.h", "-rc", "res/app.rc", "-q"}
	got, err = ParseVersionFlags()
	assert.NoError(t, err)
	assert.Equal(t, options.Version{Header: "src/version.h", Resource: "res/app.rc", Quiet: true}, got)
}
