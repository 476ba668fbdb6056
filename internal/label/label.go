// Package label maps symbol names of the driver source to the names used by
// the tracker sources that include the generated headers.
package label

import (
	"regexp"
	"strings"
)

// Canonical names of the tables that get patched at runtime.
const (
	Vibrato       = "VIBRATO"
	UpdateExt     = "UPDATE_EXT"
	ChannelEnable = "CH_ENABLE"
	ChannelType   = "CH_TYPE"

	detuneMarker = "DETUNE"
	detunePrefix = "CDetuneTable::" + detuneMarker + "_"
)

var aliases = map[string]string{
	"ft_vibrato_table":     Vibrato,
	"ft_note_table_vrc7_l": detunePrefix + "VRC7",
	"ft_update_ext":        UpdateExt,
	"ft_channel_enable":    ChannelEnable,
	"ft_channel_type":      ChannelType,
}

// chip names of period tables that differ from the detune table enum names
var chipNameFixups = map[string]string{
	"SAWTOOTH": "SAW",
}

var periodsTable = regexp.MustCompile(`ft_periods_(.*)`)

// Resolve returns the canonical name of a driver source label.
// Names without a known mapping are returned unchanged.
func Resolve(name string) string {
	if alias, ok := aliases[name]; ok {
		return alias
	}

	match := periodsTable.FindStringSubmatch(name)
	if match == nil {
		return name
	}

	chipName := strings.ToUpper(match[1])
	if fixed, ok := chipNameFixups[chipName]; ok {
		chipName = fixed
	}
	return detunePrefix + chipName
}

// IsDetuneTable returns whether the resolved label references a detune table.
func IsDetuneTable(name string) bool {
	return strings.Contains(name, detuneMarker)
}
