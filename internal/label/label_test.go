package label

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "ft_vibrato_table", want: "VIBRATO"},
		{input: "ft_note_table_vrc7_l", want: "CDetuneTable::DETUNE_VRC7"},
		{input: "ft_update_ext", want: "UPDATE_EXT"},
		{input: "ft_channel_enable", want: "CH_ENABLE"},
		{input: "ft_channel_type", want: "CH_TYPE"},
		{input: "ft_periods_ntsc", want: "CDetuneTable::DETUNE_NTSC"},
		{input: "ft_periods_pal", want: "CDetuneTable::DETUNE_PAL"},
		{input: "ft_periods_fds", want: "CDetuneTable::DETUNE_FDS"},
		{input: "ft_periods_n163", want: "CDetuneTable::DETUNE_N163"},
		{input: "ft_periods_sawtooth", want: "CDetuneTable::DETUNE_SAW"},
		{input: "ft_music_addr", want: "ft_music_addr"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.input))
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	inputs := []string{
		"ft_vibrato_table",
		"ft_note_table_vrc7_l",
		"ft_periods_sawtooth",
		"ft_periods_s5b",
		"ft_channel_type",
		"ft_load_song",
	}

	for _, input := range inputs {
		resolved := Resolve(input)
		assert.Equal(t, resolved, Resolve(resolved))
	}
}

func TestIsDetuneTable(t *testing.T) {
	assert.True(t, IsDetuneTable("CDetuneTable::DETUNE_NTSC"))
	assert.True(t, IsDetuneTable(Resolve("ft_note_table_vrc7_l")))
	assert.False(t, IsDetuneTable("VIBRATO"))
	assert.False(t, IsDetuneTable("ft_periods"))
}
