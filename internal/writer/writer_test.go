package writer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFormatArray(t *testing.T) {
	items := make([]string, 17)
	for i := range items {
		items[i] = fmt.Sprintf("0x%02X", i)
	}

	output := FormatArray(items, 16)
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "\t"+strings.Join(items[:16], ", ")+",", lines[0])
	assert.Equal(t, "\t0x10", lines[1])
}

func TestFormatArrayEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		perLine int
		want    string
	}{
		{name: "empty", items: nil, perLine: 16, want: ""},
		{name: "exact line", items: []string{"1", "2"}, perLine: 2, want: "\t1, 2\n"},
		{name: "two full lines", items: []string{"1", "2", "3", "4"}, perLine: 2, want: "\t1, 2,\n\t3, 4\n"},
		{name: "single line", items: []string{"1", "2", "3"}, perLine: 0, want: "\t1, 2, 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatArray(tt.items, tt.perLine))
		})
	}
}

func TestHexFormatting(t *testing.T) {
	assert.Equal(t, []string{"0x00", "0x0A", "0xFF"}, HexBytes([]byte{0x00, 0x0A, 0xFF}))
	assert.Equal(t, []string{"0x0000", "0x1234"}, HexWords([]int{0, 0x1234}))
	assert.Equal(t, "-0x0001", HexWord(-1))
}
