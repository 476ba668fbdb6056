// Package writer implements the C header output of a compiled driver.
package writer

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Items per line of the wrapped arrays.
const (
	dataBytesPerLine  = 16
	relocWordsPerLine = 12
	pairsPerLine      = 2
)

// FormatArray formats the items as the body of a C array initializer.
// Every line is indented by a tab and contains up to perLine items, all
// lines but the last end with a comma. A perLine of 0 or less puts all
// items on a single line.
func FormatArray(items []string, perLine int) string {
	if len(items) == 0 {
		return ""
	}
	if perLine <= 0 {
		perLine = len(items)
	}

	buf := &strings.Builder{}
	chunks := lo.Chunk(items, perLine)
	for i, chunk := range chunks {
		buf.WriteString("\t")
		buf.WriteString(strings.Join(chunk, ", "))
		if i < len(chunks)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// HexBytes formats bytes as 0xHH literals.
func HexBytes(data []byte) []string {
	return lo.Map(data, func(b byte, _ int) string {
		return fmt.Sprintf("0x%02X", b)
	})
}

// HexWords formats values as 0xHHHH literals.
func HexWords(values []int) []string {
	return lo.Map(values, func(value int, _ int) string {
		return HexWord(value)
	})
}

// HexWord formats a value as 0xHHHH literal, negative values keep their sign
// in front of the prefix.
func HexWord(value int) string {
	if value < 0 {
		return fmt.Sprintf("-0x%04X", -value)
	}
	return fmt.Sprintf("0x%04X", value)
}
