// Package listing parses ca65 listing files for patch and relocation annotations.
//
// The driver source marks table labels that the tracker patches at export time
// with a trailing ";; Patch" comment and pointer loads that need relocation
// with ";; Reloc":
//
//	00012Fr 1               ft_vibrato_table:                ;; Patch
//	000231r 1  A9 rr            lda #<ft_periods_ntsc        ;; Reloc
package listing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/retroenv/nsfdriver/internal/label"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
)

// PreambleSize is the size of the driver header that precedes the driver body.
const PreambleSize = 8

const (
	patchMarker = ";; Patch"
	relocMarker = ";; Reloc"

	addressWidth = 6  // hex digits of the address column
	opcodeColumn = 11 // start of the first emitted byte
	opcodeWidth  = 2
)

var (
	// ErrUnexpectedOpcode is returned for a relocated pointer that is not loaded by an immediate lda.
	ErrUnexpectedOpcode = errors.New("relocated pointer byte is not loaded with lda immediate")
	// ErrPointerEndianness is returned when a relocation site has no or both of the < and > operators.
	ErrPointerEndianness = errors.New("cannot determine label pointer endianness")
	// ErrDuplicateReloc is returned when an offset is relocated as low and high byte.
	ErrDuplicateReloc = errors.New("offset is relocated as low and high byte")
)

var (
	patchPattern = regexp.MustCompile(`^.*\s(\w*):.*` + patchMarker + `$`)
	relocPattern = regexp.MustCompile(`^(.*[<>])(\w*).*` + relocMarker + `$`)
)

// Table is an insertion ordered mapping of driver body offsets to labels.
// Setting an existing offset again updates the label but keeps its position.
type Table struct {
	offsets []int
	labels  map[int]string
}

// NewTable returns a new empty table.
func NewTable() *Table {
	return &Table{
		labels: map[int]string{},
	}
}

// Set sets the label of the given offset.
func (t *Table) Set(offset int, name string) {
	if _, ok := t.labels[offset]; !ok {
		t.offsets = append(t.offsets, offset)
	}
	t.labels[offset] = name
}

// Label returns the label of the given offset.
func (t *Table) Label(offset int) (string, bool) {
	name, ok := t.labels[offset]
	return name, ok
}

// Contains returns whether the offset is part of the table.
func (t *Table) Contains(offset int) bool {
	_, ok := t.labels[offset]
	return ok
}

// Offsets returns all offsets in insertion order.
func (t *Table) Offsets() []int {
	return t.offsets
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.offsets)
}

// Listing contains the annotations found in a listing file.
type Listing struct {
	Patches   *Table // body offset to resolved label of patch points
	RelocLow  *Table // operand offset to label of low byte pointer loads
	RelocHigh *Table // operand offset to label of high byte pointer loads

	positions map[string]int // resolved label to body offset, last occurrence wins
}

// New returns a new empty listing.
func New() *Listing {
	return &Listing{
		Patches:   NewTable(),
		RelocLow:  NewTable(),
		RelocHigh: NewTable(),
		positions: map[string]int{},
	}
}

// AddPatch records a patch point of the resolved label at the body offset.
func (l *Listing) AddPatch(offset int, name string) {
	l.positions[name] = offset
	l.Patches.Set(offset, name)
}

// Position returns the body offset of a patch label.
func (l *Listing) Position(name string) (int, bool) {
	offset, ok := l.positions[name]
	return offset, ok
}

// IsRelocated returns whether the offset is covered by a named low or high byte relocation.
func (l *Listing) IsRelocated(offset int) bool {
	return l.RelocLow.Contains(offset) || l.RelocHigh.Contains(offset)
}

// Parse reads a ca65 listing and collects all patch and relocation annotations.
func Parse(reader io.Reader) (*Listing, error) {
	lst := New()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()

		if err := lst.parsePatch(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if err := lst.parseReloc(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}

	return lst, nil
}

func (l *Listing) parsePatch(line string) error {
	if len(line) < addressWidth || !strings.HasSuffix(line, patchMarker) {
		return nil
	}

	match := patchPattern.FindStringSubmatch(line[addressWidth:])
	if match == nil {
		return nil
	}

	address, err := parseAddress(line[:addressWidth])
	if err != nil {
		return err
	}

	offset := address - PreambleSize
	l.AddPatch(offset, label.Resolve(match[1]))
	return nil
}

func (l *Listing) parseReloc(line string) error {
	if len(line) < opcodeColumn+opcodeWidth || !strings.HasSuffix(line, relocMarker) {
		return nil
	}

	match := relocPattern.FindStringSubmatch(line[opcodeColumn+opcodeWidth:])
	if match == nil {
		return nil
	}

	used := line[opcodeColumn : opcodeColumn+opcodeWidth]
	if strings.TrimSpace(used) == "" {
		return nil // continuation line without emitted bytes
	}

	address, err := parseAddress(line[:addressWidth])
	if err != nil {
		return err
	}

	if !isImmediateLoad(used) {
		return fmt.Errorf("%w: found '%s' at address %06X", ErrUnexpectedOpcode, used, address)
	}

	operator := match[1]
	low := strings.Contains(operator, "<")
	high := strings.Contains(operator, ">")
	if low == high {
		return fmt.Errorf("%w: '%s'", ErrPointerEndianness, strings.TrimSpace(operator))
	}

	offset := address - PreambleSize + 1
	name := label.Resolve(match[2])

	table, other := l.RelocLow, l.RelocHigh
	if high {
		table, other = l.RelocHigh, l.RelocLow
	}
	if other.Contains(offset) {
		return fmt.Errorf("%w: offset 0x%04X", ErrDuplicateReloc, offset)
	}
	table.Set(offset, name)
	return nil
}

func parseAddress(field string) (int, error) {
	address, err := strconv.ParseUint(strings.TrimSpace(field), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing address '%s': %w", field, err)
	}
	return int(address), nil
}

// isImmediateLoad returns whether the hex encoded opcode is an lda with immediate addressing.
func isImmediateLoad(hexOpcode string) bool {
	b, err := strconv.ParseUint(hexOpcode, 16, 8)
	if err != nil {
		return false
	}

	opcode := m6502.Opcodes[byte(b)]
	if opcode.Instruction == nil {
		return false
	}
	return opcode.Instruction.Name == m6502.Lda.Name && opcode.Addressing == m6502.ImmediateAddressing
}
