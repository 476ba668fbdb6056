package writer

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/nsfdriver/internal/chip"
	"github.com/retroenv/nsfdriver/internal/label"
	"github.com/retroenv/nsfdriver/internal/listing"
	"github.com/retroenv/nsfdriver/internal/reloc"
)

var (
	// ErrMissingLabel is returned when a patch label that the header references is not in the listing.
	ErrMissingLabel = errors.New("patch label not found in listing")
	// ErrAmbiguousPair is returned when a label is relocated more than once as low or high byte.
	ErrAmbiguousPair = errors.New("label has multiple relocations")
)

// FreqTableEntry is the location of a detune table in the driver body.
type FreqTableEntry struct {
	Offset int
	Label  string
}

// AddressPair contains the locations of the low and high byte operands
// that load the same label.
type AddressPair struct {
	Low  int
	High int
}

// Header contains all data of a driver header file.
type Header struct {
	Target chip.Target

	Preamble  []byte
	Body      []byte
	Words     []int
	FreqTable []FreqTableEntry
	Pairs     []AddressPair

	Vibrato       int
	ChannelType   int
	UpdateExt     int
	ChannelEnable int
}

// NewHeader creates the header data of a target from its parsed listing and
// the result of the image comparison.
func NewHeader(target chip.Target, lst *listing.Listing, res *reloc.Result) (*Header, error) {
	h := &Header{
		Target:   target,
		Preamble: res.Preamble,
		Body:     res.Body,
		Words:    res.Words,
	}

	for _, offset := range lst.Patches.Offsets() {
		name, _ := lst.Patches.Label(offset)
		if !label.IsDetuneTable(name) {
			continue
		}
		position, _ := lst.Position(name)
		h.FreqTable = append(h.FreqTable, FreqTableEntry{
			Offset: position,
			Label:  name,
		})
	}

	pairs, err := pairRelocations(lst)
	if err != nil {
		return nil, err
	}
	h.Pairs = pairs

	if h.Vibrato, err = requirePosition(lst, label.Vibrato); err != nil {
		return nil, err
	}

	switch target {
	case chip.N163:
		if h.ChannelType, err = requirePosition(lst, label.ChannelType); err != nil {
			return nil, err
		}

	case chip.All:
		if h.UpdateExt, err = requirePosition(lst, label.UpdateExt); err != nil {
			return nil, err
		}
		if h.ChannelEnable, err = requirePosition(lst, label.ChannelEnable); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// pairRelocations joins the low and high byte relocations on their label,
// ordered by the low byte relocations. Labels without a counterpart are skipped,
// a joined label must occur exactly once on each side.
func pairRelocations(lst *listing.Listing) ([]AddressPair, error) {
	highOffsets := map[string][]int{}
	for _, offset := range lst.RelocHigh.Offsets() {
		name, _ := lst.RelocHigh.Label(offset)
		highOffsets[name] = append(highOffsets[name], offset)
	}
	lowCount := map[string]int{}
	for _, offset := range lst.RelocLow.Offsets() {
		name, _ := lst.RelocLow.Label(offset)
		lowCount[name]++
	}

	var pairs []AddressPair
	for _, offset := range lst.RelocLow.Offsets() {
		name, _ := lst.RelocLow.Label(offset)
		high, ok := highOffsets[name]
		if !ok {
			continue
		}
		if len(high) > 1 {
			return nil, fmt.Errorf("%w: high byte of '%s'", ErrAmbiguousPair, name)
		}
		if lowCount[name] > 1 {
			return nil, fmt.Errorf("%w: low byte of '%s'", ErrAmbiguousPair, name)
		}
		pairs = append(pairs, AddressPair{Low: offset, High: high[0]})
	}
	return pairs, nil
}

func requirePosition(lst *listing.Listing, name string) (int, error) {
	position, ok := lst.Position(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingLabel, name)
	}
	return position, nil
}

// Write outputs the header as C source.
func (h *Header) Write(w io.Writer) error {
	target := string(h.Target)

	freqTable := make([]string, 0, 2*len(h.FreqTable))
	for _, entry := range h.FreqTable {
		freqTable = append(freqTable, HexWord(entry.Offset), entry.Label)
	}

	pairs := make([]string, 0, 2*len(h.Pairs))
	for _, pair := range h.Pairs {
		pairs = append(pairs, HexWord(pair.Low), HexWord(pair.High))
	}

	buf := &headerBuffer{w: w}
	buf.printf("const unsigned char NSFDRV_%s[] = {\t\t// !! !!\n", target)
	buf.write(FormatArray(HexBytes(h.Preamble), 0))
	buf.printf("};\n\nconst unsigned char DRIVER_%s[] = {\t\t// // //\n", target)
	buf.write(FormatArray(HexBytes(h.Body), dataBytesPerLine))
	buf.printf("};\n\nconst int DRIVER_RELOC_WORD_%s[] = {\n", target)
	buf.write(FormatArray(HexWords(h.Words), relocWordsPerLine))
	buf.printf("};\n\nconst int DRIVER_FREQ_TABLE_%s[] = {\n", target)
	buf.write(FormatArray(freqTable, pairsPerLine))
	buf.printf("};\n\nconst int DRIVER_RELOC_ADR_%s[] = {\n", target)
	buf.write(FormatArray(pairs, pairsPerLine))
	buf.printf("};\n\nconst unsigned int VIBRATO_TABLE_LOCATION_%s = 0x%X;", target, h.Vibrato)

	switch h.Target {
	case chip.N163:
		buf.printf("\n\nconst int FT_CH_TYPE_ADR = 0x%X;", h.ChannelType)
	case chip.All:
		buf.printf("\n\nconst int FT_UPDATE_EXT_ADR = 0x%X;", h.UpdateExt)
		buf.printf("\n\nconst int FT_CH_ENABLE_ADR = 0x%X;", h.ChannelEnable)
	}
	buf.write("\n")

	if buf.err != nil {
		return fmt.Errorf("writing header: %w", buf.err)
	}
	return nil
}

// headerBuffer keeps the first write error and skips all following writes.
type headerBuffer struct {
	w   io.Writer
	err error
}

func (b *headerBuffer) printf(format string, args ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.w, format, args...)
}

func (b *headerBuffer) write(s string) {
	if b.err != nil {
		return
	}
	_, b.err = io.WriteString(b.w, s)
}
