// Package reloc extracts the driver data and its relocation offsets by
// comparing two images of the driver linked at different base addresses.
package reloc

import (
	"fmt"

	"github.com/retroenv/nsfdriver/internal/listing"
	"github.com/retroenv/nsfdriver/internal/verification"
)

// Base addresses of the two linker configurations.
const (
	BaseAddress    = 0xC000
	ShiftedAddress = 0xC100
)

// ShiftedHighByte is subtracted from relocated bytes of the shifted image to get
// the body relative high byte of a pointer.
const ShiftedHighByte = ShiftedAddress >> 8

// Result contains the driver data split into preamble and body.
type Result struct {
	Preamble []byte // first equal bytes of the driver header
	Body     []byte // driver code with pointer high bytes made body relative
	Words    []int  // offsets of relocated words not covered by named relocations
}

// Diff compares the image linked at BaseAddress with the image linked at
// ShiftedAddress. Bytes that differ are pointer high bytes; the ones that
// are not explained by a named relocation of the listing are returned as
// relocation word offsets pointing at the low byte of the word.
func Diff(base, shifted []byte, lst *listing.Listing) (*Result, error) {
	if len(base) != len(shifted) {
		return nil, fmt.Errorf("%w, %d != %d", verification.ErrImageLengthMismatch, len(base), len(shifted))
	}

	res := &Result{
		Preamble: make([]byte, 0, listing.PreambleSize),
	}

	for i, value := range shifted {
		if value == base[i] {
			if len(res.Preamble) < listing.PreambleSize {
				res.Preamble = append(res.Preamble, value)
			} else {
				res.Body = append(res.Body, value)
			}
			continue
		}

		res.Body = append(res.Body, value-ShiftedHighByte)

		offset := i - listing.PreambleSize
		if !lst.IsRelocated(offset) {
			res.Words = append(res.Words, offset-1)
		}
	}

	return res, nil
}
