// Package verification checks that the two linked driver images can be compared.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// ErrImageLengthMismatch is returned for linked images that differ in size.
var ErrImageLengthMismatch = errors.New("mismatched image lengths")

// maxLoggedDifferences limits the debug output of differing offsets.
const maxLoggedDifferences = 10

// CheckImagePair verifies that both images have the same length and logs
// the first differing offsets at debug level.
func CheckImagePair(logger *log.Logger, base, shifted []byte) error {
	if len(base) != len(shifted) {
		return fmt.Errorf("%w, %d != %d", ErrImageLengthMismatch, len(base), len(shifted))
	}

	var diffs int
	for i := range base {
		if base[i] == shifted[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedDifferences {
			logger.Debug("Relocated byte",
				log.Hex("offset", i),
				log.Hex("base", base[i]),
				log.Hex("shifted", shifted[i]))
		}
	}

	logger.Debug("Compared linked images",
		log.Int("size", len(base)),
		log.Int("differences", diffs))
	return nil
}
