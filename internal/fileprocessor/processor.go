// Package fileprocessor handles the intermediate files of a driver build
package fileprocessor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/retroenv/nsfdriver/internal/chip"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ObjectFile is the object file name that ca65 writes for every target.
const ObjectFile = "driver.o"

// IntermediateFiles returns the paths of all files that the build of a
// target creates in the work directory.
func IntermediateFiles(workDir string, target chip.Target, imagePrefixes ...string) []string {
	files := []string{filepath.Join(workDir, target.ListingFile())}
	for _, prefix := range imagePrefixes {
		files = append(files, filepath.Join(workDir, target.ImageFile(prefix)))
	}
	return append(files, filepath.Join(workDir, ObjectFile))
}

// RemoveFiles removes all given files, files that do not exist are ignored.
func RemoveFiles(logger *log.Logger, files ...string) error {
	var errs []error
	for _, file := range files {
		err := os.Remove(file)
		switch {
		case err == nil:
			logger.Debug("Removed file", log.String("file", file))
		case errors.Is(err, fs.ErrNotExist):
			// not created by a failed build step
		default:
			errs = append(errs, fmt.Errorf("removing file '%s': %w", file, err))
		}
	}
	return errors.Join(errs...)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, quiet bool, name, version, commit, date string) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}
