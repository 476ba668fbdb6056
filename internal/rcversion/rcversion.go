// Package rcversion updates the version fields of a Windows resource file
// from the version defines of a C header.
package rcversion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Names of the header defines.
const (
	APIDefine      = "VERSION_API"
	MajorDefine    = "VERSION_MAJ"
	MinorDefine    = "VERSION_MIN"
	BuildDefine    = "VERSION_BLD"
	RevisionDefine = "VERSION_REV"

	wipDefine = "WIP"
)

// ErrDefineNotFound is returned when a version define is missing in the header.
var ErrDefineNotFound = errors.New("version define not found")

// Version is the four part version number of the application.
type Version struct {
	API   int
	Major int
	Minor int
	Build int
}

// String returns the version as a.b.c.d.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.API, v.Major, v.Minor, v.Build)
}

// Product returns the product version as a.b.c.
func (v Version) Product() string {
	return fmt.Sprintf("%d.%d.%d", v.API, v.Major, v.Minor)
}

// Numeric returns the version as a,b,c,d as used by the FILEVERSION and
// PRODUCTVERSION statements.
func (v Version) Numeric() string {
	return fmt.Sprintf("%d,%d,%d,%d", v.API, v.Major, v.Minor, v.Build)
}

// ParseHeader reads the version defines from a header.
// The build number is read from VERSION_BLD, or VERSION_REV if the header
// does not define it. For release builds, where the WIP define is commented
// out, the second definition of the build number is used if present.
func ParseHeader(reader io.Reader) (Version, error) {
	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Version{}, fmt.Errorf("reading header: %w", err)
	}

	var (
		v   Version
		err error
	)
	if v.API, err = defineValue(lines, APIDefine, false); err != nil {
		return Version{}, err
	}
	if v.Major, err = defineValue(lines, MajorDefine, false); err != nil {
		return Version{}, err
	}
	if v.Minor, err = defineValue(lines, MinorDefine, false); err != nil {
		return Version{}, err
	}

	release := true
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		commented := strings.HasPrefix(trimmed, "//")
		fields := strings.Fields(strings.TrimPrefix(trimmed, "//"))
		if isDefine(fields, wipDefine) {
			release = commented
			break
		}
	}

	buildDefine := BuildDefine
	if len(defineLines(lines, BuildDefine)) == 0 {
		buildDefine = RevisionDefine
	}
	if v.Build, err = defineValue(lines, buildDefine, release); err != nil {
		return Version{}, err
	}

	return v, nil
}

func isDefine(fields []string, name string) bool {
	return len(fields) >= 2 && fields[0] == "#define" && fields[1] == name
}

// defineLines returns the fields of all lines that define the name.
func defineLines(lines []string, name string) [][]string {
	var found [][]string
	for _, line := range lines {
		fields := strings.Fields(line)
		if isDefine(fields, name) {
			found = append(found, fields)
		}
	}
	return found
}

// defineValue returns the integer value of the first definition of name, or
// of the second one if second is set and the header defines it more than once.
func defineValue(lines []string, name string, second bool) (int, error) {
	found := defineLines(lines, name)
	var fields []string
	switch {
	case len(found) == 0:
		return 0, fmt.Errorf("%w: %s", ErrDefineNotFound, name)
	case second && len(found) > 1:
		fields = found[1]
	default:
		fields = found[0]
	}

	var value string
	if len(fields) > 2 {
		value = fields[2]
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing value of %s: %w", name, err)
	}
	return result, nil
}

type replacement struct {
	key   string
	value string
}

func replacements(v Version) []replacement {
	return []replacement{
		{key: "FILEVERSION", value: " " + v.Numeric()},
		{key: "PRODUCTVERSION", value: " " + v.Numeric()},
		{key: `VALUE "ProductVersion"`, value: `, "` + v.Product() + `"`},
		{key: `VALUE "FileVersion"`, value: `, "` + v.String() + `"`},
	}
}

// Stamp copies the resource file content from reader to writer and replaces
// everything after the version keys with the given version. It returns the
// number of changed lines. Line endings are kept as they are.
func Stamp(reader io.Reader, writer io.Writer, v Version) (int, error) {
	repl := replacements(v)
	buf := bufio.NewReader(reader)

	var changed int
	for {
		line, err := buf.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return changed, fmt.Errorf("reading resource file: %w", err)
		}
		if line == "" && err != nil {
			return changed, nil
		}

		body, ending := splitLineEnding(line)
		original := body
		for _, r := range repl {
			if strings.Contains(body, r.key) {
				body = strings.Split(body, r.key)[0] + r.key + r.value
			}
		}
		if body != original {
			changed++
		}

		if _, werr := io.WriteString(writer, body+ending); werr != nil {
			return changed, fmt.Errorf("writing resource file: %w", werr)
		}
		if err != nil {
			return changed, nil
		}
	}
}

func splitLineEnding(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// UpdateFile reads the version of the header file and stamps it into the
// resource file in place.
func UpdateFile(headerFile, resourceFile string) (Version, error) {
	header, err := os.Open(headerFile)
	if err != nil {
		return Version{}, fmt.Errorf("opening file '%s': %w", headerFile, err)
	}
	v, err := ParseHeader(header)
	_ = header.Close()
	if err != nil {
		return Version{}, fmt.Errorf("parsing header '%s': %w", headerFile, err)
	}

	if err := stampFile(resourceFile, v); err != nil {
		return Version{}, err
	}
	return v, nil
}

func stampFile(resourceFile string, v Version) error {
	info, err := os.Stat(resourceFile)
	if err != nil {
		return fmt.Errorf("reading file info '%s': %w", resourceFile, err)
	}

	input, err := os.Open(resourceFile)
	if err != nil {
		return fmt.Errorf("opening file '%s': %w", resourceFile, err)
	}
	defer func() { _ = input.Close() }()

	output, err := os.CreateTemp(filepath.Dir(resourceFile), filepath.Base(resourceFile)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(output.Name()) }()

	if _, err := Stamp(input, output, v); err != nil {
		_ = output.Close()
		return err
	}
	if err := output.Chmod(info.Mode().Perm()); err != nil {
		_ = output.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	_ = input.Close()

	if err := os.Rename(output.Name(), resourceFile); err != nil {
		return fmt.Errorf("replacing file '%s': %w", resourceFile, err)
	}
	return nil
}
