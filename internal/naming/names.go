// Package naming builds and checks the entry names used for staged changes.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultFileExt is appended to generated file names when no extension is configured
const DefaultFileExt = ".txt"

// ErrInvalidName is returned for names that are not a single path segment
var ErrInvalidName = errors.New("invalid name")

// Split separates a name into stem and extension.
// Leading dots belong to the stem, so ".env" has no extension and
// "archive.tar.gz" splits into "archive.tar" and ".gz".
func Split(name string) (stem, ext string) {
	trimmed := strings.TrimLeft(name, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 {
		return name, ""
	}

	cut := len(name) - len(trimmed) + idx

	return name[:cut], name[cut:]
}

// WithSuffix inserts _NNN before the extension of name.
// Example: WithSuffix("report.txt", 2) == "report_002.txt"
func WithSuffix(name string, n int) string {
	stem, ext := Split(name)
	return fmt.Sprintf("%s_%03d%s", stem, n, ext)
}

// Sequence returns the n-th sequential name for prefix, e.g. folder_001
func Sequence(prefix string, n int, ext string) string {
	return fmt.Sprintf("%s_%03d%s", prefix, n, ext)
}

// Validate checks that name is a single, non-empty path segment.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidName, name)
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, name)
	}

	return nil
}

// ParseList splits user input on commas and newlines, trims each entry and
// drops blanks. Order is preserved.
func ParseList(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}

	return names
}
