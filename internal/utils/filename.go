package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Multiple whitespace characters to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// DefaultAggregateName is used when an aggregate name sanitizes to nothing.
const DefaultAggregateName = "final"

// SanitizeFilename makes a user supplied name safe to use as a file name.
// Square brackets are replaced so the result never carries the generated
// marker by accident.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Limit length (most filesystems support 255, but leave room for suffixes)
	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}

	if filename == "" {
		filename = DefaultAggregateName
	}

	return filename
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SnapshotFilename names the snapshot of source tagged with suffix:
// <base>_<suffix>[gen]<ext>.
func SnapshotFilename(source string, suffix entities.Suffix, ext string) string {
	return BaseName(source) + "_" + string(suffix) + entities.GeneratedMarker + ext
}

// AggregateFilename names the concatenation of all final snapshots.
func AggregateFilename(name, ext string) string {
	return SanitizeFilename(name) + entities.GeneratedMarker + ext
}

// IsGenerated reports whether a file name carries the generated marker.
func IsGenerated(filename string) bool {
	return strings.Contains(filepath.Base(filename), entities.GeneratedMarker)
}
