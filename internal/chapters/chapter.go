package chapters

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var reUnsafe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)

// sanitize keeps a series title readable as a folder name while removing
// characters that are not valid in paths on common filesystems.
func sanitize(s string) string {
	s = reUnsafe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")

	return strings.Trim(s, ". ")
}

// FormatNumber renders a chapter number without trailing zeros: 5, 64.5.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FolderName is "<series> <chapter>", e.g. "Wakusei No Samidare 5".
func FolderName(series string, number float64) string {
	name := sanitize(series)
	if name == "" {
		return FormatNumber(number)
	}
	return name + " " + FormatNumber(number)
}

// DestDir is the folder a chapter's pages are written to:
// <out>/<series>/<series> <chapter>.
func DestDir(out, series string, number float64) string {
	return filepath.Join(out, sanitize(series), FolderName(series, number))
}

// OutputCBZPath is the archive written next to the chapter folder.
func OutputCBZPath(out, series string, number float64) string {
	return filepath.Join(out, sanitize(series), FolderName(series, number)+".cbz")
}
