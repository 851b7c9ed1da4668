package video

import (
	"path/filepath"
	"sort"
	"strings"
)

// MaxVideoSize is the upload ceiling.
const MaxVideoSize = 500 * 1024 * 1024 // 500 MB

// AllowedExtensions defines which container formats are accepted at
// upload time. Comparison is on the lowercased filename extension.
var AllowedExtensions = map[string]bool{
	"mp4":  true,
	"webm": true,
	"mov":  true,
	"avi":  true,
	"mkv":  true,
	"m4v":  true,
	"3gp":  true,
}

// AllowedExtensionList returns the accepted extensions sorted, for
// display in rejection responses.
func AllowedExtensionList() []string {
	exts := make([]string, 0, len(AllowedExtensions))
	for ext := range AllowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Ext returns the lowercased extension of filename without the dot.
func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ValidateUpload checks the declared size and filename of an incoming
// upload. It has no side effects and must pass before any bytes are
// written or an identifier assigned. Returns the normalized extension.
func ValidateUpload(filename string, size int64) (string, error) {
	if size == 0 {
		return "", ErrEmptyFile
	}
	if size > MaxVideoSize {
		return "", ErrTooLarge
	}

	ext := Ext(filename)
	if !AllowedExtensions[ext] {
		return "", ErrUnsupportedFormat
	}

	return ext, nil
}
