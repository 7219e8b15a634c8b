package constants

import "strings"

// Source formats for a pipeline run.
const (
	IMAGE = "IMAGE"
	TEXT  = "TEXT"
)

// AllowedExtensions holds the default allowed file extensions for batch ingestion.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the source format for a file extension, or "" if unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "jpg", "jpeg", "png":
		return IMAGE
	case "txt":
		return TEXT
	default:
		return ""
	}
}

// IsTextExt reports whether the extension carries already-extracted OCR text.
func IsTextExt(ext string) bool {
	return NormalizeExt(ext) == "txt"
}
