package constants

import "strings"

// AllowedExtensions holds the file extensions the extraction service accepts.
// The service only processes PDF documents.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExtensionAllowed reports whether the given extension (with or without a
// leading dot) is accepted for upload.
func ExtensionAllowed(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
