package install

import (
	"path/filepath"
	"strings"
)

// LooksLikePath reports whether the string is shaped like a filesystem
// path rather than an entity name or selector.
func LooksLikePath(s string) bool {
	if strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") || strings.HasPrefix(s, "/") {
		return true
	}
	if strings.Contains(s, string(filepath.Separator)) {
		return true
	}
	// On Windows, also check for forward slash
	if filepath.Separator != '/' && strings.Contains(s, "/") {
		return true
	}
	return false
}

// MightBePath catches path-shaped selector tokens LooksLikePath misses:
// definition filenames and Windows-style paths on any platform.
func MightBePath(s string) bool {
	if strings.HasSuffix(strings.ToLower(s), ".md") {
		return true
	}
	return strings.Contains(s, `\`)
}
