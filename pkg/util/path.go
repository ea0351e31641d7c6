package util

import (
	"path/filepath"
	"slices"
	"strings"
)

// CleanRelative cleans a relative path and rejects it when it is empty,
// absolute, or still climbs above its base after cleaning.
func CleanRelative(p string) (string, bool) {
	cleaned, ok := CleanPath(p)
	if !ok || filepath.IsAbs(cleaned) {
		return "", false
	}
	return cleaned, true
}

// CleanPath cleans p and rejects it when it is empty or a ".." element
// survives cleaning. Absolute paths are allowed.
func CleanPath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	// Backslashes count as separators so "a\..\..\b" is caught on any OS.
	if hasParentElement(filepath.Clean(strings.ReplaceAll(p, `\`, "/"))) {
		return "", false
	}
	return filepath.Clean(p), true
}

// JoinWithin joins rel onto base. It fails when rel is absolute or would
// resolve outside base.
func JoinWithin(base, rel string) (string, bool) {
	cleaned, ok := CleanRelative(rel)
	if !ok {
		return "", false
	}
	return filepath.Join(base, cleaned), true
}

func hasParentElement(p string) bool {
	return slices.Contains(strings.Split(filepath.ToSlash(p), "/"), "..")
}
