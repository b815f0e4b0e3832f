// Package utils provides utility functions for filename handling and UUID generation.
//
// Functions:
//   - SanitizeFilename: Returns a safe filename for storage.
//     Input: string (filename)
//     Output: string (sanitized filename)
//   - StoredName: Prefixes a sanitized filename with a UUID.
//   - DisplayName: Strips the storage prefix again.
//   - GenerateUUID: Returns a new UUID string.
//     Output: string (UUID)
//
// Used throughout the backend for safe file handling and unique IDs.
package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

// StoredName returns prefix-<uuid>-<sanitized name>. An empty prefix is
// omitted.
func StoredName(prefix, original string) string {
	name := GenerateUUID() + "-" + SanitizeFilename(original)
	if prefix != "" {
		name = prefix + "-" + name
	}
	return name
}

// DisplayName returns the client-facing part of a stored filename.
func DisplayName(stored string) string {
	name := filepath.Base(stored)
	if i := strings.Index(name, "-"); i >= 0 && i < 8 {
		// "sig-" style prefix
		if _, err := uuid.Parse(safeSlice(name, i+1, i+37)); err == nil {
			name = name[i+1:]
		}
	}
	if _, err := uuid.Parse(safeSlice(name, 0, 36)); err == nil && len(name) > 37 && name[36] == '-' {
		return name[37:]
	}
	return name
}

func safeSlice(s string, from, to int) string {
	if from > len(s) || to > len(s) {
		return ""
	}
	return s[from:to]
}

func GenerateUUID() string {
	return uuid.New().String()
}
