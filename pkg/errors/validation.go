package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxTaskIDLength bounds task identifiers read from manifests.
const maxTaskIDLength = 256

// ValidateTaskID validates a task identifier read from untrusted input.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No leading or trailing whitespace
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateTaskID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTask, "task ID cannot be empty")
	}

	if len(id) > maxTaskIDLength {
		return New(ErrCodeInvalidTask, "task ID too long (max %d characters)", maxTaskIDLength)
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidTask, "task ID %q has leading or trailing whitespace", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTask, "task ID contains invalid control characters")
		}
	}

	return nil
}

// ValidateManifestPath validates a manifest path given on the command line.
// It ensures the path is non-empty, free of null bytes, and names a file with
// a supported extension.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidManifest, "manifest path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidManifest, "manifest path contains invalid characters")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml", ".yaml", ".yml":
		return nil
	case "":
		return New(ErrCodeInvalidManifest, "manifest %q has no file extension", path)
	default:
		return New(ErrCodeInvalidFormat, "unsupported manifest extension %q", filepath.Ext(path))
	}
}
