package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateMapID validates the identifier of a stored mind map.
// Identifiers are UUIDs as generated by the store.
func ValidateMapID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "map id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid map id %q", id)
	}
	return nil
}

// ValidateTitle validates a mind map title for storage.
//
// The rules are intentionally conservative:
//   - No empty titles
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}

	if len(title) > 256 {
		return New(ErrCodeInvalidInput, "title too long (max 256 characters)")
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path given on the command line or in a
// theme reference. It rejects empty paths, null bytes, and control
// characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
