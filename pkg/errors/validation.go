package errors

import (
	"strings"
	"unicode"
)

// ValidateFontFace validates a CSS font family name used for labels.
//
// The validation rules are intentionally conservative since the value ends
// up inside SVG attributes:
//   - No empty names
//   - No control characters
//   - No quotes or angle brackets
//   - Maximum length of 128 characters
func ValidateFontFace(face string) error {
	if strings.TrimSpace(face) == "" {
		return New(ErrCodeInvalidConfig, "font face cannot be empty")
	}

	if len(face) > 128 {
		return New(ErrCodeInvalidConfig, "font face too long (max 128 characters)")
	}

	for _, r := range face {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "font face contains invalid control characters")
		}
	}

	if strings.ContainsAny(face, `"<>`) {
		return New(ErrCodeInvalidConfig, "font face contains invalid characters: %q", face)
	}

	return nil
}

// ValidateTypeName validates an activity type key used for per-type overrides.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "activity type name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidConfig, "activity type name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "activity type name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path supplied by a caller for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateURL validates a connection URL string.
// It ensures the URL uses one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %v", schemes)
}
