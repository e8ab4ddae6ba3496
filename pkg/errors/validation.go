package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxStageNameLength bounds stage names so they stay readable in reports.
const maxStageNameLength = 64

// ValidateStageName validates a caller-supplied stage name.
//
// The validation rules:
//   - Names may be empty (a default is assigned later)
//   - No control characters or null bytes
//   - Maximum length of 64 characters
//   - No leading or trailing whitespace
func ValidateStageName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > maxStageNameLength {
		return New(ErrCodeInvalidPuzzle, "stage name too long (max %d characters)", maxStageNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPuzzle, "stage name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidPuzzle, "stage name %q has surrounding whitespace", name)
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output or input
// format names. Comparison is case-sensitive.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
