package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a user-supplied package name before it is
// resolved against the registry. It rejects names that could be used for
// path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //)
//   - No null bytes or backslashes
//   - Maximum length of 256 characters
//
// Published-name shape (scopes, suffixes, underscores) is not checked
// here; the registry's resolution passes handle those.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// conceptIDRegex matches cross-language ids. Directory names in the zk-kit
// repositories are alphanumeric with hyphens, underscores, and dots; the
// case-insensitive graph lookup handles casing.
var conceptIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateConceptID validates a cross-language concept id.
func ValidateConceptID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidConcept, "concept id cannot be empty")
	}

	if len(id) > 100 {
		return New(ErrCodeInvalidConcept, "concept id too long (max 100 characters)")
	}

	if !conceptIDRegex.MatchString(id) {
		return New(ErrCodeInvalidConcept, "invalid concept id: %q", id)
	}

	return nil
}
