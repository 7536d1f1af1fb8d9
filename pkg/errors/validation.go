package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeRange checks that id lies in the 1-based range [1, max].
// It is used by input layers (CLI prompts, HTTP query parameters) before
// handing endpoints to the search engine.
func ValidateNodeRange(name string, id, max int) error {
	if max < 1 {
		return New(ErrCodeInvalidParameter, "graph has no nodes")
	}
	if id < 1 || id > max {
		return New(ErrCodeNodeNotFound, "%s must be between 1 and %d, got %d", name, max, id)
	}
	return nil
}

// ValidatePositive checks that v is a strictly positive integer.
func ValidatePositive(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be a positive integer, got %d", name, v)
	}
	return nil
}

// ValidateFormats checks every entry of formats against the allowed set.
func ValidateFormats(formats []string, allowed map[string]bool) error {
	for _, f := range formats {
		if !allowed[f] {
			return New(ErrCodeInvalidFormat, "invalid format: %q", f)
		}
	}
	return nil
}

// ValidateOutputPath validates a user-provided output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
