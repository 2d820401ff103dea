package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// sceneNameRegex matches scene names usable as file stems and URL segments.
var sceneNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSceneName validates a scene name for safety and correctness.
// Scene names double as file names in a scene directory and as URL path
// segments in the preview server, so the rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters or path separators
//   - No path traversal sequences (..)
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "scene name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "scene name too long (max 128 characters)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidScene, "scene name contains invalid characters: %q", "..")
	}

	if !sceneNameRegex.MatchString(name) {
		return New(ErrCodeInvalidScene, "invalid scene name: %q", name)
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// hexColorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// colorNameRegex matches bare colour names such as "steelblue".
var colorNameRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// ValidateColor checks that s is syntactically a colour: either a hex
// literal or a bare name. Whether a name is known is decided by the caller.
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidStyle, "color cannot be empty")
	}
	if strings.HasPrefix(s, "#") {
		if !hexColorRegex.MatchString(s) {
			return New(ErrCodeInvalidStyle, "invalid hex color: %q", s)
		}
		return nil
	}
	if !colorNameRegex.MatchString(s) {
		return New(ErrCodeInvalidStyle, "invalid color name: %q", s)
	}
	return nil
}
