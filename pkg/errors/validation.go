package errors

import (
	"regexp"
)

// boxIDRegex matches box identifiers usable in documents, SVG ids and DOT node names.
var boxIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)

// ValidateBoxID validates a box identifier from a layout document.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Must start with a letter or underscore
//   - Only letters, digits and "_.:-" afterwards
func ValidateBoxID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "box id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidDocument, "box id too long (max 128 characters)")
	}
	if !boxIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDocument, "invalid box id: %q", id)
	}
	return nil
}

// colorRegex matches "#rgb", "#rrggbb" and plain CSS color names.
var colorRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z]+)$`)

// ValidateColor validates a box fill color from a layout document.
// Empty means "renderer default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidDocument, "invalid color: %q", color)
	}
	return nil
}
