package errors

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MaxGridCells caps width×height for a single session so that a typo in a
// flag cannot allocate gigabytes of visited-state.
const MaxGridCells = 4_000_000

// ValidateDimensions checks that a grid size is usable.
//
// Validation rules:
//   - width and height must both be at least 1
//   - width×height must not exceed MaxGridCells
func ValidateDimensions(width, height int) error {
	if width < 1 || height < 1 {
		return New(ErrCodeInvalidDimensions, "grid dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxGridCells/height {
		return New(ErrCodeInvalidDimensions, "grid too large: %dx%d (max %d cells)", width, height, MaxGridCells)
	}
	return nil
}

// ValidateCellSize checks the pixel size of one cell.
func ValidateCellSize(size float64) error {
	if size <= 0 {
		return New(ErrCodeInvalidInput, "cell size must be positive, got %g", size)
	}
	return nil
}

// ValidateChoice checks that value is one of allowed, reporting the
// allowed set in the message.
func ValidateChoice(code Code, kind, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateDrawingID validates a stored drawing identifier.
// IDs reach the storage layer straight from URL paths, so anything other
// than the canonical lowercase form uuid.NewString produces is rejected
// before a lookup happens.
func ValidateDrawingID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "drawing id cannot be empty")
	}
	u, err := uuid.Parse(id)
	if err != nil || u.String() != id {
		return New(ErrCodeInvalidInput, "invalid drawing id: %q", id)
	}
	return nil
}
