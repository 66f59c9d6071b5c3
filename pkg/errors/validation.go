package errors

import (
	"math"
	"unicode"

	"github.com/matzehuels/framescope/pkg/geometry"
)

// maxNodeIDLength bounds IDs accepted from outside the process.
const maxNodeIDLength = 256

// ValidateNodeID validates an element ID received from a host application.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - Maximum length of 256 bytes
//   - No control characters or null bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateParentID validates an optional parent ID. Empty means root.
func ValidateParentID(id string) error {
	if id == "" {
		return nil
	}
	return ValidateNodeID(id)
}

// ValidateFrame rejects frames the geometry code cannot measure: NaN or
// infinite components and negative sizes. Zero-sized frames are allowed.
func ValidateFrame(r geometry.Rect) error {
	if !r.IsFinite() {
		return New(ErrCodeInvalidFrame, "frame has non-finite components: %+v", r)
	}
	if r.Width < 0 || r.Height < 0 {
		return New(ErrCodeInvalidFrame, "frame has negative size %gx%g", r.Width, r.Height)
	}
	return nil
}

// ValidateScale validates a positive, finite scale factor such as a
// terminal cell size.
func ValidateScale(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be a positive number, got %g", name, v)
	}
	return nil
}
