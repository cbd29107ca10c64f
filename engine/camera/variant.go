package camera

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned when a camera variant name is not recognized.
var ErrUnknownVariant = errors.New("unknown camera variant")

// Variant names a camera rotation representation.
type Variant string

const (
	VariantEuler      Variant = "euler"
	VariantQuaternion Variant = "quaternion"
)

// ParseVariant converts a case-insensitive name into a Variant.
//
// Parameters:
//   - name: "euler" or "quaternion"
//
// Returns:
//   - Variant: the parsed variant
//   - error: ErrUnknownVariant if name is not recognized
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case VariantEuler, VariantQuaternion:
		return v, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownVariant)
	}
}

// New creates a camera of the given variant.
//
// Parameters:
//   - variant: the rotation representation
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: ErrUnknownVariant if variant is not recognized
func New(variant Variant, options ...CameraBuilderOption) (Camera, error) {
	switch variant {
	case VariantEuler:
		return NewEulerCamera(options...), nil
	case VariantQuaternion:
		return NewQuaternionCamera(options...), nil
	default:
		return nil, fmt.Errorf("%q: %w", string(variant), ErrUnknownVariant)
	}
}
