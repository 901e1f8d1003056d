package imageutil

import "errors"

var (
	// ErrDecode is returned when an image cannot be decoded. The pipeline is
	// never run on a buffer that failed to load.
	ErrDecode = errors.New("image decode failed")

	// ErrInvalidSelection is returned for crop rectangles that are too small
	// or fall completely outside the image.
	ErrInvalidSelection = errors.New("invalid crop selection")

	// ErrDimensionTooSmall reports a buffer too small for a 3x3 neighborhood.
	// Convolve and Pixelate degrade to a copy of their input instead of
	// returning it.
	ErrDimensionTooSmall = errors.New("image smaller than 3x3")

	// ErrBufferSize is returned when a sample slice does not match the
	// declared dimensions.
	ErrBufferSize = errors.New("sample count does not match dimensions")

	// ErrInvalidRotation is returned for rotation directions other than
	// RotateClockwise and RotateCounterClockwise.
	ErrInvalidRotation = errors.New("rotation must be -1 or +1")
)

// CheckKernelDimensions returns ErrDimensionTooSmall when img has no interior
// pixel for a 3x3 kernel.
func CheckKernelDimensions(img *RGBAImage) error {
	if img.Width() < 3 || img.Height() < 3 {
		return ErrDimensionTooSmall
	}
	return nil
}
