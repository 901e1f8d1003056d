package imageutil

import (
	"fmt"
	"math"
)

// MinSelection is the smallest crop selection edge, in display units, that
// CropSelection accepts.
const MinSelection = 10

// Rect is an axis-aligned rectangle. Crop interprets it in source pixels and
// CropSelection in display units.
type Rect struct {
	X, Y, W, H float64
}

// Rotation is a quarter-turn direction.
type Rotation int

const (
	// RotateCounterClockwise turns the image 90 degrees to the left.
	RotateCounterClockwise Rotation = -1
	// RotateClockwise turns the image 90 degrees to the right.
	RotateClockwise Rotation = 1
)

func (r Rotation) String() string {
	switch r {
	case RotateCounterClockwise:
		return "counter-clockwise"
	case RotateClockwise:
		return "clockwise"
	}
	return fmt.Sprintf("Rotation(%d)", int(r))
}

// Crop copies the part of img covered by rect into a new image. Coordinates
// are truncated: the region starts at (floor(X), floor(Y)) and spans
// floor(W) x floor(H) pixels. The region is clamped to the image bounds; a
// region that ends up empty returns ErrInvalidSelection.
func Crop(img *RGBAImage, rect Rect) (*RGBAImage, error) {
	width, height := img.Width(), img.Height()
	if math.IsNaN(rect.X+rect.Y+rect.W+rect.H) {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidSelection, rect)
	}

	left := clampSpan(math.Floor(rect.X), width)
	top := clampSpan(math.Floor(rect.Y), height)
	right := clampSpan(math.Floor(rect.X)+math.Floor(rect.W), width)
	bottom := clampSpan(math.Floor(rect.Y)+math.Floor(rect.H), height)
	if right <= left || bottom <= top {
		return nil, fmt.Errorf("%w: %+v outside %dx%d image",
			ErrInvalidSelection, rect, width, height)
	}

	dst := NewRGBAImage(right-left, bottom-top)
	rowBytes := (right - left) * 4
	for y := top; y < bottom; y++ {
		s := img.offset(left, y)
		d := dst.offset(0, y-top)
		copy(dst.Pix[d:d+rowBytes], img.Pix[s:s+rowBytes])
	}
	return dst, nil
}

// CropSelection crops img to a selection drawn on a scaled-down display of
// it. sel is in display units and displayW x displayH is the size the image
// was rendered at. Each axis is scaled independently by natural/displayed
// size before cropping. Selections narrower or shorter than MinSelection
// display units return ErrInvalidSelection.
func CropSelection(img *RGBAImage, sel Rect, displayW, displayH float64) (*RGBAImage, error) {
	if sel.W < MinSelection || sel.H < MinSelection {
		return nil, fmt.Errorf("%w: %gx%g is below the %d unit minimum",
			ErrInvalidSelection, sel.W, sel.H, MinSelection)
	}
	if displayW <= 0 || displayH <= 0 {
		return nil, fmt.Errorf("%w: display size %gx%g",
			ErrInvalidSelection, displayW, displayH)
	}
	return Crop(img, ScaleRect(sel, float64(img.Width())/displayW, float64(img.Height())/displayH))
}

// ScaleRect multiplies the horizontal fields of r by sx and the vertical
// fields by sy.
func ScaleRect(r Rect, sx, sy float64) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy}
}

func clampSpan(v float64, limit int) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(limit) {
		return limit
	}
	return int(v)
}

// Rotate turns img by a quarter turn in the given direction and returns a new
// image with width and height swapped. Pixels are relocated exactly, without
// resampling.
func Rotate(img *RGBAImage, dir Rotation) (*RGBAImage, error) {
	if dir != RotateClockwise && dir != RotateCounterClockwise {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRotation, int(dir))
	}

	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(height, width)
	forEachRowBand(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			s := img.offset(0, y)
			for x := 0; x < width; x++ {
				var d int
				if dir == RotateClockwise {
					d = dst.offset(height-1-y, x)
				} else {
					d = dst.offset(y, width-1-x)
				}
				copy(dst.Pix[d:d+4], img.Pix[s:s+4])
				s += 4
			}
		}
	})
	return dst, nil
}
