// Package imageutil provides the pure Go pixel operations behind imgedit:
// color adjustment, 3x3 convolution, pixelation, cropping, rotation,
// resizing and image I/O over tightly packed RGBA buffers.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage is the pixel buffer every stage consumes and produces. It wraps
// an image.RGBA whose bounds start at the origin and whose stride is exactly
// 4*width, so Pix holds width*height RGBA samples with no padding.
//
// The samples are straight (non-premultiplied) alpha, like a canvas
// ImageData buffer, even though the embedded type is image.RGBA. Hand the
// buffer to image libraries through NRGBA, never as the embedded image.RGBA.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new zeroed RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewRGBAImageFromPix wraps an existing sample slice without copying it.
// The slice must hold exactly width*height*4 bytes in R,G,B,A order.
func NewRGBAImageFromPix(width, height int, pix []uint8) (*RGBAImage, error) {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d samples, got %d",
			ErrBufferSize, width, height, width*height*4, len(pix))
	}
	return &RGBAImage{
		RGBA: &image.RGBA{
			Pix:    pix,
			Stride: width * 4,
			Rect:   image.Rect(0, 0, width, height),
		},
	}, nil
}

// RGBAImageFromImage converts any image.Image to a packed RGBAImage with its
// origin at (0, 0) and straight alpha.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		return &RGBAImage{RGBA: &image.RGBA{Pix: nrgba.Pix, Stride: nrgba.Stride, Rect: nrgba.Rect}}
	}

	// Already straight alpha: copy rows as they are.
	dst := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		s := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(dst.Pix[dst.offset(0, y):dst.offset(0, y+1)], nrgba.Pix[s:s+width*4])
	}
	return dst
}

// NRGBA returns an image.NRGBA view of img's samples. The view shares Pix
// with img, so writes through either are visible in both.
func (img *RGBAImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y) with full opacity.
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// Equal reports whether both buffers have the same size and samples.
func (img *RGBAImage) Equal(other *RGBAImage) bool {
	if img.Width() != other.Width() || img.Height() != other.Height() {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// offset returns the index of the first sample of pixel (x, y).
func (img *RGBAImage) offset(x, y int) int {
	return y*img.Stride + x*4
}
