package imageutil

import "math"

// Kernel is a 3x3 integer convolution kernel in row-major order.
type Kernel struct {
	Weights [9]int32
	// Divisor normalizes the weighted sum. It is never zero.
	Divisor int32
}

// NewKernel creates a kernel whose divisor is the sum of its weights, or 1
// when the weights sum to zero.
func NewKernel(weights [9]int32) *Kernel {
	var sum int32
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		sum = 1
	}
	return &Kernel{Weights: weights, Divisor: sum}
}

// SharpenKernel returns the 4-neighbor sharpening kernel.
func SharpenKernel() *Kernel {
	return NewKernel([9]int32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// EdgeKernel returns the 8-neighbor Laplacian edge kernel. Its weights sum
// to zero, so its divisor is 1.
func EdgeKernel() *Kernel {
	return NewKernel([9]int32{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	})
}

// EmbossKernel returns the diagonal emboss kernel.
func EmbossKernel() *Kernel {
	return NewKernel([9]int32{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	})
}

// BlurKernel returns the 3x3 box blur kernel.
func BlurKernel() *Kernel {
	return NewKernel([9]int32{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	})
}

// GaussianBlurKernel returns the 3x3 binomial Gaussian kernel.
func GaussianBlurKernel() *Kernel {
	return NewKernel([9]int32{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	})
}

// Convolve applies a 3x3 kernel to the interior pixels of an RGBA image and
// returns a new image. R, G and B are filtered independently; alpha comes
// from the source pixel. Border pixels are copied unchanged. Images smaller
// than 3x3 are returned as a copy.
func Convolve(img *RGBAImage, kernel *Kernel) *RGBAImage {
	dst := img.Clone()
	if CheckKernelDimensions(img) != nil {
		return dst
	}

	divisor := kernel.Divisor
	if divisor == 0 {
		divisor = 1
	}
	div := float64(divisor)
	width, height := img.Width(), img.Height()
	src, stride := img.Pix, img.Stride
	k := &kernel.Weights

	forEachRowBand(height-2, func(y0, y1 int) {
		for y := y0 + 1; y < y1+1; y++ {
			for x := 1; x < width-1; x++ {
				var sumR, sumG, sumB int32
				for ky := 0; ky < 3; ky++ {
					row := (y+ky-1)*stride + (x-1)*4
					for kx := 0; kx < 3; kx++ {
						w := k[ky*3+kx]
						p := row + kx*4
						sumR += int32(src[p]) * w
						sumG += int32(src[p+1]) * w
						sumB += int32(src[p+2]) * w
					}
				}

				i := y*stride + x*4
				dst.Pix[i] = clampUint8(float64(sumR) / div)
				dst.Pix[i+1] = clampUint8(float64(sumG) / div)
				dst.Pix[i+2] = clampUint8(float64(sumB) / div)
				dst.Pix[i+3] = src[i+3]
			}
		}
	})

	return dst
}

// clampUint8 clamps a float64 to [0, 255] and rounds half to even.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
