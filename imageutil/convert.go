package imageutil

// GrayscaleAverage replaces R, G and B of every pixel with their unweighted
// mean, rounded to the nearest integer. It rewrites img in place: each pixel
// depends only on itself, so no unmodified neighbors are needed. Alpha is
// left unchanged.
func GrayscaleAverage(img *RGBAImage) {
	width := img.Width()
	forEachRowBand(img.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			i := img.offset(0, y)
			end := i + width*4
			for ; i < end; i += 4 {
				sum := int(img.Pix[i]) + int(img.Pix[i+1]) + int(img.Pix[i+2])
				// sum/3 never ends in .5, so round-half-up is exact.
				avg := uint8((sum*2 + 3) / 6)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = avg, avg, avg
			}
		}
	})
}

// OffsetRGB adds delta to R, G and B of every pixel in place, clamping to
// [0, 255]. Alpha is left unchanged. Emboss output uses an offset of 128 to
// move the zero response to mid-gray.
func OffsetRGB(img *RGBAImage, delta int) {
	width := img.Width()
	forEachRowBand(img.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			i := img.offset(0, y)
			end := i + width*4
			for ; i < end; i += 4 {
				img.Pix[i] = offsetSample(img.Pix[i], delta)
				img.Pix[i+1] = offsetSample(img.Pix[i+1], delta)
				img.Pix[i+2] = offsetSample(img.Pix[i+2], delta)
			}
		}
	})
}

func offsetSample(v uint8, delta int) uint8 {
	n := int(v) + delta
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
