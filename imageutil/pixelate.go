package imageutil

// MinPixelSize is the smallest mosaic block edge used by Pixelate.
const MinPixelSize = 5

// PixelSize returns the mosaic block edge for an image of the given width:
// one hundredth of the width, but never less than MinPixelSize.
func PixelSize(width int) int {
	return max(MinPixelSize, width/100)
}

// Pixelate turns img into a block mosaic. The image is box-downsampled by
// PixelSize(width) and scaled back up with nearest-neighbor replication, so
// every pixel of a block gets the block's mean color. Images smaller than
// 3x3 are returned as a copy.
func Pixelate(img *RGBAImage) *RGBAImage {
	if CheckKernelDimensions(img) != nil {
		return img.Clone()
	}
	size := PixelSize(img.Width())
	small := BoxDownsample(img, size)
	return NearestUpsample(small, size, img.Width(), img.Height())
}

// BoxDownsample shrinks img by an integer factor. The result is
// ceil(width/factor) x ceil(height/factor); each pixel is the rounded mean of
// all four channels over its factor x factor source block. Blocks on the
// right and bottom edges are clipped to the image.
func BoxDownsample(img *RGBAImage, factor int) *RGBAImage {
	if factor <= 1 {
		return img.Clone()
	}
	width, height := img.Width(), img.Height()
	dw := (width + factor - 1) / factor
	dh := (height + factor - 1) / factor
	dst := NewRGBAImage(dw, dh)

	forEachRowBand(dh, func(by0, by1 int) {
		for by := by0; by < by1; by++ {
			sy0, sy1 := by*factor, min((by+1)*factor, height)
			for bx := 0; bx < dw; bx++ {
				sx0, sx1 := bx*factor, min((bx+1)*factor, width)

				var sum [4]int
				for sy := sy0; sy < sy1; sy++ {
					i := img.offset(sx0, sy)
					for sx := sx0; sx < sx1; sx++ {
						sum[0] += int(img.Pix[i])
						sum[1] += int(img.Pix[i+1])
						sum[2] += int(img.Pix[i+2])
						sum[3] += int(img.Pix[i+3])
						i += 4
					}
				}

				count := (sx1 - sx0) * (sy1 - sy0)
				o := dst.offset(bx, by)
				for c := 0; c < 4; c++ {
					dst.Pix[o+c] = uint8((sum[c] + count/2) / count)
				}
			}
		}
	})
	return dst
}

// NearestUpsample enlarges small to width x height by replicating each pixel
// over a factor x factor block. Destination pixel (x, y) takes small pixel
// (x/factor, y/factor), clamped to small's bounds.
func NearestUpsample(small *RGBAImage, factor, width, height int) *RGBAImage {
	dst := NewRGBAImage(width, height)
	if factor < 1 || small.Width() == 0 || small.Height() == 0 {
		return dst
	}
	sw, sh := small.Width(), small.Height()

	forEachRowBand(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			sy := min(y/factor, sh-1)
			o := dst.offset(0, y)
			for x := 0; x < width; x++ {
				s := small.offset(min(x/factor, sw-1), sy)
				copy(dst.Pix[o:o+4], small.Pix[s:s+4])
				o += 4
			}
		}
	})
	return dst
}
