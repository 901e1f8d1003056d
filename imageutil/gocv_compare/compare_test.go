// Package gocv_compare checks the pure Go pixel operations against gocv
// (OpenCV). These tests require OpenCV to be installed.
//
// Run with: cd imageutil/gocv_compare && go test -v
package gocv_compare

import (
	"image"
	"testing"

	"github.com/wbrown/imgedit/imageutil"
	"gocv.io/x/gocv"
)

// gocvToRGBA converts a gocv.Mat (BGR) to an opaque RGBAImage.
func gocvToRGBA(mat gocv.Mat) *imageutil.RGBAImage {
	height, width := mat.Rows(), mat.Cols()
	img := imageutil.NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// gocv uses BGR format
			vec := mat.GetVecbAt(y, x)
			img.SetRGB(x, y, imageutil.RGB{R: vec[2], G: vec[1], B: vec[0]})
		}
	}
	return img
}

// rgbaToGocv converts an RGBAImage to gocv.Mat (BGR), dropping alpha.
func rgbaToGocv(img *imageutil.RGBAImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8UC3)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			// gocv uses BGR format
			mat.SetUCharAt(y, x*3, c.B)
			mat.SetUCharAt(y, x*3+1, c.G)
			mat.SetUCharAt(y, x*3+2, c.R)
		}
	}
	return mat
}

// kernelToGocv builds a normalized float kernel equivalent to k.
func kernelToGocv(k *imageutil.Kernel) gocv.Mat {
	mat := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	for i, w := range k.Weights {
		mat.SetFloatAt(i/3, i%3, float32(w)/float32(k.Divisor))
	}
	return mat
}

// maxRGBDiff returns the largest channel difference between a and b over
// the pixels inside inset, ignoring alpha.
func maxRGBDiff(t *testing.T, a, b *imageutil.RGBAImage, inset image.Rectangle) int {
	t.Helper()
	if a.Bounds() != b.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	worst := 0
	for y := inset.Min.Y; y < inset.Max.Y; y++ {
		for x := inset.Min.X; x < inset.Max.X; x++ {
			ca, cb := a.GetRGB(x, y), b.GetRGB(x, y)
			for _, d := range []int{
				int(ca.R) - int(cb.R),
				int(ca.G) - int(cb.G),
				int(ca.B) - int(cb.B),
			} {
				worst = max(worst, max(d, -d))
			}
		}
	}
	return worst
}

func TestCompareConvolve(t *testing.T) {
	kernels := []struct {
		name   string
		kernel *imageutil.Kernel
	}{
		{"Sharpen", imageutil.SharpenKernel()},
		{"Edge", imageutil.EdgeKernel()},
		{"Emboss", imageutil.EmbossKernel()},
		{"Blur", imageutil.BlurKernel()},
		{"GaussianBlur", imageutil.GaussianBlurKernel()},
	}

	img := imageutil.CreateEdgeImage(128, 96)
	mat := rgbaToGocv(img)
	defer mat.Close()

	for _, tc := range kernels {
		t.Run(tc.name, func(t *testing.T) {
			kernel := kernelToGocv(tc.kernel)
			defer kernel.Close()

			filtered := gocv.NewMat()
			defer filtered.Close()
			gocv.Filter2D(mat, &filtered, -1, kernel, image.Point{-1, -1}, 0, gocv.BorderDefault)
			gocvOut := gocvToRGBA(filtered)

			pureGoOut := imageutil.Convolve(img, tc.kernel)

			// Borders differ by design: OpenCV reflects, Convolve copies.
			interior := image.Rect(1, 1, img.Width()-1, img.Height()-1)
			diff := maxRGBDiff(t, gocvOut, pureGoOut, interior)
			t.Logf("%s max interior diff: %d", tc.name, diff)
			if diff > 1 {
				t.Errorf("%s interior differs by %d (threshold: 1)", tc.name, diff)
			}
		})
	}
}

func TestCompareRotate(t *testing.T) {
	testCases := []struct {
		name string
		dir  imageutil.Rotation
		flag gocv.RotateFlag
	}{
		{"Clockwise", imageutil.RotateClockwise, gocv.Rotate90Clockwise},
		{"CounterClockwise", imageutil.RotateCounterClockwise, gocv.Rotate90CounterClockwise},
	}

	img := imageutil.CreateColorBarsImage(120, 70)
	mat := rgbaToGocv(img)
	defer mat.Close()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rotated := gocv.NewMat()
			defer rotated.Close()
			gocv.Rotate(mat, &rotated, tc.flag)
			gocvOut := gocvToRGBA(rotated)

			pureGoOut, err := imageutil.Rotate(img, tc.dir)
			if err != nil {
				t.Fatal(err)
			}
			if !gocvOut.Equal(pureGoOut) {
				t.Errorf("%s rotation differs from gocv", tc.name)
			}
		})
	}
}

func TestCompareBoxDownsample(t *testing.T) {
	testCases := []struct {
		name          string
		width, height int
		factor        int
	}{
		{"Factor 5", 100, 60, 5},
		{"Factor 8", 256, 128, 8},
		{"Factor 2", 64, 64, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := imageutil.CreateGradientImage(tc.width, tc.height)
			mat := rgbaToGocv(img)
			defer mat.Close()

			// Area interpolation on an integer factor is a plain box average.
			small := gocv.NewMat()
			defer small.Close()
			gocv.Resize(mat, &small, image.Point{X: tc.width / tc.factor, Y: tc.height / tc.factor},
				0, 0, gocv.InterpolationArea)
			gocvOut := gocvToRGBA(small)

			pureGoOut := imageutil.BoxDownsample(img, tc.factor)

			diff := maxRGBDiff(t, gocvOut, pureGoOut, pureGoOut.Bounds())
			t.Logf("%s max diff: %d", tc.name, diff)
			if diff > 1 {
				t.Errorf("%s downsample differs by %d (threshold: 1)", tc.name, diff)
			}
		})
	}
}

func TestCompareResize(t *testing.T) {
	testCases := []struct {
		name      string
		srcWidth  int
		srcHeight int
		dstWidth  int
		dstHeight int
		threshold float64
	}{
		{"Downscale 2x", 256, 256, 128, 128, 10.0},
		{"Downscale 4x", 256, 256, 64, 64, 15.0},
		{"Arbitrary", 256, 256, 100, 75, 15.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := imageutil.CreateGradientImage(tc.srcWidth, tc.srcHeight)
			mat := rgbaToGocv(img)
			defer mat.Close()

			resizedMat := gocv.NewMat()
			defer resizedMat.Close()
			gocv.Resize(mat, &resizedMat, image.Point{X: tc.dstWidth, Y: tc.dstHeight},
				0, 0, gocv.InterpolationArea)
			gocvResized := gocvToRGBA(resizedMat)

			pureGoResized := imageutil.Resize(img, tc.dstWidth, tc.dstHeight, imageutil.InterpolationArea)

			mse := imageutil.CalculateMSE(gocvResized, pureGoResized)
			t.Logf("%s resize MSE: %f", tc.name, mse)

			if mse > tc.threshold {
				t.Errorf("Resize MSE too high: %f (threshold: %f)", mse, tc.threshold)
			}
		})
	}
}

func TestCompareCrop(t *testing.T) {
	img := imageutil.CreateColorBarsImage(160, 90)
	mat := rgbaToGocv(img)
	defer mat.Close()

	rect := image.Rect(17, 9, 17+64, 9+40)
	region := mat.Region(rect)
	defer region.Close()
	gocvOut := gocvToRGBA(region)

	pureGoOut, err := imageutil.Crop(img, imageutil.Rect{X: 17.9, Y: 9.2, W: 64.7, H: 40.1})
	if err != nil {
		t.Fatal(err)
	}
	if !gocvOut.Equal(pureGoOut) {
		t.Error("crop differs from gocv region")
	}
}

func TestCompareInvert(t *testing.T) {
	img := imageutil.CreateGradientImage(100, 100)
	mat := rgbaToGocv(img)
	defer mat.Close()

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.BitwiseNot(mat, &inverted)
	gocvOut := gocvToRGBA(inverted)

	pureGoOut := imageutil.AdjustColors(img, []imageutil.Adjustment{imageutil.Invert(1)})
	if diff := maxRGBDiff(t, gocvOut, pureGoOut, img.Bounds()); diff != 0 {
		t.Errorf("invert differs from gocv by %d", diff)
	}
}
