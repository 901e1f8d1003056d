package imageutil

import (
	"fmt"
	"math"
)

// AdjustKind identifies a per-pixel color operation.
type AdjustKind int

const (
	// AdjustBrightness multiplies every channel by Amount.
	AdjustBrightness AdjustKind = iota
	// AdjustContrast scales every channel away from mid-gray by Amount.
	AdjustContrast
	// AdjustSaturate scales saturation by Amount using a
	// luminance-preserving matrix.
	AdjustSaturate
	// AdjustHueRotate rotates the HSL hue by Amount degrees.
	AdjustHueRotate
	// AdjustGrayscale desaturates; Amount in [0,1].
	AdjustGrayscale
	// AdjustSepia tones toward sepia; Amount in [0,1].
	AdjustSepia
	// AdjustInvert inverts the channels; Amount in [0,1].
	AdjustInvert
)

func (k AdjustKind) String() string {
	switch k {
	case AdjustBrightness:
		return "brightness"
	case AdjustContrast:
		return "contrast"
	case AdjustSaturate:
		return "saturate"
	case AdjustHueRotate:
		return "hue-rotate"
	case AdjustGrayscale:
		return "grayscale"
	case AdjustSepia:
		return "sepia"
	case AdjustInvert:
		return "invert"
	}
	return fmt.Sprintf("AdjustKind(%d)", int(k))
}

// Adjustment is one step of a color adjustment chain.
type Adjustment struct {
	Kind   AdjustKind
	Amount float64
}

// Brightness returns a brightness step; 1 leaves colors unchanged.
func Brightness(factor float64) Adjustment { return Adjustment{AdjustBrightness, factor} }

// Contrast returns a contrast step; 1 leaves colors unchanged.
func Contrast(factor float64) Adjustment { return Adjustment{AdjustContrast, factor} }

// Saturate returns a saturation step; 0 is gray, 1 unchanged.
func Saturate(factor float64) Adjustment { return Adjustment{AdjustSaturate, factor} }

// HueRotate returns a hue rotation step in degrees.
func HueRotate(degrees float64) Adjustment { return Adjustment{AdjustHueRotate, degrees} }

// Grayscale returns a desaturation step.
func Grayscale(amount float64) Adjustment { return Adjustment{AdjustGrayscale, amount} }

// Sepia returns a sepia toning step.
func Sepia(amount float64) Adjustment { return Adjustment{AdjustSepia, amount} }

// Invert returns an inversion step.
func Invert(amount float64) Adjustment { return Adjustment{AdjustInvert, amount} }

// IsIdentity reports whether the step leaves every color unchanged.
func (a Adjustment) IsIdentity() bool {
	switch a.Kind {
	case AdjustBrightness, AdjustContrast, AdjustSaturate:
		return a.Amount == 1
	case AdjustHueRotate:
		return math.Mod(a.Amount, 360) == 0
	default:
		return a.Amount == 0
	}
}

func (a Adjustment) String() string {
	if a.Kind == AdjustHueRotate {
		return fmt.Sprintf("%s(%gdeg)", a.Kind, a.Amount)
	}
	return fmt.Sprintf("%s(%g%%)", a.Kind, a.Amount*100)
}

// colorMatrix is a 3x3 RGB transform in row-major order.
type colorMatrix [9]float64

func (m *colorMatrix) apply(r, g, b float64) (float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b,
		m[3]*r + m[4]*g + m[5]*b,
		m[6]*r + m[7]*g + m[8]*b
}

// saturateMatrix uses the Rec.709-derived weights of the SVG feColorMatrix
// saturate operation.
func saturateMatrix(s float64) colorMatrix {
	return colorMatrix{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s,
	}
}

func grayscaleMatrix(amount float64) colorMatrix {
	a := 1 - clamp01(amount)
	return colorMatrix{
		0.2126 + 0.7874*a, 0.7152 - 0.7152*a, 0.0722 - 0.0722*a,
		0.2126 - 0.2126*a, 0.7152 + 0.2848*a, 0.0722 - 0.0722*a,
		0.2126 - 0.2126*a, 0.7152 - 0.7152*a, 0.0722 + 0.9278*a,
	}
}

func sepiaMatrix(amount float64) colorMatrix {
	a := 1 - clamp01(amount)
	return colorMatrix{
		0.393 + 0.607*a, 0.769 - 0.769*a, 0.189 - 0.189*a,
		0.349 - 0.349*a, 0.686 + 0.314*a, 0.168 - 0.168*a,
		0.272 - 0.272*a, 0.534 - 0.534*a, 0.131 + 0.869*a,
	}
}

// colorStep is an Adjustment prepared for the per-pixel loop.
type colorStep struct {
	kind   AdjustKind
	amount float64
	matrix colorMatrix
}

func prepareSteps(ops []Adjustment) []colorStep {
	steps := make([]colorStep, 0, len(ops))
	for _, op := range ops {
		if op.IsIdentity() {
			continue
		}
		step := colorStep{kind: op.Kind, amount: op.Amount}
		switch op.Kind {
		case AdjustSaturate:
			step.matrix = saturateMatrix(math.Max(op.Amount, 0))
		case AdjustGrayscale:
			step.matrix = grayscaleMatrix(op.Amount)
		case AdjustSepia:
			step.matrix = sepiaMatrix(op.Amount)
		case AdjustInvert:
			step.amount = clamp01(op.Amount)
		case AdjustBrightness, AdjustContrast:
			step.amount = math.Max(op.Amount, 0)
		}
		steps = append(steps, step)
	}
	return steps
}

func (s *colorStep) apply(r, g, b float64) (float64, float64, float64) {
	switch s.kind {
	case AdjustBrightness:
		r, g, b = r*s.amount, g*s.amount, b*s.amount
	case AdjustContrast:
		r = (r-127.5)*s.amount + 127.5
		g = (g-127.5)*s.amount + 127.5
		b = (b-127.5)*s.amount + 127.5
	case AdjustSaturate, AdjustGrayscale, AdjustSepia:
		r, g, b = s.matrix.apply(r, g, b)
	case AdjustHueRotate:
		r, g, b = rotateHue(r, g, b, s.amount)
	case AdjustInvert:
		r += s.amount * (255 - 2*r)
		g += s.amount * (255 - 2*g)
		b += s.amount * (255 - 2*b)
	}
	return clamp255(r), clamp255(g), clamp255(b)
}

// AdjustColors applies ops in order to every pixel of img in a single pass
// and returns a new image. Intermediate values stay in floating point and are
// clamped to [0,255] after each step; rounding to 8 bits happens once at the
// end. Alpha is copied unchanged.
func AdjustColors(img *RGBAImage, ops []Adjustment) *RGBAImage {
	steps := prepareSteps(ops)
	if len(steps) == 0 {
		return img.Clone()
	}

	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)
	forEachRowBand(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			i := img.offset(0, y)
			end := i + width*4
			for ; i < end; i += 4 {
				r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
				for k := range steps {
					r, g, b = steps[k].apply(r, g, b)
				}
				dst.Pix[i] = clampUint8(r)
				dst.Pix[i+1] = clampUint8(g)
				dst.Pix[i+2] = clampUint8(b)
				dst.Pix[i+3] = img.Pix[i+3]
			}
		}
	})
	return dst
}

// rotateHue shifts the hue of an RGB triple in [0,255] by degrees, keeping
// HSL lightness and saturation.
func rotateHue(r, g, b, degrees float64) (float64, float64, float64) {
	h, s, l := rgbToHSL(r/255, g/255, b/255)
	if s == 0 {
		return r, g, b
	}
	h = math.Mod(h+degrees/360, 1)
	if h < 0 {
		h++
	}
	r, g, b = hslToRGB(h, s, l)
	return r * 255, g * 255, b * 255
}

// rgbToHSL converts channels in [0,1] to hue in [0,1), saturation and
// lightness in [0,1].
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	d := maxC - minC
	if d == 0 {
		return 0, 0, l
	}
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToChannel(p, q, h+1.0/3), hueToChannel(p, q, h), hueToChannel(p, q, h-1.0/3)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func clamp255(v float64) float64 {
	return math.Min(math.Max(v, 0), 255)
}
