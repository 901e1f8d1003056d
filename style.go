package imgedit

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/wbrown/imgedit/imageutil"
)

// ErrUnknownStyle is returned for Style values outside the defined set and
// for names ParseStyle does not recognize.
var ErrUnknownStyle = errors.New("unknown style")

// Style is a named visual preset layered on top of the color sliders.
type Style int

const (
	NoFilter Style = iota
	Grayscale
	Sepia
	Invert
	Vintage
	Technicolor
	Polaroid
	Warm
	Cool
	Pixelate
	EdgeDetection
	Sharpen
	Blur
	GaussianBlur
	Emboss

	numStyles
)

var styleNames = [numStyles]string{
	NoFilter:      "No Filter (Base)",
	Grayscale:     "Grayscale",
	Sepia:         "Sepia",
	Invert:        "Invert",
	Vintage:       "Vintage",
	Technicolor:   "Technicolor",
	Polaroid:      "Polaroid",
	Warm:          "Warm",
	Cool:          "Cool",
	Pixelate:      "Pixelate",
	EdgeDetection: "Edge Detection",
	Sharpen:       "Sharpen",
	Blur:          "Blur",
	GaussianBlur:  "Gaussian Blur",
	Emboss:        "Emboss",
}

// Styles returns every style in menu order.
func Styles() []Style {
	styles := make([]Style, numStyles)
	for i := range styles {
		styles[i] = Style(i)
	}
	return styles
}

// String returns the display name of the style.
func (s Style) String() string {
	if s.Valid() {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Valid reports whether s is one of the defined styles.
func (s Style) Valid() bool {
	return s >= 0 && s < numStyles
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStyle, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseStyle.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// styleKey reduces a style name to a case-folded key without spaces,
// dashes, underscores or the "(base)" suffix, so "Edge Detection",
// "edge-detection" and "EDGE_DETECTION" all match.
func styleKey(name string) string {
	key := cases.Fold().String(name)
	key = strings.TrimSuffix(strings.TrimSpace(key), "(base)")
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
}

var stylesByKey = func() map[string]Style {
	m := make(map[string]Style, numStyles+2)
	for _, s := range Styles() {
		m[styleKey(s.String())] = s
	}
	m["none"] = NoFilter
	m["base"] = NoFilter
	return m
}()

// ParseStyle looks a style up by name. Matching ignores case, spaces,
// dashes and underscores; the empty string selects NoFilter.
func ParseStyle(name string) (Style, error) {
	if strings.TrimSpace(name) == "" {
		return NoFilter, nil
	}
	if s, ok := stylesByKey[styleKey(name)]; ok {
		return s, nil
	}
	return NoFilter, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Stage is a style-specific step that runs after color adjustment.
type Stage int

const (
	// StageNone runs no extra stage (the kernel, if any, still applies).
	StageNone Stage = iota
	// StagePixelate replaces the image with a block mosaic.
	StagePixelate
	// StageEdgeGray averages the channels before convolving.
	StageEdgeGray
	// StageEmbossOffset lifts the convolution output by 128.
	StageEmbossOffset
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StagePixelate:
		return "pixelate"
	case StageEdgeGray:
		return "edge-gray"
	case StageEmbossOffset:
		return "emboss-offset"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// embossOffset moves a zero emboss response to mid-gray.
const embossOffset = 128

// Preset is the resolved form of a Style.
type Preset struct {
	// Adjustments are applied after the slider adjustments, in order, in
	// the same color pass.
	Adjustments []imageutil.Adjustment
	// Kernel, when set, is convolved over the color-adjusted image.
	Kernel *imageutil.Kernel
	Stage  Stage
}

// Resolve maps a style to its preset.
func Resolve(style Style) (Preset, error) {
	switch style {
	case NoFilter:
		return Preset{}, nil
	case Grayscale:
		return adjust(imageutil.Grayscale(1)), nil
	case Sepia:
		return adjust(imageutil.Sepia(1)), nil
	case Invert:
		return adjust(imageutil.Invert(1)), nil
	case Vintage:
		return adjust(imageutil.Sepia(0.6), imageutil.Contrast(1.2), imageutil.Brightness(0.9)), nil
	case Technicolor:
		return adjust(imageutil.Saturate(2), imageutil.Contrast(1.2)), nil
	case Polaroid:
		return adjust(imageutil.Sepia(0.2), imageutil.Contrast(0.9), imageutil.Brightness(1.1)), nil
	case Warm:
		return adjust(imageutil.Sepia(0.3), imageutil.Saturate(1.2), imageutil.HueRotate(-10)), nil
	case Cool:
		return adjust(imageutil.Saturate(0.9), imageutil.HueRotate(10), imageutil.Brightness(1.05)), nil
	case Pixelate:
		return Preset{Stage: StagePixelate}, nil
	case EdgeDetection:
		return Preset{Kernel: imageutil.EdgeKernel(), Stage: StageEdgeGray}, nil
	case Sharpen:
		return Preset{Kernel: imageutil.SharpenKernel()}, nil
	case Blur:
		return Preset{Kernel: imageutil.BlurKernel()}, nil
	case GaussianBlur:
		return Preset{Kernel: imageutil.GaussianBlurKernel()}, nil
	case Emboss:
		return Preset{Kernel: imageutil.EmbossKernel(), Stage: StageEmbossOffset}, nil
	}
	return Preset{}, fmt.Errorf("%w: %d", ErrUnknownStyle, int(style))
}

func adjust(ops ...imageutil.Adjustment) Preset {
	return Preset{Adjustments: ops}
}
