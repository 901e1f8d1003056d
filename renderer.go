// Package imgedit applies photo-editor style transformations to RGBA
// images: color sliders, named style presets, 3x3 convolution filters,
// pixelation, cropping and quarter-turn rotation.
package imgedit

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wbrown/imgedit/imageutil"
)

// ErrNoImage is returned when there is no image to work on.
var ErrNoImage = errors.New("no image loaded")

// Renderer runs the transformation pipeline: slider and style color
// adjustments in one pass, then the style's kernel or special stage.
// A Renderer holds no image state and is safe for concurrent use.
type Renderer struct {
	log logrus.FieldLogger
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options. By default it
// logs to the logrus standard logger.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		log: logrus.StandardLogger(),
	}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(log logrus.FieldLogger) RendererOption {
	return func(r *Renderer) {
		r.log = log
	}
}

// Render applies settings to img and returns a new image; img is not
// modified. Slider values are applied as given; use Settings.Validate to
// reject out-of-range input first.
func (r *Renderer) Render(img *imageutil.RGBAImage, settings Settings) (*imageutil.RGBAImage, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	preset, err := Resolve(settings.Style)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log := r.log.WithFields(logrus.Fields{
		"style":  settings.Style.String(),
		"width":  img.Width(),
		"height": img.Height(),
	})

	ops := append(settings.Adjustments(), preset.Adjustments...)
	out := imageutil.AdjustColors(img, ops)

	if preset.Stage != StageNone || preset.Kernel != nil {
		if err := imageutil.CheckKernelDimensions(out); err != nil {
			log.WithError(err).Debug("skipping style stage")
			return out, nil
		}
	}

	switch preset.Stage {
	case StagePixelate:
		out = imageutil.Pixelate(out)
	case StageEdgeGray:
		// out is our own buffer, so the in-place pass is safe.
		imageutil.GrayscaleAverage(out)
	}

	if preset.Kernel != nil {
		out = imageutil.Convolve(out, preset.Kernel)
	}

	if preset.Stage == StageEmbossOffset {
		imageutil.OffsetRGB(out, embossOffset)
	}

	log.WithFields(logrus.Fields{
		"stage":   preset.Stage.String(),
		"ops":     fmt.Sprint(ops),
		"elapsed": time.Since(start),
	}).Debug("rendered")
	return out, nil
}
