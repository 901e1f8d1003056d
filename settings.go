package imgedit

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/wbrown/imgedit/imageutil"
)

// ErrInvalidSettings wraps slider values outside their ranges.
var ErrInvalidSettings = errors.New("invalid settings")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings is the full input of one render besides the image itself.
// Brightness, Contrast and Saturation are offsets from 100%, so 0 means
// unchanged, -100 means 0% and 100 means 200%. Hue is in degrees.
type Settings struct {
	Style      Style `json:"style" yaml:"style"`
	Brightness int   `json:"brightness" yaml:"brightness" validate:"min=-100,max=100"`
	Contrast   int   `json:"contrast" yaml:"contrast" validate:"min=-100,max=100"`
	Saturation int   `json:"saturation" yaml:"saturation" validate:"min=-100,max=100"`
	Hue        int   `json:"hue" yaml:"hue" validate:"min=-180,max=180"`
}

// DefaultSettings returns the neutral settings: no style, all sliders at 0.
func DefaultSettings() Settings {
	return Settings{Style: NoFilter}
}

// Validate checks the slider ranges and the style.
func (s Settings) Validate() error {
	if !s.Style.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidSettings, ErrUnknownStyle, int(s.Style))
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// IsNeutral reports whether the settings leave every image unchanged.
func (s Settings) IsNeutral() bool {
	return s == DefaultSettings()
}

// Adjustments returns the slider adjustments in application order:
// brightness, contrast, saturation, hue.
func (s Settings) Adjustments() []imageutil.Adjustment {
	return []imageutil.Adjustment{
		imageutil.Brightness(percent(s.Brightness)),
		imageutil.Contrast(percent(s.Contrast)),
		imageutil.Saturate(percent(s.Saturation)),
		imageutil.HueRotate(float64(s.Hue)),
	}
}

func percent(offset int) float64 {
	return float64(100+offset) / 100
}
