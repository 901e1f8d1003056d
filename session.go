package imgedit

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wbrown/imgedit/imageutil"
)

// Session tracks one image being edited: the original as loaded, the
// current base image after crops and rotations, and the active settings.
// Rendering never changes the base image; crops and rotations replace it
// and ResetAll brings back the original.
type Session struct {
	mu       sync.RWMutex
	original *imageutil.RGBAImage
	current  *imageutil.RGBAImage
	settings Settings
	renderer *Renderer
	log      logrus.FieldLogger
}

// NewSession starts a session on img with default settings. The session
// keeps its own copy of img.
func NewSession(img *imageutil.RGBAImage, opts ...RendererOption) (*Session, error) {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return nil, ErrNoImage
	}
	renderer := NewRenderer(opts...)
	original := img.Clone()
	return &Session{
		original: original,
		current:  original,
		settings: DefaultSettings(),
		renderer: renderer,
		log:      renderer.log,
	}, nil
}

// OpenSession loads the image at path and starts a session on it.
func OpenSession(path string, opts ...RendererOption) (*Session, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewSession(img, opts...)
}

// Original returns the image as it was loaded. Callers must not modify it.
func (s *Session) Original() *imageutil.RGBAImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.original
}

// Current returns the base image renders start from. Callers must not
// modify it.
func (s *Session) Current() *imageutil.RGBAImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Settings returns the active settings.
func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings validates and stores new settings.
func (s *Session) SetSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// Render runs the pipeline on the current image with the active settings.
func (s *Session) Render() (*imageutil.RGBAImage, error) {
	s.mu.RLock()
	img, settings := s.current, s.settings
	s.mu.RUnlock()
	return s.renderer.Render(img, settings)
}

// Rotate turns the current image a quarter turn.
func (s *Session) Rotate(dir imageutil.Rotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rotated, err := imageutil.Rotate(s.current, dir)
	if err != nil {
		return err
	}
	s.current = rotated
	s.log.WithFields(logrus.Fields{
		"direction": dir.String(),
		"width":     rotated.Width(),
		"height":    rotated.Height(),
	}).Debug("rotated")
	return nil
}

// Crop replaces the current image with the part under sel, a selection in
// display units over the image shown at displayW x displayH. On error the
// current image is left untouched.
func (s *Session) Crop(sel imageutil.Rect, displayW, displayH float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cropped, err := imageutil.CropSelection(s.current, sel, displayW, displayH)
	if err != nil {
		s.log.WithError(err).WithField("selection", fmt.Sprintf("%+v", sel)).Debug("crop ignored")
		return err
	}
	s.current = cropped
	s.log.WithFields(logrus.Fields{
		"width":  cropped.Width(),
		"height": cropped.Height(),
	}).Debug("cropped")
	return nil
}

// ResetSettings puts every slider back to 0 and the style to NoFilter.
func (s *Session) ResetSettings() {
	s.mu.Lock()
	s.settings = DefaultSettings()
	s.mu.Unlock()
}

// ResetAll resets the settings and discards all crops and rotations.
func (s *Session) ResetAll() {
	s.mu.Lock()
	s.settings = DefaultSettings()
	s.current = s.original
	s.mu.Unlock()
}

// ExportFileName returns the default name for an exported render.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("edited-image-%d.png", t.UnixMilli())
}
