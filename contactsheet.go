package imgedit

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/imgedit/imageutil"
)

// Contact sheet layout defaults.
const (
	DefaultSheetColumns   = 5
	DefaultSheetThumbSize = 200
	DefaultSheetFontSize  = 12.0

	sheetPadding = 8
)

var sheetBackground = color.RGBA{R: 32, G: 32, B: 32, A: 255}

// SheetOption is a functional option for ContactSheet.
type SheetOption func(*sheetConfig)

type sheetConfig struct {
	columns   int
	thumbSize int
	fontSize  float64
	styles    []Style
	captions  bool
	filter    imageutil.Interpolation
	renderer  *Renderer
}

// WithColumns sets the number of thumbnails per row.
func WithColumns(n int) SheetOption {
	return func(c *sheetConfig) {
		c.columns = n
	}
}

// WithThumbSize sets the bounding box, in pixels, each thumbnail fits in.
func WithThumbSize(px int) SheetOption {
	return func(c *sheetConfig) {
		c.thumbSize = px
	}
}

// WithStyles limits the sheet to the given styles, in the given order.
func WithStyles(styles ...Style) SheetOption {
	return func(c *sheetConfig) {
		c.styles = styles
	}
}

// WithCaptions turns the style name under each thumbnail on or off.
func WithCaptions(on bool) SheetOption {
	return func(c *sheetConfig) {
		c.captions = on
	}
}

// WithThumbFilter sets the interpolation used to scale the image down to
// thumbnail size. The default is Lanczos.
func WithThumbFilter(interp imageutil.Interpolation) SheetOption {
	return func(c *sheetConfig) {
		c.filter = interp
	}
}

// WithSheetRenderer sets the renderer used for the thumbnails.
func WithSheetRenderer(r *Renderer) SheetOption {
	return func(c *sheetConfig) {
		c.renderer = r
	}
}

var captionFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// ContactSheet renders img once per style, with the sliders from base, and
// lays the results out as a captioned grid. The image is scaled to
// thumbnail size before rendering, so kernels act on the thumbnail.
func ContactSheet(img *imageutil.RGBAImage, base Settings, opts ...SheetOption) (*imageutil.RGBAImage, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	cfg := sheetConfig{
		columns:   DefaultSheetColumns,
		thumbSize: DefaultSheetThumbSize,
		fontSize:  DefaultSheetFontSize,
		styles:    Styles(),
		captions:  true,
		filter:    imageutil.InterpolationLanczos,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = NewRenderer()
	}
	if cfg.columns < 1 || cfg.thumbSize < 1 || len(cfg.styles) == 0 {
		return nil, fmt.Errorf("contact sheet: %d columns, %dpx thumbnails, %d styles",
			cfg.columns, cfg.thumbSize, len(cfg.styles))
	}

	thumb := imageutil.FitWithin(img, cfg.thumbSize, cfg.thumbSize, cfg.filter)

	thumbs := make([]*imageutil.RGBAImage, len(cfg.styles))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, style := range cfg.styles {
		g.Go(func() error {
			settings := base
			settings.Style = style
			out, err := cfg.renderer.Render(thumb, settings)
			if err != nil {
				return fmt.Errorf("render %s: %w", style, err)
			}
			thumbs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		face     font.Face
		ttf      *truetype.Font
		captionH int
		ascent   int
	)
	if cfg.captions {
		var err error
		ttf, err = captionFont()
		if err != nil {
			return nil, fmt.Errorf("failed to parse caption font: %w", err)
		}
		face = truetype.NewFace(ttf, &truetype.Options{
			Size:    cfg.fontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		defer face.Close()
		metrics := face.Metrics()
		ascent = metrics.Ascent.Ceil()
		captionH = (metrics.Ascent + metrics.Descent).Ceil() + sheetPadding/2
	}

	cellW := thumb.Width() + 2*sheetPadding
	cellH := thumb.Height() + captionH + 2*sheetPadding
	rows := (len(thumbs) + cfg.columns - 1) / cfg.columns
	cols := min(cfg.columns, len(thumbs))

	sheet := imageutil.NewRGBAImage(cols*cellW, rows*cellH)
	draw.Draw(sheet.RGBA, sheet.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

	var ctx *freetype.Context
	if cfg.captions {
		ctx = freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(ttf)
		ctx.SetFontSize(cfg.fontSize)
		ctx.SetDst(sheet.RGBA)
		ctx.SetSrc(image.White)
		ctx.SetHinting(font.HintingFull)
	}

	for i, t := range thumbs {
		cellX := (i % cfg.columns) * cellW
		cellY := (i / cfg.columns) * cellH
		x := cellX + (cellW-t.Width())/2
		y := cellY + sheetPadding
		draw.Draw(sheet.RGBA, image.Rect(x, y, x+t.Width(), y+t.Height()), t.RGBA, image.Point{}, draw.Src)

		if ctx == nil {
			continue
		}
		label := cfg.styles[i].String()
		textW := font.MeasureString(face, label).Ceil()
		tx := cellX + max(sheetPadding, (cellW-textW)/2)
		ty := cellY + sheetPadding + thumb.Height() + sheetPadding/2
		ctx.SetClip(image.Rect(cellX, ty, cellX+cellW, ty+captionH))
		if _, err := ctx.DrawString(label, freetype.Pt(tx, ty+ascent)); err != nil {
			return nil, fmt.Errorf("draw caption %q: %w", label, err)
		}
	}
	return sheet, nil
}
