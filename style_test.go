package imgedit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wbrown/imgedit/imageutil"
)

func TestStylesRoundTrip(t *testing.T) {
	styles := Styles()
	require.Len(t, styles, 15)
	require.Equal(t, NoFilter, styles[0])
	require.Equal(t, Emboss, styles[len(styles)-1])

	for _, s := range styles {
		t.Run(s.String(), func(t *testing.T) {
			require.True(t, s.Valid())

			parsed, err := ParseStyle(s.String())
			require.NoError(t, err)
			require.Equal(t, s, parsed)

			text, err := s.MarshalText()
			require.NoError(t, err)
			var back Style
			require.NoError(t, back.UnmarshalText(text))
			require.Equal(t, s, back)

			_, err = Resolve(s)
			require.NoError(t, err)
		})
	}
}

func TestParseStyleForms(t *testing.T) {
	tests := []struct {
		name string
		want Style
	}{
		{"", NoFilter},
		{"  ", NoFilter},
		{"none", NoFilter},
		{"No Filter", NoFilter},
		{"no filter (base)", NoFilter},
		{"edge-detection", EdgeDetection},
		{"EDGE_DETECTION", EdgeDetection},
		{"Edge Detection", EdgeDetection},
		{"gaussianblur", GaussianBlur},
		{"Gaussian Blur", GaussianBlur},
		{"TECHNICOLOR", Technicolor},
		{"pixelate", Pixelate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyleUnknown(t *testing.T) {
	_, err := ParseStyle("lomo")
	require.ErrorIs(t, err, ErrUnknownStyle)

	var s Style
	require.ErrorIs(t, s.UnmarshalText([]byte("lomo")), ErrUnknownStyle)
}

func TestInvalidStyle(t *testing.T) {
	bad := Style(99)
	require.False(t, bad.Valid())
	require.False(t, Style(-1).Valid())
	require.Equal(t, "Style(99)", bad.String())

	_, err := bad.MarshalText()
	require.ErrorIs(t, err, ErrUnknownStyle)

	_, err = Resolve(bad)
	require.ErrorIs(t, err, ErrUnknownStyle)
}

func TestResolveColorPresets(t *testing.T) {
	tests := []struct {
		style Style
		want  []imageutil.Adjustment
	}{
		{Grayscale, []imageutil.Adjustment{imageutil.Grayscale(1)}},
		{Sepia, []imageutil.Adjustment{imageutil.Sepia(1)}},
		{Invert, []imageutil.Adjustment{imageutil.Invert(1)}},
		{Vintage, []imageutil.Adjustment{imageutil.Sepia(0.6), imageutil.Contrast(1.2), imageutil.Brightness(0.9)}},
		{Technicolor, []imageutil.Adjustment{imageutil.Saturate(2), imageutil.Contrast(1.2)}},
		{Polaroid, []imageutil.Adjustment{imageutil.Sepia(0.2), imageutil.Contrast(0.9), imageutil.Brightness(1.1)}},
		{Warm, []imageutil.Adjustment{imageutil.Sepia(0.3), imageutil.Saturate(1.2), imageutil.HueRotate(-10)}},
		{Cool, []imageutil.Adjustment{imageutil.Saturate(0.9), imageutil.HueRotate(10), imageutil.Brightness(1.05)}},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			p, err := Resolve(tt.style)
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Adjustments)
			require.Nil(t, p.Kernel)
			require.Equal(t, StageNone, p.Stage)
		})
	}
}

func TestResolveKernelPresets(t *testing.T) {
	tests := []struct {
		style  Style
		kernel *imageutil.Kernel
		stage  Stage
	}{
		{Pixelate, nil, StagePixelate},
		{EdgeDetection, imageutil.EdgeKernel(), StageEdgeGray},
		{Sharpen, imageutil.SharpenKernel(), StageNone},
		{Blur, imageutil.BlurKernel(), StageNone},
		{GaussianBlur, imageutil.GaussianBlurKernel(), StageNone},
		{Emboss, imageutil.EmbossKernel(), StageEmbossOffset},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			p, err := Resolve(tt.style)
			require.NoError(t, err)
			require.Empty(t, p.Adjustments)
			require.Equal(t, tt.kernel, p.Kernel)
			require.Equal(t, tt.stage, p.Stage)
		})
	}
}

func TestResolveNoFilter(t *testing.T) {
	p, err := Resolve(NoFilter)
	require.NoError(t, err)
	require.Equal(t, Preset{}, p)
}
