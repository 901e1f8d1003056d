package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wbrown/imgedit"
)

func TestParseStyles(t *testing.T) {
	all, err := parseStyles("")
	require.NoError(t, err)
	require.Equal(t, imgedit.Styles(), all)

	some, err := parseStyles("sepia, edge-detection,Emboss")
	require.NoError(t, err)
	require.Equal(t, []imgedit.Style{imgedit.Sepia, imgedit.EdgeDetection, imgedit.Emboss}, some)

	_, err = parseStyles("sepia,lomo")
	require.ErrorIs(t, err, imgedit.ErrUnknownStyle)
}
