package imageutil

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minBandRows keeps small images on a single goroutine.
const minBandRows = 64

// forEachRowBand calls fn for disjoint row ranges [y0, y1) covering
// [0, height). Bands run concurrently; fn must only write rows inside its
// own band and read shared input that nobody writes.
func forEachRowBand(height int, fn func(y0, y1 int)) {
	bands := runtime.GOMAXPROCS(0)
	if maxBands := height / minBandRows; bands > maxBands {
		bands = maxBands
	}
	if bands <= 1 {
		fn(0, height)
		return
	}

	rows := (height + bands - 1) / bands
	var g errgroup.Group
	for y0 := 0; y0 < height; y0 += rows {
		y0, y1 := y0, min(y0+rows, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
