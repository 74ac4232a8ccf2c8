package terrain

import (
	"github.com/Faultbox/terraview/pkg/formats"
)

// DefaultDivisor compresses the summed RGB bytes of a pixel into a height
// sample. Demo heightmaps were authored against divisors between 8 and 50;
// the value is a tuning knob, not a format constant.
const DefaultDivisor = 8

// BuildHeightGrid converts parsed heightmap pixels into a height grid.
//
// Each pixel's blue, green and red bytes are summed and divided by divisor
// to produce one sample. The bitmap stores rows bottom-up and the world
// axes are mirrored horizontally, so file pixel (col, row) lands at grid
// position [width-1-col][height-1-row]; this double flip re-indexes the
// image to a top-left-origin grid and must not be simplified away.
func BuildHeightGrid(bmp *formats.BMP, divisor int32) *HeightGrid {
	if divisor <= 0 {
		divisor = 1
	}

	w := int(bmp.Width)
	h := int(bmp.Height)

	samples := make([][]int32, w)
	for x := range samples {
		samples[x] = make([]int32, h)
	}

	grid := &HeightGrid{
		Samples: samples,
		Width:   w,
		Height:  h,
	}

	first := true
	i := 0
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			blue := int32(bmp.Pixels[i])
			green := int32(bmp.Pixels[i+1])
			red := int32(bmp.Pixels[i+2])
			i += 3

			v := (blue + green + red) / divisor
			samples[w-1-col][h-1-row] = v

			if first {
				grid.Min, grid.Max = v, v
				first = false
				continue
			}
			if v < grid.Min {
				grid.Min = v
			}
			if v > grid.Max {
				grid.Max = v
			}
		}
	}

	return grid
}
