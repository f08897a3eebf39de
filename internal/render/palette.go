// Package render turns the per-cell readout into RGBA pixels.
package render

import (
	"image/color"

	"pixelphys/internal/sand"
)

// Palette returns one color per kind id in registry order.
func Palette() []color.RGBA {
	ks := sand.Kinds()
	out := make([]color.RGBA, len(ks))
	for i, k := range ks {
		out[i] = k.Color
	}
	return out
}

// FillRGBA converts a readout snapshot into RGBA pixels in buf. Fire cells
// fade towards black as their burn ratio approaches 1. The snapshot's row
// order is preserved, so callers flip rows when their target's y axis points
// down.
func FillRGBA(buf []byte, cells []sand.CellView, palette []color.RGBA) {
	if len(buf) < len(cells)*4 || len(palette) == 0 {
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c.Kind)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		if c.Burn > 0 {
			fade := 1 - 0.75*c.Burn
			col.R = uint8(float32(col.R) * fade)
			col.G = uint8(float32(col.G) * fade)
			col.B = uint8(float32(col.B) * fade)
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
