//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"pixelphys/internal/sand"
)

// GridPainter updates a single RGBA image from readout snapshots. The world's
// y=0 is the bottom row, so rows are flipped into screen space here.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the readout into the painter image and draws it scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []sand.CellView, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	for y := 0; y < gp.h; y++ {
		src := cells[(gp.h-1-y)*gp.w : (gp.h-y)*gp.w]
		FillRGBA(gp.buf[y*gp.w*4:], src, palette)
	}
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
