package render

import (
	"testing"

	"pixelphys/internal/sand"
)

func TestPaletteCoversRegistry(t *testing.T) {
	p := Palette()
	if len(p) != sand.NumKinds() {
		t.Fatalf("palette has %d entries, want %d", len(p), sand.NumKinds())
	}
	for i, c := range p {
		if c.A != 255 {
			t.Fatalf("palette entry %d not opaque", i)
		}
	}
}

func TestFillRGBAFadesBurningCells(t *testing.T) {
	p := Palette()
	cells := []sand.CellView{
		{Kind: sand.Fire},
		{Kind: sand.Fire, Burn: 1},
		{Kind: sand.Water},
	}
	buf := make([]byte, len(cells)*4)
	FillRGBA(buf, cells, p)

	fresh := buf[0]
	spent := buf[4]
	if spent >= fresh {
		t.Fatalf("burned-out fire (%d) should be darker than fresh fire (%d)", spent, fresh)
	}
	water := p[sand.Water]
	if buf[8] != water.R || buf[9] != water.G || buf[10] != water.B {
		t.Fatal("non-fire cell must use its registry color unmodified")
	}
}
