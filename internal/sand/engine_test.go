package sand

import (
	"testing"

	"pixelphys/internal/core"
)

// constNoise is a scripted noise source for deterministic rule outcomes.
type constNoise float64

func (c constNoise) Float64() float64 { return float64(c) }

func useConstNoise(w *World, v float64) {
	w.SetNoise(func(uint64) core.Noise { return constNoise(v) })
}

func TestAirGridTickIsNoOp(t *testing.T) {
	w := New(16, 16)
	w.Step()
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c, _ := w.Grid().At(x, y)
			if c.Kind() != Air {
				t.Fatalf("cell (%d,%d) changed to %d on an all-air grid", x, y, c.Kind())
			}
		}
	}
	if w.Tick() != 1 {
		t.Fatalf("tick counter = %d, want 1", w.Tick())
	}
}

func TestSingleSandFallsToFloor(t *testing.T) {
	w := New(5, 5)
	w.Grid().Set(2, 4, Sand, 0)
	// noise 0.99 always clears the swap threshold for sand over air
	useConstNoise(w, 0.99)

	for i := 0; i < 4; i++ {
		w.Step()
	}

	c, _ := w.Grid().At(2, 0)
	if c.Kind() != Sand {
		t.Fatalf("sand did not land at (2,0) after 4 ticks")
	}
	if n := w.Grid().CountKind(Sand); n != 1 {
		t.Fatalf("sand count = %d, want 1", n)
	}
}

func TestSandMovesOneCellPerTick(t *testing.T) {
	w := New(3, 10)
	w.Grid().Set(1, 9, Sand, 0)
	useConstNoise(w, 0.99)

	w.Step()

	c, _ := w.Grid().At(1, 8)
	if c.Kind() != Sand {
		t.Fatal("sand should fall exactly one cell in one tick")
	}
	for y := 0; y < 8; y++ {
		if c, _ := w.Grid().At(1, y); c.Kind() == Sand {
			t.Fatalf("sand fell %d cells in a single tick", 9-y)
		}
	}
}

func TestEveryCellVisitedOncePerTick(t *testing.T) {
	w := New(40, 40)
	w.Grid().Paint(20, 30, 12, Sand, constNoise(0.995))
	w.Step()

	for i := range w.grid.cells {
		if !w.grid.cells[i].updated {
			t.Fatalf("cell %d not visited during the tick", i)
		}
	}
}

func TestSandColumnSettles(t *testing.T) {
	w := New(5, 12)
	for y := 0; y < 12; y++ {
		w.Grid().Set(0, y, Wood, 0)
		w.Grid().Set(4, y, Wood, 0)
	}
	for x := 0; x < 5; x++ {
		w.Grid().Set(x, 0, Wood, 0)
	}
	for y := 6; y < 11; y++ {
		w.Grid().Set(2, y, Sand, 0)
	}

	for i := 0; i < 200; i++ {
		w.Step()
	}

	if n := w.Grid().CountKind(Sand); n != 5 {
		t.Fatalf("sand count = %d, want 5", n)
	}
	for y := 1; y < 12; y++ {
		for x := 1; x < 4; x++ {
			c, _ := w.Grid().At(x, y)
			if c.Kind() != Sand {
				continue
			}
			below, _ := w.Grid().At(x, y-1)
			if below.Kind() == Air {
				t.Fatalf("sand at (%d,%d) still has air below after settling", x, y)
			}
		}
	}
}

func TestWaterOilStratify(t *testing.T) {
	w := New(10, 10)
	for y := 5; y <= 9; y++ {
		for x := 0; x < 10; x++ {
			w.Grid().Set(x, y, Water, 0)
		}
	}
	for y := 0; y <= 4; y++ {
		for x := 0; x < 10; x++ {
			w.Grid().Set(x, y, Oil, 0)
		}
	}

	for i := 0; i < 200; i++ {
		w.Step()
	}

	if n := w.Grid().CountKind(Water); n != 50 {
		t.Fatalf("water count = %d, want 50", n)
	}
	if n := w.Grid().CountKind(Oil); n != 50 {
		t.Fatalf("oil count = %d, want 50", n)
	}

	meanY := func(id KindID) float64 {
		sum, n := 0.0, 0
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				if c, _ := w.Grid().At(x, y); c.Kind() == id {
					sum += float64(y)
					n++
				}
			}
		}
		return sum / float64(n)
	}
	if oil, water := meanY(Oil), meanY(Water); oil <= water {
		t.Fatalf("oil mean-y %.2f not above water mean-y %.2f", oil, water)
	}
}

func TestSwapRulesConserveMass(t *testing.T) {
	// no fire or acid anywhere, so every kind count must hold exactly
	w := New(64, 48)
	w.Grid().Paint(16, 30, 10, Sand, constNoise(0.995))
	w.Grid().Paint(40, 30, 10, Water, constNoise(0.995))
	w.Grid().Paint(30, 12, 8, Oil, constNoise(0.995))
	w.Grid().Paint(50, 10, 6, Smoke, constNoise(0.995))

	before := map[KindID]int{}
	for _, k := range []KindID{Sand, Water, Oil, Smoke, Air} {
		before[k] = w.Grid().CountKind(k)
	}

	for i := 0; i < 100; i++ {
		w.Step()
	}

	for k, n := range before {
		if got := w.Grid().CountKind(k); got != n {
			t.Fatalf("kind %d count drifted from %d to %d under swap-only rules", k, n, got)
		}
	}
}

func TestFireBurnsOutToAir(t *testing.T) {
	w := New(1, 1)
	w.Grid().Set(0, 0, Fire, Oil)

	burn := kinds[Oil].BurnTime
	for i := int64(0); i < burn; i++ {
		w.Step()
	}
	if c, _ := w.Grid().At(0, 0); c.Kind() != Fire {
		t.Fatal("fire went out before its secondary's burn time")
	}

	w.Step()
	if c, _ := w.Grid().At(0, 0); c.Kind() != Air {
		t.Fatalf("cell is %d after burn time, want Air", c.Kind())
	}
}

func TestFireSecondaryInvariants(t *testing.T) {
	w := New(20, 20)
	for x := 5; x < 15; x++ {
		w.Grid().Set(x, 5, Fuse, 0)
	}
	w.Grid().Paint(10, 8, 4, Gunpowder, constNoise(0.995))
	w.Grid().Set(5, 5, Fire, Fuse)

	for i := 0; i < 300; i++ {
		w.Step()
		for idx := range w.grid.cells {
			c := &w.grid.cells[idx]
			if _, ok := KindOf(c.kind); !ok {
				t.Fatalf("cell %d holds unregistered kind %d", idx, c.kind)
			}
			sec, ok := c.Secondary()
			if c.kind == Fire {
				if !ok || sec == Fire {
					t.Fatalf("fire cell %d has invalid secondary", idx)
				}
			} else if ok {
				t.Fatalf("non-fire cell %d reports a secondary", idx)
			}
		}
	}
}

func TestAcidDissolvesBinomially(t *testing.T) {
	const trials = 600
	const p = 0.2

	hits := 0
	for trial := 0; trial < trials; trial++ {
		cfg := DefaultConfig()
		cfg.Width = 3
		cfg.Height = 3
		cfg.Seed = int64(trial + 1)
		w := NewWithConfig(cfg)
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				w.Grid().Set(x, y, Sand, 0)
			}
		}
		w.Grid().Set(1, 1, Acid, 0)

		w.Step()

		switch n := w.Grid().CountKind(Sand); n {
		case 7:
			hits++
		case 8:
		default:
			t.Fatalf("trial %d: sand count %d, want 7 or 8", trial, n)
		}
	}

	rate := float64(hits) / trials
	if rate < p-0.06 || rate > p+0.06 {
		t.Fatalf("dissolve rate %.3f outside binomial tolerance around %.2f", rate, p)
	}
}

func TestWaterCountConservedAcrossChunkWaves(t *testing.T) {
	// a blob spanning several chunk borders must not leak or duplicate
	// cells across waves
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.ChunkSize = 16
	w := NewWithConfig(cfg)
	w.Grid().Paint(32, 40, 14, Water, constNoise(0.995))
	want := w.Grid().CountKind(Water)

	for i := 0; i < 120; i++ {
		w.Step()
	}
	if got := w.Grid().CountKind(Water); got != want {
		t.Fatalf("water count drifted from %d to %d across chunk waves", want, got)
	}
}
