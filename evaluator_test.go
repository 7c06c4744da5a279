package mandel

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"testing"
)

var (
	colA = color.RGBA{R: 1, A: 255}
	colB = color.RGBA{G: 2, A: 255}
)

func testPalette(n int) []color.RGBA {
	p := make([]color.RGBA, n)
	for i := range p {
		p[i] = color.RGBA{R: uint8(i), G: uint8(i >> 8), B: 7, A: 255}
	}
	return p
}

func mustNew(t *testing.T, cfg Config) *Evaluator {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	return e
}

func paletteIndex(p []color.RGBA, c color.RGBA) int {
	return slices.Index(p, c)
}

func TestNewConfigErrors(t *testing.T) {
	valid := Config{Width: 4, Height: 3, Iterations: 8, Threshold: 2, Palette: testPalette(8)}

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "Width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "Height"},
		{"zero height", func(c *Config) { c.Height = 0 }, "Height"},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, "Iterations"},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }, "Threshold"},
		{"NaN threshold", func(c *Config) { c.Threshold = math.NaN() }, "Threshold"},
		{"infinite threshold", func(c *Config) { c.Threshold = math.Inf(1) }, "Threshold"},
		{"short palette", func(c *Config) { c.Palette = testPalette(7) }, "Palette"},
		{"empty palette", func(c *Config) { c.Palette = nil }, "Palette"},
		{"unknown y scale", func(c *Config) { c.YScale = 5 }, "YScale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)

			e, err := New(cfg)
			if e != nil {
				t.Errorf("New returned an evaluator for invalid config")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("err = %#v, want ConfigError on %s", err, tt.field)
			}
		})
	}
}

func TestNewCopiesPalette(t *testing.T) {
	p := []color.RGBA{colA, colB}
	e := mustNew(t, Config{Width: 1, Height: 1, Iterations: 1, Threshold: 2, Palette: p})
	p[0] = colB

	out, err := e.Evaluate(Range{0, 1}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != colA {
		t.Errorf("evaluator saw caller's palette change: got %v", out[0])
	}
}

func TestEvaluateTwoPixelScenario(t *testing.T) {
	e := mustNew(t, Config{Width: 2, Height: 1, Iterations: 1, Threshold: 2, Palette: []color.RGBA{colA, colB}})

	out, err := e.Evaluate(Range{-1, 1}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []color.RGBA{colA, colA}; !slices.Equal(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestPointValue(t *testing.T) {
	e := mustNew(t, Config{Width: 1, Height: 1, Iterations: 10, Threshold: 2, Palette: testPalette(10)})

	tests := []struct {
		name  string
		c     complex128
		power float64
		want  int
	}{
		{"escapes on first step", 3, 2, 0},
		{"on threshold does not escape", 1, 2, 2}, // 1, 2, 5
		{"origin never escapes", 0, 2, 9},
		{"period two never escapes", -1, 2, 9},
		{"cubic", 1, 3, 2}, // 1, 2, 9
		{"negative power escapes at once", 0.5, -1, 0},
		{"far point fractional power", complex(10, 10), 2.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.PointValue(tt.c, tt.power); got != tt.want {
				t.Errorf("PointValue(%v, %g) = %d, want %d", tt.c, tt.power, got, tt.want)
			}
		})
	}
}

func TestPointValueExtremeThresholds(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		c         complex128
		power     float64
		want      int
	}{
		{"huge threshold, point beyond it", 1e160, 1e170, 2, 0},
		{"huge threshold, linear map", 1e160, 1e170, 1, 0},
		{"huge threshold, point inside", 1e160, 1e150, 1, 3}, // 1e150, 2e150, 3e150, 4e150
		{"tiny threshold, point beyond it", 1e-170, 1e-165, 2, 0},
		{"tiny threshold, point inside", 1e-170, 1e-175, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustNew(t, Config{Width: 1, Height: 1, Iterations: 4, Threshold: tt.threshold, Palette: testPalette(4)})
			if got := e.PointValue(tt.c, tt.power); got != tt.want {
				t.Errorf("PointValue(%v, %g) = %d, want %d", tt.c, tt.power, got, tt.want)
			}
		})
	}

	e := mustNew(t, Config{Width: 1, Height: 1, Iterations: 4, Threshold: 1e160, Palette: testPalette(4)})
	out, err := e.Evaluate(Range{1e170, 2e170}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := paletteIndex(testPalette(4), out[0]); got != 0 {
		t.Errorf("Evaluate color index %d, want 0", got)
	}
}

func TestEvaluateEscapeBoundary(t *testing.T) {
	p := testPalette(10)
	e := mustNew(t, Config{Width: 1, Height: 1, Iterations: 10, Threshold: 2, Palette: p})

	// c = 1 stays at |z| = 2 on step 1 and escapes on step 2.
	out, err := e.Evaluate(Range{1, 2}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := paletteIndex(p, out[0]); got != 2 {
		t.Errorf("c=1: color index %d, want 2", got)
	}

	out, err = e.Evaluate(Range{0, 1}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := paletteIndex(p, out[0]); got != 9 {
		t.Errorf("c=0: color index %d, want iterations-1", got)
	}
}

func TestEvaluateBufferProperties(t *testing.T) {
	const iterations = 32
	p := HSVPalette(iterations + 5)

	tests := []struct {
		name     string
		w, h     int
		region   Region
		exponent float64
	}{
		{"classic square", 24, 24, ClassicView, 2},
		{"wide fractional", 31, 7, ClassicView, 2.5},
		{"tall cubic", 5, 19, SeahorseValley, 3},
		{"reversed axes", 9, 9, Region{Xmin: 1, Xmax: -2, Ymin: 1.5, Ymax: -1.5}, 1.3},
		{"single pixel", 1, 1, ElephantValley, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustNew(t, Config{Width: tt.w, Height: tt.h, Iterations: iterations, Threshold: 2, Palette: p})

			out, err := e.EvaluateRegion(tt.region, tt.exponent)
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != tt.w*tt.h {
				t.Fatalf("len = %d, want %d", len(out), tt.w*tt.h)
			}
			for i, c := range out {
				idx := paletteIndex(p, c)
				if idx < 0 || idx >= iterations {
					t.Fatalf("pixel %d: color %v has palette index %d outside [0, %d)", i, c, idx, iterations)
				}
			}

			again, err := e.EvaluateRegion(tt.region, tt.exponent)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(out, again) {
				t.Errorf("second evaluation differs")
			}
		})
	}
}

func TestEvaluateRowMajor(t *testing.T) {
	p := testPalette(16)
	e := mustNew(t, Config{Width: 6, Height: 4, Iterations: 16, Threshold: 2, Palette: p, YScale: YScaleHeight})
	rx, ry := Range{-2, 1}, Range{-1.5, 1.5}

	out, err := e.Evaluate(rx, ry, 2)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 4 {
		for x := range 6 {
			c := complex(rx.Lo+float64(x)/(6/rx.span()), ry.Lo+float64(y)/(4/ry.span()))
			want := p[e.PointValue(c, 2)]
			if got := out[y*6+x]; got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestEvaluateYScale(t *testing.T) {
	p := testPalette(3)
	rx, ry := Range{0, 4}, Range{0, 4}

	// Pixel (0, 1) maps to c = i when the vertical range is scaled onto the
	// width and to c = 2i when it is scaled onto the height.
	tests := []struct {
		scale AxisScale
		want  int
	}{
		{YScaleWidth, 2},
		{YScaleHeight, 1},
	}

	for _, tt := range tests {
		t.Run(tt.scale.String(), func(t *testing.T) {
			e := mustNew(t, Config{Width: 4, Height: 2, Iterations: 3, Threshold: 2, Palette: p, YScale: tt.scale})
			out, err := e.Evaluate(rx, ry, 2)
			if err != nil {
				t.Fatal(err)
			}
			if got := paletteIndex(p, out[4]); got != tt.want {
				t.Errorf("pixel (0,1) color index %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluateYScaleSquareGridAgrees(t *testing.T) {
	p := testPalette(24)
	byWidth := mustNew(t, Config{Width: 16, Height: 16, Iterations: 24, Threshold: 2, Palette: p})
	byHeight := mustNew(t, Config{Width: 16, Height: 16, Iterations: 24, Threshold: 2, Palette: p, YScale: YScaleHeight})

	a, err := byWidth.EvaluateRegion(ClassicView, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := byHeight.EvaluateRegion(ClassicView, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a, b) {
		t.Errorf("square grid differs between y scales")
	}
}

func TestEvaluateParallelMatchesSequential(t *testing.T) {
	p := Stretch(HSVPalette(16), 48)
	base := Config{Width: 37, Height: 23, Iterations: 48, Threshold: 2, Palette: p}

	seq := mustNew(t, base)
	want, err := seq.EvaluateRegion(ClassicView, 2.5)
	if err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{2, 3, 4, 23, 64} {
		cfg := base
		cfg.Workers = workers
		got, err := mustNew(t, cfg).EvaluateRegion(ClassicView, 2.5)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("workers=%d: output differs from sequential", workers)
		}
	}
}

func TestEvaluateDegenerateViewport(t *testing.T) {
	e := mustNew(t, Config{Width: 4, Height: 4, Iterations: 4, Threshold: 2, Palette: testPalette(4), Workers: 2})

	tests := []struct {
		name   string
		rx, ry Range
		axis   string
	}{
		{"zero x span", Range{5, 5}, Range{0, 1}, "x"},
		{"zero y span", Range{0, 1}, Range{-3, -3}, "y"},
		{"NaN bound", Range{math.NaN(), 1}, Range{0, 1}, "x"},
		{"infinite bound", Range{0, 1}, Range{0, math.Inf(1)}, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Evaluate(tt.rx, tt.ry, 2)
			if out != nil {
				t.Errorf("got partial output of %d pixels", len(out))
			}
			if !errors.Is(err, ErrDegenerateViewport) {
				t.Fatalf("err = %v, want ErrDegenerateViewport", err)
			}
			var ve *ViewportError
			if !errors.As(err, &ve) || ve.Axis != tt.axis {
				t.Errorf("err = %#v, want ViewportError on %s axis", err, tt.axis)
			}
		})
	}
}

func TestColorOutOfRange(t *testing.T) {
	e := mustNew(t, Config{Width: 1, Height: 1, Iterations: 2, Threshold: 2, Palette: testPalette(2)})

	for _, idx := range []int{-1, 2} {
		_, err := e.color(idx)
		var pe *PaletteIndexError
		if !errors.As(err, &pe) || pe.Index != idx || pe.Len != 2 {
			t.Errorf("color(%d): err = %v, want PaletteIndexError", idx, err)
		}
		if !errors.Is(err, ErrPaletteIndex) {
			t.Errorf("color(%d): err does not wrap ErrPaletteIndex", idx)
		}
	}
}

func TestParseAxisScale(t *testing.T) {
	for _, s := range []AxisScale{YScaleWidth, YScaleHeight} {
		got, err := ParseAxisScale(s.String())
		if err != nil || got != s {
			t.Errorf("ParseAxisScale(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseAxisScale("diagonal"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ParseAxisScale(diagonal): err = %v, want ErrConfiguration", err)
	}
}

func TestSplitRectNoClip(t *testing.T) {
	tiles := splitRectNoClip(image.Rect(0, 0, 10, 7), 4, 3)
	if len(tiles) != 9 {
		t.Fatalf("got %d tiles, want 9", len(tiles))
	}
	area := 0
	for _, tl := range tiles {
		area += tl.Dx() * tl.Dy()
	}
	if area != 70 {
		t.Errorf("tiles cover %d pixels, want 70", area)
	}
	if last := tiles[len(tiles)-1]; last != image.Rect(8, 6, 10, 7) {
		t.Errorf("last tile = %v", last)
	}
}
