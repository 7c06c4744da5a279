package mandel

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Stop is one gradient stop.
type Stop struct {
	T   float64
	Hex string
}

// DefaultStops is the blue-white-orange gradient of the classic web renderer.
// The tail after the last stop stays near black, where points that never
// escape end up.
var DefaultStops = []Stop{
	{T: 0.00, Hex: "#000764"},
	{T: 0.16, Hex: "#2068CB"},
	{T: 0.42, Hex: "#EDFFFF"},
	{T: 0.6425, Hex: "#FFAA00"},
	{T: 0.8575, Hex: "#000200"},
}

type gradientStop struct {
	t float64
	c colorful.Color
}

// Gradient samples n colors from a piecewise linear RGB gradient. Color i is
// taken at the center of the i-th of n equal cells over [0, 1]; positions
// outside the stops take the nearest stop color.
func Gradient(stops []Stop, n int) ([]color.RGBA, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("gradient: no stops")
	}
	if n < 1 {
		return nil, fmt.Errorf("gradient: %d colors requested", n)
	}

	gs := make([]gradientStop, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s.Hex)
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		if i > 0 && s.T < stops[i-1].T {
			return nil, fmt.Errorf("gradient stop %d: position %g before %g", i, s.T, stops[i-1].T)
		}
		gs[i] = gradientStop{t: s.T, c: c}
	}

	p := make([]color.RGBA, n)
	for i := range p {
		p[i] = toRGBA(sample(gs, (float64(i)+0.5)/float64(n)))
	}
	return p, nil
}

func sample(gs []gradientStop, t float64) colorful.Color {
	if t <= gs[0].t {
		return gs[0].c
	}
	for i := 1; i < len(gs); i++ {
		if t <= gs[i].t {
			a, b := gs[i-1], gs[i]
			if b.t == a.t {
				return b.c
			}
			return a.c.BlendRgb(b.c, (t-a.t)/(b.t-a.t))
		}
	}
	return gs[len(gs)-1].c
}

// HSVPalette spreads n fully saturated hues over the color wheel. The last
// entry is black so that points inside the set stand out.
func HSVPalette(n int) []color.RGBA {
	p := make([]color.RGBA, n)
	for i := range n {
		p[i] = toRGBA(colorful.Hsv(360*float64(i)/float64(n), 1, 1))
	}
	if n > 0 {
		p[n-1] = color.RGBA{A: 255}
	}
	return p
}

// ParsePalette parses a comma separated list of #rrggbb colors.
func ParsePalette(s string) ([]color.RGBA, error) {
	var p []color.RGBA
	for i, h := range strings.Split(s, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %d %q: %w", i, h, err)
		}
		p = append(p, toRGBA(c))
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("palette %q: no colors", s)
	}
	return p, nil
}

// Stretch repeats palette entries so the result has exactly n colors, keeping
// their order. It lets a short hand-written palette cover a larger iteration budget.
func Stretch(p []color.RGBA, n int) []color.RGBA {
	if len(p) == 0 || n < 1 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		out[i] = p[i*len(p)/n]
	}
	return out
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
