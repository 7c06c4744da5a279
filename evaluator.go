package mandel

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"sync"
)

// AxisScale selects which pixel extent the vertical viewport range is scaled onto.
type AxisScale int

const (
	// YScaleWidth scales the vertical range onto the grid width, like the
	// horizontal one. Mapping is aspect-correct only for square grids.
	YScaleWidth AxisScale = iota
	// YScaleHeight scales the vertical range onto the grid height.
	YScaleHeight
)

func (s AxisScale) String() string {
	switch s {
	case YScaleWidth:
		return "width"
	case YScaleHeight:
		return "height"
	}
	return fmt.Sprintf("AxisScale(%d)", int(s))
}

// ParseAxisScale parses the names returned by AxisScale.String.
func ParseAxisScale(s string) (AxisScale, error) {
	switch s {
	case "width", "":
		return YScaleWidth, nil
	case "height":
		return YScaleHeight, nil
	}
	return 0, &ConfigError{Field: "YScale", Reason: fmt.Sprintf("unknown axis scale %q", s)}
}

type Config struct {
	Width, Height int // pixel grid
	Iterations    int // iteration budget
	Threshold     float64
	Palette       []color.RGBA // at least Iterations colors

	YScale AxisScale

	// Workers > 1 evaluates row bands on that many goroutines.
	Workers int
}

// Evaluator computes escape-time frames for a fixed configuration.
// It holds no mutable state and may be used from multiple goroutines.
type Evaluator struct {
	width, height int
	iterations    int
	threshold     float64
	palette       []color.RGBA
	yScale        AxisScale
	workers       int
}

func New(cfg Config) (*Evaluator, error) {
	switch {
	case cfg.Width < 1:
		return nil, &ConfigError{Field: "Width", Reason: fmt.Sprintf("must be positive, got %d", cfg.Width)}
	case cfg.Height < 1:
		return nil, &ConfigError{Field: "Height", Reason: fmt.Sprintf("must be positive, got %d", cfg.Height)}
	case cfg.Iterations < 1:
		return nil, &ConfigError{Field: "Iterations", Reason: fmt.Sprintf("must be positive, got %d", cfg.Iterations)}
	case !(cfg.Threshold > 0) || math.IsInf(cfg.Threshold, 1):
		return nil, &ConfigError{Field: "Threshold", Reason: fmt.Sprintf("must be positive and finite, got %g", cfg.Threshold)}
	case len(cfg.Palette) < cfg.Iterations:
		return nil, &ConfigError{Field: "Palette", Reason: fmt.Sprintf("%d colors for %d iterations", len(cfg.Palette), cfg.Iterations)}
	case cfg.YScale != YScaleWidth && cfg.YScale != YScaleHeight:
		return nil, &ConfigError{Field: "YScale", Reason: fmt.Sprintf("unknown axis scale %d", int(cfg.YScale))}
	}

	return &Evaluator{
		width:      cfg.Width,
		height:     cfg.Height,
		iterations: cfg.Iterations,
		threshold:  cfg.Threshold,
		palette:    slices.Clone(cfg.Palette),
		yScale:     cfg.YScale,
		workers:    max(cfg.Workers, 1),
	}, nil
}

func (e *Evaluator) Width() int      { return e.width }
func (e *Evaluator) Height() int     { return e.height }
func (e *Evaluator) Iterations() int { return e.iterations }

// PointValue returns the iteration on which z -> z^power + c first leaves the
// threshold circle, or Iterations()-1 if it never does.
func (e *Evaluator) PointValue(c complex128, power float64) int {
	var z complex128
	for i := range e.iterations {
		z = Pow(z, power) + c
		// Hypot keeps the boundary where squaring would overflow or
		// underflow, and is +Inf when either part is infinite.
		if math.Hypot(real(z), imag(z)) > e.threshold {
			return i
		}
	}
	return e.iterations - 1
}

func (e *Evaluator) color(index int) (color.RGBA, error) {
	if index < 0 || index >= len(e.palette) {
		return color.RGBA{}, &PaletteIndexError{Index: index, Len: len(e.palette)}
	}
	return e.palette[index], nil
}

// Evaluate computes one frame. The returned buffer holds Width()*Height()
// palette colors in row-major order (index y*Width()+x).
func (e *Evaluator) Evaluate(rangeX, rangeY Range, exponent float64) ([]color.RGBA, error) {
	if !rangeX.valid() {
		return nil, &ViewportError{Axis: "x", Range: rangeX}
	}
	if !rangeY.valid() {
		return nil, &ViewportError{Axis: "y", Range: rangeY}
	}

	scaleX := float64(e.width) / rangeX.span()
	scaleY := float64(e.width) / rangeY.span()
	if e.yScale == YScaleHeight {
		scaleY = float64(e.height) / rangeY.span()
	}

	m := mapping{
		x0: rangeX.Lo, scaleX: scaleX,
		y0: rangeY.Lo, scaleY: scaleY,
		power: exponent,
	}

	data := make([]color.RGBA, e.width*e.height)
	full := image.Rect(0, 0, e.width, e.height)

	if e.workers == 1 || e.height == 1 {
		if err := e.evaluateTile(data, full, m); err != nil {
			return nil, err
		}
		return data, nil
	}

	bandH := (e.height + e.workers - 1) / e.workers
	bands := splitRectNoClip(full, e.width, bandH)
	errs := make([]error, len(bands))

	var wg sync.WaitGroup
	for i, band := range bands {
		wg.Go(func() {
			errs[i] = e.evaluateTile(data, band, m)
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// EvaluateRegion is Evaluate with both ranges taken from r.
func (e *Evaluator) EvaluateRegion(r Region, exponent float64) ([]color.RGBA, error) {
	return e.Evaluate(r.X(), r.Y(), exponent)
}

// Image evaluates a frame and wraps it into an RGBA image.
func (e *Evaluator) Image(rangeX, rangeY Range, exponent float64) (*image.RGBA, error) {
	data, err := e.Evaluate(rangeX, rangeY, exponent)
	if err != nil {
		return nil, err
	}
	return ToRGBA(data, e.width, e.height)
}

type mapping struct {
	x0, scaleX float64
	y0, scaleY float64
	power      float64
}

// evaluateTile fills the pixels of tile into data, which is laid out for the
// full grid. Tiles must not overlap when called concurrently.
func (e *Evaluator) evaluateTile(data []color.RGBA, tile image.Rectangle, m mapping) error {
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		cy := m.y0 + float64(y)/m.scaleY
		row := y * e.width

		for x := tile.Min.X; x < tile.Max.X; x++ {
			cx := m.x0 + float64(x)/m.scaleX

			col, err := e.color(e.PointValue(complex(cx, cy), m.power))
			if err != nil {
				return err
			}
			data[row+x] = col
		}
	}
	return nil
}
