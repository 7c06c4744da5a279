// Package cliconf binds evaluator and viewport settings to command line flags.
package cliconf

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	mandel "github.com/marben/powmandel"
)

// Evaluator holds the flags that make up a mandel.Config.
type Evaluator struct {
	Width      int
	Height     int
	Iterations int
	Threshold  float64
	Palette    string
	Colors     string
	Stretch    bool
	YScale     string
	Workers    int
}

// Register adds the evaluator flags to fs with the given default grid size.
func (f *Evaluator) Register(fs *pflag.FlagSet, width, height int) {
	fs.IntVar(&f.Width, "width", width, "grid width in pixels")
	fs.IntVar(&f.Height, "height", height, "grid height in pixels")
	fs.IntVar(&f.Iterations, "iterations", 64, "iteration budget per point")
	fs.Float64Var(&f.Threshold, "threshold", 2, "escape threshold on |z|")
	fs.StringVar(&f.Palette, "palette", "gradient", "generated palette: gradient or hsv")
	fs.StringVar(&f.Colors, "colors", "", "comma separated #rrggbb palette, overrides --palette")
	fs.BoolVar(&f.Stretch, "stretch", false, "repeat --colors entries to cover every iteration")
	fs.StringVar(&f.YScale, "y-scale", "width", "pixel extent the vertical range is scaled onto: width or height")
	fs.IntVar(&f.Workers, "workers", 1, "goroutines evaluating row bands")
}

// Config builds the evaluator configuration. It does not validate what
// mandel.New validates.
func (f *Evaluator) Config() (mandel.Config, error) {
	ys, err := mandel.ParseAxisScale(f.YScale)
	if err != nil {
		return mandel.Config{}, err
	}
	p, err := f.palette()
	if err != nil {
		return mandel.Config{}, err
	}
	return mandel.Config{
		Width:      f.Width,
		Height:     f.Height,
		Iterations: f.Iterations,
		Threshold:  f.Threshold,
		Palette:    p,
		YScale:     ys,
		Workers:    f.Workers,
	}, nil
}

func (f *Evaluator) palette() ([]color.RGBA, error) {
	if f.Colors != "" {
		p, err := mandel.ParsePalette(f.Colors)
		if err != nil {
			return nil, fmt.Errorf("--colors: %w", err)
		}
		if f.Stretch {
			p = mandel.Stretch(p, f.Iterations)
		}
		return p, nil
	}
	if f.Iterations < 1 {
		// Let mandel.New report the iteration budget.
		return nil, nil
	}

	switch f.Palette {
	case "gradient":
		return mandel.Gradient(mandel.DefaultStops, f.Iterations)
	case "hsv":
		return mandel.HSVPalette(f.Iterations), nil
	}
	return nil, fmt.Errorf("--palette: unknown palette %q", f.Palette)
}

// View holds the viewport and exponent flags.
type View struct {
	Region   string
	Xmin     float64
	Xmax     float64
	Ymin     float64
	Ymax     float64
	Exponent float64

	fs *pflag.FlagSet
}

func (v *View) Register(fs *pflag.FlagSet) {
	v.fs = fs
	fs.StringVar(&v.Region, "region", "classic", "named region: "+strings.Join(RegionNames(), ", "))
	fs.Float64Var(&v.Xmin, "xmin", 0, "low end of the real axis, overrides --region")
	fs.Float64Var(&v.Xmax, "xmax", 0, "high end of the real axis, overrides --region")
	fs.Float64Var(&v.Ymin, "ymin", 0, "low end of the imaginary axis, overrides --region")
	fs.Float64Var(&v.Ymax, "ymax", 0, "high end of the imaginary axis, overrides --region")
	fs.Float64Var(&v.Exponent, "exponent", 2, "real power in z = z^p + c")
}

// Request resolves the region and any explicit bounds into a frame request.
func (v *View) Request() (mandel.FrameRequest, error) {
	r, ok := mandel.Regions[v.Region]
	if !ok {
		return mandel.FrameRequest{}, fmt.Errorf("--region: unknown region %q", v.Region)
	}
	if v.changed("xmin") {
		r.Xmin = v.Xmin
	}
	if v.changed("xmax") {
		r.Xmax = v.Xmax
	}
	if v.changed("ymin") {
		r.Ymin = v.Ymin
	}
	if v.changed("ymax") {
		r.Ymax = v.Ymax
	}
	return mandel.FrameRequest{RangeX: r.X(), RangeY: r.Y(), Exponent: v.Exponent}, nil
}

func (v *View) changed(name string) bool {
	return v.fs != nil && v.fs.Changed(name)
}

// RegionNames lists mandel.Regions keys in sorted order.
func RegionNames() []string {
	names := make([]string, 0, len(mandel.Regions))
	for n := range mandel.Regions {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
