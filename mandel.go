package mandel

import (
	"fmt"
	"math"
)

// Range is the visible interval of the complex plane along one axis.
type Range struct {
	Lo, Hi float64
}

func (r Range) span() float64 {
	return r.Hi - r.Lo
}

// valid reports whether r can be mapped onto a pixel extent.
func (r Range) valid() bool {
	s := r.span()
	return s != 0 && !math.IsNaN(s) && !math.IsInf(s, 0)
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Lo, r.Hi)
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

func (r Region) X() Range { return Range{Lo: r.Xmin, Hi: r.Xmax} }
func (r Region) Y() Range { return Range{Lo: r.Ymin, Hi: r.Ymax} }

// RegionOf builds a Region from two axis ranges.
func RegionOf(x, y Range) Region {
	return Region{Xmin: x.Lo, Xmax: x.Hi, Ymin: y.Lo, Ymax: y.Hi}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Classic view – whole set, square viewport
	ClassicView = Region{
		Xmin: -2,
		Xmax: 1,
		Ymin: -1.5,
		Ymax: 1.5,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Regions maps command line names to the landmarks above.
var Regions = map[string]Region{
	"classic":    ClassicView,
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"spiral":     SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}
