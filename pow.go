package mandel

import (
	"math"
	"math/cmplx"
)

// Pow raises z to a real power in polar form: the modulus is raised to power
// and the argument is multiplied by it.
//
// Pow(0, p) is 0 for p > 0 and 1 for p == 0. For p < 0 the result is infinite
// (cmplx.IsInf reports true).
func Pow(z complex128, power float64) complex128 {
	r, theta := cmplx.Polar(z)
	return cmplx.Rect(math.Pow(r, power), theta*power)
}
