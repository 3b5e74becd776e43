package mesh4d

import "math"

// HeightFunc maps a 3D node position to its base-layer W coordinate.
// It must be a pure function of its arguments.
type HeightFunc func(x, y, z float64) float64

// ZeroHeight places every base-layer node at W=0.
var ZeroHeight HeightFunc = func(_, _, _ float64) float64 { return 0 }

// PlaneHeight returns a HeightFunc for the hyperplane W = a*x + b*y + c*z + d.
func PlaneHeight(a, b, c, d float64) HeightFunc {
	return func(x, y, z float64) float64 {
		return a*x + b*y + c*z + d
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
