package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis aligned 3D bounding box.
type Box r3.Box

// EmptyBox returns an inverted box that any call to Include will reset.
func EmptyBox() Box {
	return Box{Min: Elem(math.MaxFloat64), Max: Elem(-math.MaxFloat64)}
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Vertices returns the 8 corners of the box. The bottom face (Min.Z)
// corners come first, counter clockwise when looking down Z starting at Min,
// followed by the top face corners in the same order:
//
//	0: (min, min, min)  1: (max, min, min)  2: (max, max, min)  3: (min, max, min)
//	4: (min, min, max)  5: (max, min, max)  6: (max, max, max)  7: (min, max, max)
func (a Box) Vertices() [8]r3.Vec {
	lo, hi := a.Min, a.Max
	return [8]r3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// MaxDim returns the largest side length of the box.
func (a Box) MaxDim() float64 {
	return Max(a.Size())
}
