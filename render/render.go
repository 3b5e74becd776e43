// Package render reads triangulated surfaces from OBJ and STL files and
// writes surfaces, previews and extruded 4D meshes back to disk.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle. Vertices are ordered counter clockwise
// when looking at the triangle from outside the solid.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle following the right hand rule.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Centroid returns the mean of the triangle's vertices.
func (t Triangle3) Centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(r3.Add(t[0], t[1]), t[2]))
}

// Degenerate returns true if two vertices of the triangle are
// within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return equalWithin(t[0], t[1], tol) ||
		equalWithin(t[1], t[2], tol) ||
		equalWithin(t[2], t[0], tol)
}

func equalWithin(a, b r3.Vec, tol float64) bool {
	d := r3.Sub(a, b)
	return d.X <= tol && d.X >= -tol &&
		d.Y <= tol && d.Y >= -tol &&
		d.Z <= tol && d.Z >= -tol
}
