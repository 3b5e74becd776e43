// Package meshtest provides small closed surfaces and tetrahedral meshes
// with known properties for tests.
package meshtest

import (
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/internal/d3"
	"github.com/devdye/4DMeshTool/render"
)

// boxFaces lists the corners of each outward facing triangle of a box,
// indexed as in d3.Box.Vertices.
var boxFaces = [12][3]int{
	{0, 3, 2}, {0, 2, 1}, // -Z
	{4, 5, 6}, {4, 6, 7}, // +Z
	{0, 1, 5}, {0, 5, 4}, // -Y
	{3, 7, 6}, {3, 6, 2}, // +Y
	{0, 4, 7}, {0, 7, 3}, // -X
	{1, 2, 6}, {1, 6, 5}, // +X
}

// Box returns the 12 outward facing triangles of an axis aligned box.
func Box(min, max r3.Vec) []render.Triangle3 {
	v := d3.Box{Min: min, Max: max}.Vertices()
	model := make([]render.Triangle3, len(boxFaces))
	for i, f := range boxFaces {
		model[i] = render.Triangle3{v[f[0]], v[f[1]], v[f[2]]}
	}
	return model
}

// Cube returns a cube of side length size centered at the origin.
func Cube(size float64) []render.Triangle3 {
	h := size / 2
	return Box(r3.Vec{X: -h, Y: -h, Z: -h}, r3.Vec{X: h, Y: h, Z: h})
}

// SingleTetra is the unit corner tetrahedron.
func SingleTetra() mesh4d.Mesh3D {
	return mesh4d.Mesh3D{
		Nodes: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Tetras: []mesh4d.Tetra{{0, 1, 2, 3}},
	}
}

// KuhnCube is the unit cube split into six tetrahedra around its 0-7 diagonal.
// It has 18 unique faces, 12 of them on the boundary.
func KuhnCube() mesh4d.Mesh3D {
	nodes := make([]r3.Vec, 8)
	for i := range nodes {
		nodes[i] = r3.Vec{X: float64(i & 1), Y: float64((i >> 1) & 1), Z: float64((i >> 2) & 1)}
	}
	return mesh4d.Mesh3D{
		Nodes: nodes,
		Tetras: []mesh4d.Tetra{
			{0, 1, 3, 7}, {0, 1, 5, 7}, {0, 2, 3, 7},
			{0, 2, 6, 7}, {0, 4, 5, 7}, {0, 4, 6, 7},
		},
	}
}
