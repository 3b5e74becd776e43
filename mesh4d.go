// Package mesh4d extrudes 3D tetrahedral meshes along a fourth axis W
// into 4D meshes of tetrahedra joining a base and a top layer.
package mesh4d

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Node4 is a point in 4D space. The W component is the extrusion axis.
type Node4 struct {
	X, Y, Z, W float64
}

// Lower drops the W component of the node.
func (n Node4) Lower() r3.Vec { return r3.Vec{X: n.X, Y: n.Y, Z: n.Z} }

// Tetra holds the four node indices of a tetrahedron. The indices
// are an unordered set stored in the order the mesher produced them.
type Tetra [4]int

// Shift returns the tetrahedron with every index offset by n.
func (t Tetra) Shift(n int) Tetra {
	return Tetra{t[0] + n, t[1] + n, t[2] + n, t[3] + n}
}

// Faces returns the four canonical triangular faces of t.
func (t Tetra) Faces() [4]Face { return TetraFaces(t) }

// validate checks t references four distinct nodes in [0, numNodes).
func (t Tetra) validate(numNodes int) error {
	for i, v := range t {
		if v < 0 || v >= numNodes {
			return fmt.Errorf("node index %d out of range [0, %d)", v, numNodes)
		}
		for _, u := range t[:i] {
			if u == v {
				return fmt.Errorf("repeated node index %d", v)
			}
		}
	}
	return nil
}

// Mesh3D is a volumetric tetrahedral mesh in 3D space as produced by
// a tetrahedralizer. Tetras index into Nodes and are 0-based.
type Mesh3D struct {
	Nodes  []r3.Vec
	Tetras []Tetra
}

// Validate checks every tetrahedron of the mesh references four distinct
// nodes within range. The returned error wraps ErrInvalidMesh.
func (m Mesh3D) Validate() error {
	for i, t := range m.Tetras {
		if err := t.validate(len(m.Nodes)); err != nil {
			return &TetraError{Index: i, Tetra: t, Err: err}
		}
	}
	return nil
}

// Mesh4D is the extruded mesh. Nodes [0, n) are the base layer
// and nodes [n, 2n) the top layer where n is the number of nodes of the
// source Mesh3D. Tetras index into Nodes.
type Mesh4D struct {
	Nodes  []Node4
	Tetras []Tetra
}

// Vertices returns the coordinates of the ith tetrahedron's nodes.
func (m Mesh4D) Vertices(i int) [4]Node4 {
	t := m.Tetras[i]
	return [4]Node4{m.Nodes[t[0]], m.Nodes[t[1]], m.Nodes[t[2]], m.Nodes[t[3]]}
}
