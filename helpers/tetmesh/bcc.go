package tetmesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/internal/d3"
)

// maxLatticeCells bounds the memory a single lattice may take.
const maxLatticeCells = 1 << 24

// bccLattice is a body centered cubic lattice for isotropic tetrahedron
// generation. Inspired by Tetrahedral Mesh Generation for Deformable Bodies,
// Molino, Bridson, Fedkiw.
//
// Nodes are the (div+1)^3 cell corners followed by the div^3 cell centers.
// Every pair of face adjacent cells is joined by the 4 positively oriented
// tetrahedra formed by both centers and an edge of the shared face.
type bccLattice struct {
	origin     r3.Vec
	resolution float64
	// div is the number of cells per axis.
	div [3]int
}

// newBCCLattice covers b with cells of side resolution plus a one cell
// margin so that the tetrahedra spanned between cell centers enclose b.
func newBCCLattice(b r3.Box, resolution float64) (bccLattice, error) {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return bccLattice{}, fmt.Errorf("%w: resolution must be positive and finite, got %g", mesh4d.ErrInvalidParameter, resolution)
	}
	sz := d3.Box(b).Size()
	var div [3]int
	for i, side := range [3]float64{sz.X, sz.Y, sz.Z} {
		n := math.Ceil(side / resolution)
		if n < 3 {
			return bccLattice{}, fmt.Errorf("%w: resolution %g too low, need at least 3 cells per axis", mesh4d.ErrInvalidParameter, resolution)
		}
		if n > maxLatticeCells {
			return bccLattice{}, fmt.Errorf("%w: resolution %g too fine", mesh4d.ErrInvalidParameter, resolution)
		}
		div[i] = int(n) + 2
	}
	if float64(div[0])*float64(div[1])*float64(div[2]) > maxLatticeCells {
		return bccLattice{}, fmt.Errorf("%w: resolution %g yields more than %d lattice cells", mesh4d.ErrInvalidParameter, resolution, maxLatticeCells)
	}
	return bccLattice{
		origin:     r3.Sub(b.Min, d3.Elem(resolution)),
		resolution: resolution,
		div:        div,
	}, nil
}

func (l bccLattice) numCorners() int {
	return (l.div[0] + 1) * (l.div[1] + 1) * (l.div[2] + 1)
}

func (l bccLattice) numCells() int {
	return l.div[0] * l.div[1] * l.div[2]
}

// corner returns the node index of the cell corner at lattice position i,j,k.
func (l bccLattice) corner(i, j, k int) int {
	return (i*(l.div[1]+1)+j)*(l.div[2]+1) + k
}

// center returns the node index of the center of cell i,j,k.
func (l bccLattice) center(i, j, k int) int {
	return l.numCorners() + (i*l.div[1]+j)*l.div[2] + k
}

func (l bccLattice) nodes() []r3.Vec {
	nodes := make([]r3.Vec, 0, l.numCorners()+l.numCells())
	res := l.resolution
	for i := 0; i <= l.div[0]; i++ {
		for j := 0; j <= l.div[1]; j++ {
			for k := 0; k <= l.div[2]; k++ {
				nodes = append(nodes, r3.Add(l.origin, r3.Vec{X: float64(i) * res, Y: float64(j) * res, Z: float64(k) * res}))
			}
		}
	}
	for i := 0; i < l.div[0]; i++ {
		for j := 0; j < l.div[1]; j++ {
			for k := 0; k < l.div[2]; k++ {
				ctr := r3.Vec{X: (float64(i) + 0.5) * res, Y: (float64(j) + 0.5) * res, Z: (float64(k) + 0.5) * res}
				nodes = append(nodes, r3.Add(l.origin, ctr))
			}
		}
	}
	return nodes
}

// tetras meshes the minor side of every cell that has a neighbor there.
func (l bccLattice) tetras() []mesh4d.Tetra {
	tetras := make([]mesh4d.Tetra, 0, 12*l.numCells())
	join := func(ctr, nctr int, face [4]int) {
		for e := range face {
			tetras = append(tetras, mesh4d.Tetra{ctr, face[(e+1)%4], face[e], nctr})
		}
	}
	for i := 0; i < l.div[0]; i++ {
		for j := 0; j < l.div[1]; j++ {
			for k := 0; k < l.div[2]; k++ {
				ctr := l.center(i, j, k)
				// Start with z since it is the minor dimension of the node layout.
				if k > 0 {
					join(ctr, l.center(i, j, k-1), [4]int{
						l.corner(i, j, k), l.corner(i+1, j, k), l.corner(i+1, j+1, k), l.corner(i, j+1, k),
					})
				}
				if j > 0 {
					join(ctr, l.center(i, j-1, k), [4]int{
						l.corner(i+1, j, k), l.corner(i, j, k), l.corner(i, j, k+1), l.corner(i+1, j, k+1),
					})
				}
				if i > 0 {
					join(ctr, l.center(i-1, j, k), [4]int{
						l.corner(i, j, k), l.corner(i, j+1, k), l.corner(i, j+1, k+1), l.corner(i, j, k+1),
					})
				}
			}
		}
	}
	return tetras
}

// compact drops nodes no tetrahedron references and renumbers the
// tetrahedra, preserving the relative order of the kept nodes.
func compact(nodes []r3.Vec, tetras []mesh4d.Tetra) ([]r3.Vec, []mesh4d.Tetra) {
	remap := make([]int, len(nodes))
	for i := range remap {
		remap[i] = -1
	}
	for _, t := range tetras {
		for _, v := range t {
			remap[v] = 0
		}
	}
	kept := make([]r3.Vec, 0, len(nodes))
	for i := range remap {
		if remap[i] == 0 {
			remap[i] = len(kept)
			kept = append(kept, nodes[i])
		}
	}
	out := make([]mesh4d.Tetra, len(tetras))
	for ti, t := range tetras {
		for v := range t {
			out[ti][v] = remap[t[v]]
		}
	}
	return kept, out
}
