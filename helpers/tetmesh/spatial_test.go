package tetmesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/internal/d3"
	"github.com/devdye/4DMeshTool/render"
)

func TestClosestOnTriangle(t *testing.T) {
	tri := render.Triangle3{{}, {X: 1}, {Y: 1}}
	tests := []struct {
		p       r3.Vec
		closest r3.Vec
		feat    triangleFeature
	}{
		{p: r3.Vec{X: -1, Y: -1}, closest: r3.Vec{}, feat: featureV0},
		{p: r3.Vec{X: 2, Y: -0.1}, closest: r3.Vec{X: 1}, feat: featureV1},
		{p: r3.Vec{Y: 2}, closest: r3.Vec{Y: 1}, feat: featureV2},
		{p: r3.Vec{X: 0.5, Y: -1, Z: 1}, closest: r3.Vec{X: 0.5}, feat: featureE0},
		{p: r3.Vec{X: 1, Y: 1}, closest: r3.Vec{X: 0.5, Y: 0.5}, feat: featureE1},
		{p: r3.Vec{X: -1, Y: 0.5}, closest: r3.Vec{Y: 0.5}, feat: featureE2},
		{p: r3.Vec{X: 0.2, Y: 0.2, Z: 3}, closest: r3.Vec{X: 0.2, Y: 0.2}, feat: featureFace},
	}
	for _, test := range tests {
		got, feat := closestOnTriangle(test.p, tri)
		if feat != test.feat {
			t.Errorf("%v: feature %d, want %d", test.p, feat, test.feat)
		}
		if !d3.EqualWithin(got, test.closest, 1e-12) {
			t.Errorf("%v: closest %v, want %v", test.p, got, test.closest)
		}
	}
}

func TestBCCLatticeVolumes(t *testing.T) {
	const res = 0.5
	bcc, err := newBCCLattice(r3.Box{Max: r3.Vec{X: 2, Y: 1.5, Z: 1.5}}, res)
	if err != nil {
		t.Fatal(err)
	}
	if bcc.div != [3]int{6, 5, 5} {
		t.Fatalf("lattice divisions %v", bcc.div)
	}
	nodes := bcc.nodes()
	tetras := bcc.tetras()
	// 4 tetrahedra per interior cell face.
	d := bcc.div
	faces := (d[0]-1)*d[1]*d[2] + d[0]*(d[1]-1)*d[2] + d[0]*d[1]*(d[2]-1)
	if len(tetras) != 4*faces {
		t.Fatalf("got %d tetrahedra, want %d", len(tetras), 4*faces)
	}
	want := res * res * res / 12
	for i, t4 := range tetras {
		a := nodes[t4[0]]
		v := r3.Dot(r3.Sub(nodes[t4[1]], a), r3.Cross(r3.Sub(nodes[t4[2]], a), r3.Sub(nodes[t4[3]], a))) / 6
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("tetra %d %v volume %g, want %g", i, t4, v, want)
		}
	}
}

func TestCompact(t *testing.T) {
	nodes := []r3.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}}
	kept, tetras := compact(nodes, []mesh4d.Tetra{{5, 1, 3, 4}})
	if len(kept) != 4 || kept[0].X != 1 || kept[3].X != 5 {
		t.Fatalf("kept nodes %v", kept)
	}
	if tetras[0] != (mesh4d.Tetra{3, 0, 1, 2}) {
		t.Fatalf("renumbered tetra %v", tetras[0])
	}
}
