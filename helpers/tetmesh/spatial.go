package tetmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/devdye/4DMeshTool/render"
)

type triangleFeature int

const (
	featureV0 triangleFeature = iota
	featureV1
	featureV2
	featureE0 // edge V0-V1
	featureE1 // edge V1-V2
	featureE2 // edge V2-V0
	featureFace
)

// meshTriangle is a surface triangle stored in the kd-tree by its centroid.
// A meshTriangle with a zero normal is a query point.
type meshTriangle struct {
	C        r3.Vec // Centroid
	Vertices [3]int
	N        r3.Vec // Pseudo Face normal (scaled by 2*pi)
	s        *surface
	// slack is set on query points to the largest centroid to vertex
	// distance of the surface so plane comparisons never overestimate
	// the distance to a triangle on the far side of a split.
	slack float64
}

func (t *meshTriangle) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*meshTriangle)
	var diff float64
	switch d {
	case 0:
		diff = t.C.X - q.C.X
	case 1:
		diff = t.C.Y - q.C.Y
	case 2:
		diff = t.C.Z - q.C.Z
	default:
		panic("unreachable")
	}
	if t.slack > 0 {
		return math.Copysign(math.Max(math.Abs(diff)-t.slack, 0), diff)
	}
	return diff
}

func (t *meshTriangle) Dims() int { return 3 }

// Distance returns the squared distance between a query point and a triangle.
func (t *meshTriangle) Distance(c kdtree.Comparable) float64 {
	point := c.(*meshTriangle)
	if t.isPoint() {
		if point.isPoint() {
			return r3.Norm2(r3.Sub(t.C, point.C))
		}
		point, t = t, point // make sure `t` is the triangle.
	}
	closest, _ := closestOnTriangle(point.C, t.triangle())
	return r3.Norm2(r3.Sub(point.C, closest))
}

// signedDistance gives dist the sign of p relative to the surface using the
// pseudo normal of the feature of t closest to p.
func (t *meshTriangle) signedDistance(p, closest r3.Vec, feat triangleFeature, dist float64) float64 {
	var signed float64
	switch {
	case feat <= featureV2:
		vertex := t.s.vertices[t.Vertices[feat]]
		signed = r3.Dot(vertex.N, r3.Sub(p, vertex.V))
	case feat <= featureE2:
		v1 := int(feat - featureE0)
		norm := t.s.pseudoEdgeN[edgeKey(t.Vertices[v1], t.Vertices[(v1+1)%3])]
		signed = r3.Dot(norm, r3.Sub(p, closest))
	default:
		signed = r3.Dot(t.N, r3.Sub(p, closest))
	}
	return math.Copysign(dist, signed)
}

func (t *meshTriangle) triangle() render.Triangle3 {
	return render.Triangle3{
		t.s.vertices[t.Vertices[0]].V,
		t.s.vertices[t.Vertices[1]].V,
		t.s.vertices[t.Vertices[2]].V,
	}
}

func (t *meshTriangle) isPoint() bool {
	return t.N == (r3.Vec{}) // uninitialized fields.
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// closestOnTriangle returns the point of triangle t closest to p and the
// feature (vertex, edge or face interior) it lies on. Voronoi regions are
// tested in turn as in Ericson, Real-Time Collision Detection 5.1.5.
func closestOnTriangle(p r3.Vec, t render.Triangle3) (r3.Vec, triangleFeature) {
	a, b, c := t[0], t[1], t[2]
	ab, ac, ap := r3.Sub(b, a), r3.Sub(c, a), r3.Sub(p, a)
	d1, d2 := r3.Dot(ab, ap), r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a, featureV0
	}
	bp := r3.Sub(p, b)
	d3, d4 := r3.Dot(ab, bp), r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b, featureV1
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return r3.Add(a, r3.Scale(v, ab)), featureE0
	}
	cp := r3.Sub(p, c)
	d5, d6 := r3.Dot(ab, cp), r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c, featureV2
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return r3.Add(a, r3.Scale(w, ac)), featureE2
	}
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return r3.Add(b, r3.Scale(w, r3.Sub(c, b))), featureE1
	}
	denom := 1 / (va + vb + vc)
	v, w := vb*denom, vc*denom
	return r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac))), featureFace
}
