package tetmesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/internal/d3"
	"github.com/devdye/4DMeshTool/render"
)

// SDF3 is a 3D signed distance function. Evaluate is negative for points
// inside the solid and Bounds completely contains the solid.
type SDF3 interface {
	Evaluate(p r3.Vec) float64
	Bounds() r3.Box
}

// ImportModel instantiates an SDF3 from a set of triangles defining
// a closed manifold surface with outward facing normals, such as the
// contents of an STL or OBJ file. Vertices closer than vertexTol are
// welded together. vertexTol should be of the order of 1/1000th of the
// size of the smallest triangle in the model. If set to 0 then it is
// inferred automatically.
func ImportModel(model []render.Triangle3, vertexTolOrZero float64) (*SurfaceSDF, error) {
	if len(model) == 0 {
		return nil, fmt.Errorf("%w: surface has no triangles", mesh4d.ErrInvalidMesh)
	}
	s, err := newSurface(model, vertexTolOrZero)
	if err != nil {
		return nil, err
	}
	return &SurfaceSDF{tree: kdtree.New(s, true), s: s}, nil
}

// SurfaceSDF is the signed distance to an imported triangle surface.
// It is safe for concurrent use.
type SurfaceSDF struct {
	tree *kdtree.Tree
	s    *surface
}

// Evaluate returns the signed distance from q to the nearest surface triangle.
func (sdf *SurfaceSDF) Evaluate(q r3.Vec) float64 {
	c, dist2 := sdf.tree.Nearest(&meshTriangle{C: q, slack: sdf.s.maxRadius})
	tri := c.(*meshTriangle)
	closest, feat := closestOnTriangle(q, tri.triangle())
	return tri.signedDistance(q, closest, feat, math.Sqrt(dist2))
}

// Bounds returns the bounding box of the surface.
func (sdf *SurfaceSDF) Bounds() r3.Box {
	return r3.Box(sdf.s.bb)
}

type surface struct {
	// bb is the bounding box of the whole mesh.
	bb        d3.Box
	vertices  []pseudoVertex
	triangles []meshTriangle
	// access to edge pseudo normals using vertex index.
	// Stored with lower index first.
	pseudoEdgeN map[[2]int]r3.Vec
	// maxRadius is the largest centroid to vertex distance of any triangle.
	maxRadius float64
}

type pseudoVertex struct {
	V r3.Vec
	// N is the weighted pseudo normal where the weights
	// are the opening angle formed by edges for the triangle.
	N r3.Vec // Vertex Normal
}

func newSurface(triangles []render.Triangle3, tol float64) (*surface, error) {
	bb := d3.EmptyBox()
	minDist2 := math.MaxFloat64
	maxDist2 := -math.MaxFloat64
	for i, tri := range triangles {
		for j, vert := range tri {
			if !d3.Finite(vert) {
				return nil, fmt.Errorf("%w: triangle %d has non-finite vertex", mesh4d.ErrInvalidMesh, i)
			}
			bb = bb.Include(vert)
			side2 := r3.Norm2(r3.Sub(tri[(j+1)%3], vert))
			minDist2 = math.Min(minDist2, side2)
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	if minDist2 == 0 {
		return nil, fmt.Errorf("%w: surface contains degenerate triangles", mesh4d.ErrInvalidMesh)
	}
	suggested := math.Sqrt(minDist2) / 256
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, fmt.Errorf("%w: vertex tolerance is too large to generate appropiate mesh, suggested tolerance: %g", mesh4d.ErrInvalidParameter, suggested)
	}
	if tol <= 0 {
		tol = suggested
	}
	div := bb.MaxDim() / tol
	if div > math.MaxInt64/2 {
		return nil, errors.New("tolerance too small. overflowed int64")
	}
	s := &surface{
		bb:          bb,
		triangles:   make([]meshTriangle, len(triangles)),
		pseudoEdgeN: make(map[[2]int]r3.Vec),
	}
	// vertex index cache keyed by position in tolerance units.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for i, tri := range triangles {
		norm := tri.Normal()
		if !d3.Finite(norm) {
			return nil, fmt.Errorf("%w: triangle %d has zero area", mesh4d.ErrInvalidMesh, i)
		}
		mt := meshTriangle{
			N: r3.Scale(2*math.Pi, norm),
			C: tri.Centroid(),
			s: s,
		}
		for j, vert := range tri {
			v := r3.Scale(ri, vert)
			vi := [3]int64{int64(math.Round(v.X)), int64(math.Round(v.Y)), int64(math.Round(v.Z))}
			vertexIdx, ok := cache[vi]
			if !ok {
				vertexIdx = len(s.vertices)
				cache[vi] = vertexIdx
				s.vertices = append(s.vertices, pseudoVertex{V: vert})
			}
			// Accumulate the angle weighted vertex pseudo normal.
			s1, s2 := r3.Sub(vert, tri[(j+1)%3]), r3.Sub(vert, tri[(j+2)%3])
			alpha := math.Acos(math.Max(-1, math.Min(1, r3.Cos(s1, s2))))
			s.vertices[vertexIdx].N = r3.Add(s.vertices[vertexIdx].N, r3.Scale(alpha, norm))
			mt.Vertices[j] = vertexIdx
			s.maxRadius = math.Max(s.maxRadius, r3.Norm(r3.Sub(vert, mt.C)))
		}
		s.triangles[i] = mt
		for j := range mt.Vertices {
			edge := edgeKey(mt.Vertices[j], mt.Vertices[(j+1)%3])
			s.pseudoEdgeN[edge] = r3.Add(s.pseudoEdgeN[edge], r3.Scale(math.Pi, norm))
		}
	}
	return s, nil
}

// Index returns the ith element of the list of points.
func (s *surface) Index(i int) kdtree.Comparable { return &s.triangles[i] }

// Len returns the length of the list.
func (s *surface) Len() int { return len(s.triangles) }

// Pivot partitions the list based on the dimension specified.
func (s *surface) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), triangles: s.triangles}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (s *surface) Slice(start, end int) kdtree.Interface {
	sub := *s
	sub.triangles = sub.triangles[start:end]
	return &sub
}

// Bounds implements the kdtree.Bounder interface and expects
// a calculation based on current triangles which may be modified
// by kdtree.New()
func (s *surface) Bounds() *kdtree.Bounding {
	min := meshTriangle{C: d3.Elem(math.MaxFloat64)}
	max := meshTriangle{C: d3.Elem(-math.MaxFloat64)}
	for _, t := range s.triangles {
		min.C = d3.MinElem(min.C, t.C)
		max.C = d3.MaxElem(max.C, t.C)
	}
	return &kdtree.Bounding{
		Min: &min,
		Max: &max,
	}
}

type kdPlane struct {
	dim       int
	triangles []meshTriangle
}

func (p kdPlane) Less(i, j int) bool {
	ti := &p.triangles[i]
	tj := &p.triangles[j]
	return ti.Compare(tj, kdtree.Dim(p.dim)) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p kdPlane) Len() int {
	return len(p.triangles)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
