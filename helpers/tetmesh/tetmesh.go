// Package tetmesh generates volumetric tetrahedron meshes of closed
// triangle surfaces. The surface is imported as a signed distance field,
// filled with a body centered cubic lattice and the lattice boundary is
// pulled onto the surface.
package tetmesh

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/internal/d3"
	"github.com/devdye/4DMeshTool/render"
)

// DefaultSmoothingPasses is the number of compression and smoothing
// iterations applied by UniformTetrahedronMesh.
const DefaultSmoothingPasses = 6

// Params configures Tetrahedralize.
type Params struct {
	// Resolution is the lattice cell size. If zero it is inferred as
	// the largest dimension of the surface bounds divided by 16.
	Resolution float64
	// VertexTol is the weld tolerance passed to ImportModel.
	VertexTol float64
	// SmoothingPasses is the number of boundary compression passes.
	// The last pass places boundary nodes on the surface.
	SmoothingPasses int
	// Workers is the number of goroutines evaluating the distance field.
	Workers int
	Log     *zap.Logger
}

// DefaultParams returns the parameters used by the mesh4d command.
func DefaultParams() Params {
	return Params{SmoothingPasses: DefaultSmoothingPasses, Workers: 1}
}

type meshErr struct {
	panicObj interface{}
	stack    string
}

func (e *meshErr) Error() string {
	return fmt.Sprintf("tetmesh: %v", e.panicObj)
}

// Stack returns the goroutine stack captured when the mesher panicked.
func (e *meshErr) Stack() string { return e.stack }

// recoverMeshErr turns a panic in the mesher into a *meshErr stored in err.
// It must be deferred directly.
func recoverMeshErr(log *zap.Logger, err *error) {
	if a := recover(); a != nil {
		e := &meshErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
		log.Error("mesher panicked", zap.Any("panic", a), zap.String("stack", e.Stack()))
		*err = e
	}
}

// Tetrahedralize meshes the volume enclosed by model.
func Tetrahedralize(model []render.Triangle3, p Params) (m mesh4d.Mesh3D, err error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	defer recoverMeshErr(log, &err)
	s, err := ImportModel(model, p.VertexTol)
	if err != nil {
		return mesh4d.Mesh3D{}, err
	}
	if p.Resolution == 0 {
		p.Resolution = d3.Box(s.Bounds()).MaxDim() / 16
	}
	log.Debug("surface imported",
		zap.Int("triangles", len(model)),
		zap.Int("vertices", len(s.s.vertices)),
		zap.Float64("resolution", p.Resolution))
	m, err = meshSDF(s, p)
	if err != nil {
		return mesh4d.Mesh3D{}, err
	}
	log.Info("volume meshed", zap.Int("nodes", len(m.Nodes)), zap.Int("tetrahedra", len(m.Tetras)))
	return m, nil
}

// UniformTetrahedronMesh assembles a volumetric tetrahedron mesh that tries its
// very best to encapsulate the sdf model. For best results mesh smooth parts.
func UniformTetrahedronMesh(resolution float64, s SDF3) (mesh4d.Mesh3D, error) {
	p := DefaultParams()
	p.Resolution = resolution
	return meshSDF(s, p)
}

func meshSDF(s SDF3, p Params) (mesh4d.Mesh3D, error) {
	bcc, err := newBCCLattice(s.Bounds(), p.Resolution)
	if err != nil {
		return mesh4d.Mesh3D{}, err
	}
	nodes := bcc.nodes()
	dist := evaluateAll(s, nodes, p.Workers)
	var tetras []mesh4d.Tetra
	for _, tetra := range bcc.tetras() {
		if dist[tetra[0]] < 0 || dist[tetra[1]] < 0 || dist[tetra[2]] < 0 || dist[tetra[3]] < 0 {
			tetras = append(tetras, tetra)
		}
	}
	if len(tetras) == 0 {
		return mesh4d.Mesh3D{}, fmt.Errorf("%w: no lattice node inside surface at resolution %g", mesh4d.ErrInvalidParameter, p.Resolution)
	}
	nodes, tetras = compact(nodes, tetras)
	sm := newSmesh(nodes, tetras, p.Resolution*1e-3, p.Workers)
	for iter := 1; iter <= p.SmoothingPasses; iter++ {
		sm.compressAndSmooth(float64(iter)/float64(p.SmoothingPasses), s)
	}
	m := mesh4d.Mesh3D{Nodes: sm.positions(), Tetras: tetras}
	if err := m.Validate(); err != nil {
		panic(err) // lattice indices are always in range and distinct.
	}
	return m, nil
}

// Volumes returns the signed volume of every tetrahedron of m.
func Volumes(m mesh4d.Mesh3D) []float64 {
	vols := make([]float64, len(m.Tetras))
	for i, t := range m.Tetras {
		a := m.Nodes[t[0]]
		ab := r3.Sub(m.Nodes[t[1]], a)
		ac := r3.Sub(m.Nodes[t[2]], a)
		ad := r3.Sub(m.Nodes[t[3]], a)
		vols[i] = r3.Dot(ab, r3.Cross(ac, ad)) / 6
	}
	return vols
}
