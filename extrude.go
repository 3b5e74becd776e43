package mesh4d

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDistance is the extrusion distance along W used when none is configured.
const DefaultDistance = 1.0

// Extruder sweeps a 3D tetrahedral mesh along the W axis into a 4D mesh.
// The zero value is not usable since Distance must be positive;
// see DefaultExtruder.
type Extruder struct {
	// Distance is the W separation between the base and top layers. Must be > 0.
	Distance float64
	// Height gives the base layer W coordinate of each node.
	// If nil ZeroHeight is used.
	Height HeightFunc
	// Workers is the number of goroutines used for face extraction and
	// prism decomposition. Values <= 1 run single threaded.
	Workers int
	// Log receives diagnostics. If nil diagnostics are discarded.
	Log *zap.Logger
}

// DefaultExtruder returns an Extruder with unit distance and zero height.
func DefaultExtruder() Extruder {
	return Extruder{
		Distance: DefaultDistance,
		Height:   ZeroHeight,
		Workers:  1,
	}
}

func (e *Extruder) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Extruder) height() HeightFunc {
	if e.Height == nil {
		return ZeroHeight
	}
	return e.Height
}

// Extrude builds the 4D mesh of m: the base and top layers of nodes, the
// tetrahedra of m on both layers and three connecting tetrahedra per unique
// face of m. It does not modify m. On error no partial mesh is returned.
func (e *Extruder) Extrude(m Mesh3D) (Mesh4D, error) {
	log := e.logger()
	log.Info("starting 4D extrusion", zap.Float64("distance", e.Distance),
		zap.Int("nodes", len(m.Nodes)), zap.Int("tetrahedra", len(m.Tetras)))
	nodes, err := e.LiftNodes(m.Nodes)
	if err != nil {
		return Mesh4D{}, err
	}
	faces, err := e.UniqueFaces(m)
	if err != nil {
		return Mesh4D{}, err
	}
	connecting, err := e.ConnectingTetras(faces, len(m.Nodes))
	if err != nil {
		return Mesh4D{}, err
	}
	out, err := e.Assemble(m, nodes, connecting)
	if err != nil {
		return Mesh4D{}, err
	}
	log.Info("4D extrusion complete", zap.Int("nodes", len(out.Nodes)), zap.Int("tetrahedra", len(out.Tetras)))
	return out, nil
}

// LiftNodes returns the base layer (x, y, z, w(x,y,z)) followed by the top
// layer (x, y, z, w(x,y,z)+Distance). Node i of the top layer is at index
// i+len(nodes).
func (e *Extruder) LiftNodes(nodes []r3.Vec) ([]Node4, error) {
	d := e.Distance
	if !(d > 0) || !isFinite(d) {
		return nil, paramErrorf("extrusion distance must be positive and finite, got %g", d)
	}
	w := e.height()
	n := len(nodes)
	out := make([]Node4, 2*n)
	for i, p := range nodes {
		base := w(p.X, p.Y, p.Z)
		top := base + d
		if !isFinite(base) || !isFinite(top) {
			return nil, paramErrorf("height function gave non-finite value %g for node %d at %v", base, i, p)
		}
		out[i] = Node4{X: p.X, Y: p.Y, Z: p.Z, W: base}
		out[i+n] = Node4{X: p.X, Y: p.Y, Z: p.Z, W: top}
	}
	e.logger().Debug("lifted nodes", zap.Int("nodes", len(out)))
	return out, nil
}

// Assemble merges the tetrahedra of m, the tetrahedra of m shifted to the
// top layer and the connecting tetrahedra, in that order.
func (e *Extruder) Assemble(m Mesh3D, nodes []Node4, connecting []Tetra) (Mesh4D, error) {
	n := len(m.Nodes)
	if len(nodes) != 2*n {
		return Mesh4D{}, fmt.Errorf("%w: got %d lifted nodes for %d base nodes", ErrInvalidMesh, len(nodes), n)
	}
	if len(connecting)%3 != 0 {
		return Mesh4D{}, fmt.Errorf("%w: %d connecting tetrahedra is not a multiple of 3", ErrInvalidMesh, len(connecting))
	}
	T, F := len(m.Tetras), len(connecting)/3
	tetras := make([]Tetra, 0, 2*T+3*F)
	tetras = append(tetras, m.Tetras...)
	for _, t := range m.Tetras {
		tetras = append(tetras, t.Shift(n))
	}
	tetras = append(tetras, connecting...)
	if len(tetras) != 2*T+3*F {
		panic(fmt.Sprintf("bug: assembled %d tetrahedra, want 2*%d+3*%d", len(tetras), T, F))
	}
	e.logger().Debug("assembled mesh", zap.Int("base", T), zap.Int("top", T), zap.Int("connecting", 3*F))
	return Mesh4D{Nodes: nodes, Tetras: tetras}, nil
}
