package tetmesh_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/helpers/tetmesh"
	"github.com/devdye/4DMeshTool/internal/meshtest"
	"github.com/devdye/4DMeshTool/render"
)

// cubeDistance is the exact signed distance to a cube of side 2 centered at the origin.
func cubeDistance(p r3.Vec) float64 {
	q := r3.Vec{X: math.Abs(p.X) - 1, Y: math.Abs(p.Y) - 1, Z: math.Abs(p.Z) - 1}
	outside := r3.Norm(r3.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0), Z: math.Max(q.Z, 0)})
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

func TestImportModelCube(t *testing.T) {
	sdf, err := tetmesh.ImportModel(meshtest.Cube(2), 0)
	require.NoError(t, err)
	require.Equal(t, r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}, sdf.Bounds())

	fixed := []r3.Vec{
		{},
		{X: 2},
		{Z: 1.5},
		{X: 2, Y: 2, Z: 2},
		{X: 0.5, Y: 0.2, Z: -0.3},
		{X: -0.9, Y: 0.95, Z: 0.1},
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		fixed = append(fixed, r3.Vec{X: 6*rng.Float64() - 3, Y: 6*rng.Float64() - 3, Z: 6*rng.Float64() - 3})
	}
	for _, p := range fixed {
		require.InDelta(t, cubeDistance(p), sdf.Evaluate(p), 1e-9, "point %v", p)
	}
}

func TestImportModelErrors(t *testing.T) {
	_, err := tetmesh.ImportModel(nil, 0)
	require.ErrorIs(t, err, mesh4d.ErrInvalidMesh)

	model := meshtest.Cube(2)
	model[3][1].X = math.NaN()
	_, err = tetmesh.ImportModel(model, 0)
	require.ErrorIs(t, err, mesh4d.ErrInvalidMesh)

	degenerate := []render.Triangle3{{{}, {}, {X: 1}}}
	_, err = tetmesh.ImportModel(degenerate, 0)
	require.ErrorIs(t, err, mesh4d.ErrInvalidMesh)

	_, err = tetmesh.ImportModel(meshtest.Cube(2), 10)
	require.ErrorIs(t, err, mesh4d.ErrInvalidParameter)
}

func TestUniformTetrahedronMesh(t *testing.T) {
	sdf, err := tetmesh.ImportModel(meshtest.Cube(2), 0)
	require.NoError(t, err)
	m, err := tetmesh.UniformTetrahedronMesh(0.25, sdf)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.NotEmpty(t, m.Tetras)

	referenced := make([]bool, len(m.Nodes))
	for _, tetra := range m.Tetras {
		for _, v := range tetra {
			referenced[v] = true
		}
	}
	for i, p := range m.Nodes {
		require.True(t, referenced[i], "node %d is not referenced", i)
		require.LessOrEqual(t, cubeDistance(p), 1e-3, "node %d at %v outside surface", i, p)
	}
	var total float64
	for _, v := range tetmesh.Volumes(m) {
		total += v
	}
	require.InEpsilon(t, 8, total, 0.25)
}

func TestTetrahedralize(t *testing.T) {
	p := tetmesh.DefaultParams()
	p.Log = zaptest.NewLogger(t)
	m, err := tetmesh.Tetrahedralize(meshtest.Cube(2), p)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.NotEmpty(t, m.Tetras)

	p.Workers = 4
	parallel, err := tetmesh.Tetrahedralize(meshtest.Cube(2), p)
	require.NoError(t, err)
	require.Equal(t, m, parallel)

	// The mesh feeds straight into the extruder.
	e := mesh4d.DefaultExtruder()
	_, err = e.Extrude(m)
	require.NoError(t, err)
}

func TestTetrahedralizeErrors(t *testing.T) {
	for _, res := range []float64{1, -1, math.NaN(), math.Inf(1)} {
		p := tetmesh.DefaultParams()
		p.Resolution = res
		_, err := tetmesh.Tetrahedralize(meshtest.Cube(2), p)
		require.ErrorIs(t, err, mesh4d.ErrInvalidParameter, "resolution %g", res)
	}
	_, err := tetmesh.Tetrahedralize(nil, tetmesh.DefaultParams())
	require.ErrorIs(t, err, mesh4d.ErrInvalidMesh)
}

func TestVolumes(t *testing.T) {
	vols := tetmesh.Volumes(meshtest.KuhnCube())
	require.Len(t, vols, 6)
	var total float64
	for _, v := range vols {
		require.InDelta(t, 1.0/6, math.Abs(v), 1e-12)
		total += math.Abs(v)
	}
	require.InDelta(t, 1, total, 1e-12)
	require.Equal(t, []float64{1.0 / 6}, tetmesh.Volumes(meshtest.SingleTetra()))
}
