package render_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/internal/meshtest"
	"github.com/devdye/4DMeshTool/render"
)

func TestWriteTetrahedra4Format(t *testing.T) {
	m := mesh4d.Mesh4D{
		Nodes: []mesh4d.Node4{
			{X: 0, Y: 0, Z: 0, W: 0},
			{X: 1, Y: -0.5, Z: 2.25, W: 0},
			{X: 1.0 / 3, Y: 1e-7, Z: -3, W: 1},
			{X: 123456.789, Y: 0, Z: 0, W: -1.5},
		},
		Tetras: []mesh4d.Tetra{{0, 1, 2, 3}, {3, 2, 1, 0}},
	}
	want := `1:
0.000000 0.000000 0.000000 0.000000
1.000000 -0.500000 2.250000 0.000000
0.333333 0.000000 -3.000000 1.000000
123456.789000 0.000000 0.000000 -1.500000

2:
123456.789000 0.000000 0.000000 -1.500000
0.333333 0.000000 -3.000000 1.000000
1.000000 -0.500000 2.250000 0.000000
0.000000 0.000000 0.000000 0.000000

`
	var b bytes.Buffer
	require.NoError(t, render.WriteTetrahedra4(&b, m))
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTetrahedra4Deterministic(t *testing.T) {
	export := func() []byte {
		e := mesh4d.DefaultExtruder()
		e.Height = mesh4d.PlaneHeight(0.1, 0.2, 0.3, 0)
		m4, err := e.Extrude(meshtest.KuhnCube())
		require.NoError(t, err)
		var b bytes.Buffer
		require.NoError(t, render.WriteTetrahedra4(&b, m4))
		return b.Bytes()
	}
	first := export()
	require.Equal(t, first, export())
	// 2T + 3F records of 6 lines each.
	require.Equal(t, (2*6+3*18)*6, strings.Count(string(first), "\n"))
}

func TestCreateTetrahedra4(t *testing.T) {
	e := mesh4d.DefaultExtruder()
	m4, err := e.Extrude(meshtest.SingleTetra())
	require.NoError(t, err)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, render.CreateTetrahedra4(path, m4))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, render.WriteTetrahedra4(&want, m4))
	require.Equal(t, want.String(), string(got))
	require.True(t, strings.HasPrefix(string(got), "1:\n"))
	require.True(t, strings.Contains(string(got), "\n14:\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")

	err = render.CreateTetrahedra4(filepath.Join(dir, "missing", "out.txt"), m4)
	require.True(t, errors.Is(err, mesh4d.ErrIO))
}
