package render_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/render"
)

const quadOBJ = `# unit square split by the reader
o square
v 0 0 0
v 1 0 0
v 1 1 0 1.0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1 4/1/1
f -4 -2 -1
`

func TestReadOBJ(t *testing.T) {
	model, err := render.ReadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	// A quad fans into 2 triangles plus the relative indexed triangle.
	require.Len(t, model, 3)
	require.Equal(t, render.Triangle3{{}, {X: 1}, {X: 1, Y: 1}}, model[0])
	require.Equal(t, render.Triangle3{{}, {X: 1, Y: 1}, {Y: 1}}, model[1])
	require.Equal(t, render.Triangle3{{}, {X: 1, Y: 1}, {Y: 1}}, model[2])
	require.Equal(t, r3.Vec{Z: 1}, model[0].Normal())
}

func TestReadOBJErrors(t *testing.T) {
	tests := map[string]string{
		"no faces":      "v 0 0 0\nv 1 0 0\nv 0 1 0\n",
		"zero index":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"undefined":     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"short face":    "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"short vertex":  "v 0 0\n",
		"bad number":    "v 0 0 x\n",
		"bad reference": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n",
	}
	for name, src := range tests {
		_, err := render.ReadOBJ(strings.NewReader(src))
		require.Error(t, err, name)
	}
}

func TestLoadSurfaceErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := render.LoadSurface(filepath.Join(dir, "missing.obj"))
	require.ErrorIs(t, err, mesh4d.ErrIO)

	ply := filepath.Join(dir, "model.ply")
	require.NoError(t, os.WriteFile(ply, []byte("ply\n"), 0o644))
	_, err = render.LoadSurface(ply)
	require.ErrorIs(t, err, mesh4d.ErrIO)

	bad := filepath.Join(dir, "bad.OBJ")
	require.NoError(t, os.WriteFile(bad, []byte("v 0 0 0\n"), 0o644))
	_, err = render.LoadSurface(bad)
	require.True(t, errors.Is(err, mesh4d.ErrIO), "upper case extension is still parsed as OBJ: %v", err)

	good := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(good, []byte(quadOBJ), 0o644))
	model, err := render.LoadSurface(good)
	require.NoError(t, err)
	require.Len(t, model, 3)
}
