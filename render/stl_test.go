package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devdye/4DMeshTool/internal/d3"
	"github.com/devdye/4DMeshTool/internal/meshtest"
	"github.com/devdye/4DMeshTool/render"
)

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-6
	input := meshtest.Cube(2.5)
	var b bytes.Buffer
	err := render.WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+50*len(input) {
		t.Fatalf("binary STL size %d, want %d", b.Len(), 84+50*len(input))
	}
	output, err := render.ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	for i := range input {
		for j := range input[i] {
			if !d3.EqualWithin(input[i][j], output[i][j], tol) {
				t.Errorf("triangle %d vertex %d: got %v, want %v", i, j, output[i][j], input[i][j])
			}
		}
	}
}

func TestSTLCreateWriteRead(t *testing.T) {
	model := meshtest.Cube(1)
	path := filepath.Join(t.TempDir(), "box.stl")
	err := render.CreateSTL(path, model)
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	loaded, err := render.LoadSurface(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(model) {
		t.Fatalf("loaded %d triangles, want %d", len(loaded), len(model))
	}
}

func TestReadASCIISTL(t *testing.T) {
	const src = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 1 0 0
    endloop
  endfacet
endsolid tri
`
	model, err := render.ReadSTL(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(model) != 2 {
		t.Fatalf("got %d triangles, want 2", len(model))
	}
	if model[0][1].X != 1 || model[1][1].Y != 1 {
		t.Errorf("unexpected vertices %v", model)
	}
}

func TestReadSTLErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"short ascii":  "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid\n",
		"bad vertex":   "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 zero\nendloop\nendfacet\nendsolid\n",
		"no facets":    "solid x\nendsolid x\n",
		"binary trunc": string(make([]byte, 90)),
	}
	for name, src := range tests {
		if _, err := render.ReadSTL(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
