package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxInclude(t *testing.T) {
	b := EmptyBox()
	for _, v := range []r3.Vec{{X: 1, Y: -2, Z: 0.5}, {X: -1, Y: 3, Z: 0}, {Z: 4}} {
		b = b.Include(v)
	}
	want := Box{Min: r3.Vec{X: -1, Y: -2}, Max: r3.Vec{X: 1, Y: 3, Z: 4}}
	if b != want {
		t.Fatalf("got %v, want %v", b, want)
	}
	if b.MaxDim() != 5 {
		t.Errorf("max dimension %g, want 5", b.MaxDim())
	}
}

func TestBoxVertices(t *testing.T) {
	b := Box{Max: r3.Vec{X: 1, Y: 2, Z: 3}}
	v := b.Vertices()
	for i, p := range v {
		top := i >= 4
		if (p.Z == 3) != top {
			t.Errorf("vertex %d %v on wrong face", i, p)
		}
	}
	if v[0] != b.Min || v[6] != b.Max {
		t.Errorf("diagonal corners %v %v", v[0], v[6])
	}
	if v[2] != (r3.Vec{X: 1, Y: 2}) || v[7] != (r3.Vec{Y: 2, Z: 3}) {
		t.Errorf("unexpected corner order %v", v)
	}
}
