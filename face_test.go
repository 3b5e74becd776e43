package mesh4d

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFaceCanonical(t *testing.T) {
	perms := [][3]int{{3, 7, 9}, {3, 9, 7}, {7, 3, 9}, {7, 9, 3}, {9, 3, 7}, {9, 7, 3}}
	for _, p := range perms {
		f := NewFace(p[0], p[1], p[2])
		require.Equal(t, Face{3, 7, 9}, f, "permutation %v", p)
		require.True(t, f.canonical())
	}
}

func TestTetraFacesPairs(t *testing.T) {
	tetras := []Tetra{{0, 1, 2, 3}, {7, 2, 9, 4}, {3, 2, 1, 0}}
	for _, tet := range tetras {
		faces := TetraFaces(tet)
		require.Equal(t, faces, tet.Faces())
		for _, f := range faces {
			require.True(t, f.canonical(), "face %v of %v", f, tet)
		}
		// Every vertex pair of a tetrahedron is an edge of exactly 2 of its faces.
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				count := 0
				for _, f := range faces {
					if faceHas(f, tet[i]) && faceHas(f, tet[j]) {
						count++
					}
				}
				require.Equal(t, 2, count, "pair (%d,%d) of %v", tet[i], tet[j], tet)
			}
		}
	}
	// Faces follow the {a,b,c},{a,b,d},{a,c,d},{b,c,d} order of the tetra.
	reversed := TetraFaces(Tetra{3, 2, 1, 0})
	require.Equal(t, [4]Face{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}, reversed)
	sorted := reversed[:]
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	require.Equal(t, TetraFaces(Tetra{0, 1, 2, 3}), reversed)
}

func faceHas(f Face, v int) bool { return f[0] == v || f[1] == v || f[2] == v }

func TestFaceLess(t *testing.T) {
	require.True(t, Face{0, 1, 2}.Less(Face{0, 1, 3}))
	require.True(t, Face{0, 1, 9}.Less(Face{0, 2, 3}))
	require.True(t, Face{0, 8, 9}.Less(Face{1, 2, 3}))
	require.False(t, Face{1, 2, 3}.Less(Face{1, 2, 3}))
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		n, workers int
		want       []span
	}{
		{n: 0, workers: 4, want: []span{{0, 0}}},
		{n: 10, workers: 0, want: []span{{0, 10}}},
		{n: 3, workers: 8, want: []span{{0, 1}, {1, 2}, {2, 3}}},
		{n: 10, workers: 3, want: []span{{0, 4}, {4, 7}, {7, 10}}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, splitRange(tt.n, tt.workers), "n=%d workers=%d", tt.n, tt.workers)
	}
}

func TestConnectingTetrasRejectsBadFaces(t *testing.T) {
	e := DefaultExtruder()
	for _, f := range []Face{{2, 1, 3}, {0, 0, 1}, {0, 1, 4}, {-1, 0, 1}} {
		_, err := e.ConnectingTetras([]Face{f}, 4)
		require.ErrorIs(t, err, ErrInvalidMesh, "face %v", f)
	}
	got, err := e.ConnectingTetras([]Face{{1, 2, 3}}, 4)
	require.NoError(t, err)
	require.Equal(t, []Tetra{{1, 2, 3, 5}, {1, 2, 3, 6}, {1, 2, 3, 7}}, got)
}

func TestAssembleRejectsMismatchedNodes(t *testing.T) {
	e := DefaultExtruder()
	m := Mesh3D{Tetras: []Tetra{{0, 1, 2, 3}}}
	_, err := e.Assemble(m, make([]Node4, 3), nil)
	require.ErrorIs(t, err, ErrInvalidMesh)
}
