package mesh4d

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Face is a triangular face of a tetrahedron stored with its node
// indices in ascending order. Faces built with NewFace compare equal
// with == whenever they share the same three nodes.
type Face [3]int

// NewFace returns the canonical face for nodes a, b and c.
func NewFace(a, b, c int) Face {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return Face{a, b, c}
}

// Less reports whether f sorts before g in lexicographic order.
func (f Face) Less(g Face) bool {
	if f[0] != g[0] {
		return f[0] < g[0]
	}
	if f[1] != g[1] {
		return f[1] < g[1]
	}
	return f[2] < g[2]
}

// canonical reports whether f is strictly ascending.
func (f Face) canonical() bool { return f[0] < f[1] && f[1] < f[2] }

// TetraFaces returns the four canonical faces of tetrahedron t
// in the order {a,b,c}, {a,b,d}, {a,c,d}, {b,c,d}.
func TetraFaces(t Tetra) [4]Face {
	a, b, c, d := t[0], t[1], t[2], t[3]
	return [4]Face{
		NewFace(a, b, c),
		NewFace(a, b, d),
		NewFace(a, c, d),
		NewFace(b, c, d),
	}
}

// UniqueFaces validates the tetrahedra of m and returns each face of the
// mesh exactly once, sorted lexicographically. Faces shared by two
// tetrahedra appear once. When the Extruder has more than one worker the
// tetrahedra are split in chunks that are processed concurrently and
// merged once all chunks are done; the result is the same as a sequential run.
func (e *Extruder) UniqueFaces(m Mesh3D) ([]Face, error) {
	log := e.logger()
	chunks := splitRange(len(m.Tetras), e.Workers)
	sets := make([]map[Face]struct{}, len(chunks))
	errs := make([]error, len(chunks))
	if len(chunks) <= 1 {
		for i, c := range chunks {
			sets[i], errs[i] = collectFaces(m, c)
		}
	} else {
		var g errgroup.Group
		for i, c := range chunks {
			i, c := i, c
			g.Go(func() error {
				sets[i], errs[i] = collectFaces(m, c)
				return errs[i]
			})
		}
		_ = g.Wait()
	}
	// Report the failure of the lowest chunk so errors are reproducible.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := sets[0]
	if merged == nil {
		merged = make(map[Face]struct{})
	}
	for _, set := range sets[1:] {
		for f := range set {
			merged[f] = struct{}{}
		}
	}
	faces := make([]Face, 0, len(merged))
	for f := range merged {
		faces = append(faces, f)
	}
	sort.Slice(faces, func(i, j int) bool { return faces[i].Less(faces[j]) })
	log.Debug("extracted faces",
		zap.Int("tetrahedra", len(m.Tetras)),
		zap.Int("faces", 4*len(m.Tetras)),
		zap.Int("unique", len(faces)),
		zap.Int("chunks", len(chunks)),
	)
	return faces, nil
}

// collectFaces adds the faces of tetrahedra in r to a new set.
func collectFaces(m Mesh3D, r span) (map[Face]struct{}, error) {
	// Interior faces are shared, so about 2 unique faces per tetrahedron.
	set := make(map[Face]struct{}, 2*(r.hi-r.lo)+2)
	for i := r.lo; i < r.hi; i++ {
		t := m.Tetras[i]
		if err := t.validate(len(m.Nodes)); err != nil {
			return nil, &TetraError{Index: i, Tetra: t, Err: err}
		}
		for _, f := range TetraFaces(t) {
			set[f] = struct{}{}
		}
	}
	return set, nil
}

// span is a half open range [lo, hi) of element indices.
type span struct{ lo, hi int }

// splitRange splits [0, n) into at most workers contiguous spans.
// It always returns at least one span.
func splitRange(n, workers int) []span {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return []span{{0, n}}
	}
	spans := make([]span, workers)
	size, rem := n/workers, n%workers
	lo := 0
	for i := range spans {
		hi := lo + size
		if i < rem {
			hi++
		}
		spans[i] = span{lo, hi}
		lo = hi
	}
	if lo != n {
		panic(fmt.Sprintf("bug: split %d elements into spans ending at %d", n, lo))
	}
	return spans
}
