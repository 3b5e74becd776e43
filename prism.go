package mesh4d

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PrismTetras returns the three tetrahedra filling the prism between face f
// on the base layer and its copy n indices above on the top layer:
//
//	(i, j, k, i+n)
//	(i, j, k, j+n)
//	(i, j, k, k+n)
//
// Every prism fans from its base triangle. Two prisms that share a
// quadrilateral side are split independently, so their diagonals on that
// side need not agree and the connecting layer may show cracks or overlaps.
func PrismTetras(f Face, n int) [3]Tetra {
	i, j, k := f[0], f[1], f[2]
	return [3]Tetra{
		{i, j, k, i + n},
		{i, j, k, j + n},
		{i, j, k, k + n},
	}
}

// ConnectingTetras decomposes the prism of every face into three tetrahedra.
// The result holds the tetrahedra of faces[i] at positions [3i, 3i+3).
// Faces must be canonical with indices in [0, n).
func (e *Extruder) ConnectingTetras(faces []Face, n int) ([]Tetra, error) {
	out := make([]Tetra, 3*len(faces))
	chunks := splitRange(len(faces), e.Workers)
	decompose := func(r span) error {
		for i := r.lo; i < r.hi; i++ {
			f := faces[i]
			if !f.canonical() || f[0] < 0 || f[2] >= n {
				return fmt.Errorf("%w: face %d %v is not canonical in [0, %d)", ErrInvalidMesh, i, f, n)
			}
			p := PrismTetras(f, n)
			copy(out[3*i:3*i+3], p[:])
		}
		return nil
	}
	if len(chunks) <= 1 {
		if err := decompose(chunks[0]); err != nil {
			return nil, err
		}
	} else {
		// Chunks write to disjoint ranges of out.
		var g errgroup.Group
		errs := make([]error, len(chunks))
		for i, c := range chunks {
			i, c := i, c
			g.Go(func() error {
				errs[i] = decompose(c)
				return errs[i]
			})
		}
		if g.Wait() != nil {
			for _, err := range errs {
				if err != nil {
					return nil, err
				}
			}
		}
	}
	e.logger().Debug("decomposed prisms", zap.Int("faces", len(faces)), zap.Int("tetrahedra", len(out)))
	return out, nil
}
