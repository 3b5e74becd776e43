package tetmesh

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
)

type snode struct {
	// position of node
	pos r3.Vec
	// connectivity contains unique incident node indices.
	connectivity []int
}

type smesh struct {
	nodes   []snode
	workers int
	// h is the finite difference step of the SDF gradient.
	h float64
}

func newSmesh(nodes []r3.Vec, tetras []mesh4d.Tetra, h float64, workers int) *smesh {
	snodes := make([]snode, len(nodes))
	for i := range nodes {
		snodes[i].pos = nodes[i]
	}
	for _, tetra := range tetras {
		for i, n := range tetra {
			for j, c := range tetra {
				if i != j {
					snodes[n].connectivity = append(snodes[n].connectivity, c)
				}
			}
		}
	}
	for i := range snodes {
		conn := snodes[i].connectivity
		sort.Ints(conn)
		uniq := conn[:0]
		for k, c := range conn {
			if k == 0 || c != conn[k-1] {
				uniq = append(uniq, c)
			}
		}
		snodes[i].connectivity = uniq
	}
	return &smesh{nodes: snodes, h: h, workers: workers}
}

func (sm *smesh) positions() []r3.Vec {
	pos := make([]r3.Vec, len(sm.nodes))
	for i := range sm.nodes {
		pos[i] = sm.nodes[i].pos
	}
	return pos
}

// compressAndSmooth moves nodes outside the surface a fraction compress of
// their distance towards it, then applies laplacian smoothing to the rest.
func (sm *smesh) compressAndSmooth(compress float64, s SDF3) {
	if compress > 1 || compress < 0 {
		panic("compress must be positive and less equal to 1")
	}
	dist := evaluateAll(s, sm.positions(), sm.workers)
	for i, d := range dist {
		if d <= 0 {
			continue
		}
		grad := gradient(sm.nodes[i].pos, sm.h, s.Evaluate)
		norm := r3.Norm(grad)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			continue // no descent direction, leave node in place.
		}
		step := r3.Scale(compress*d/norm, grad)
		sm.nodes[i].pos = r3.Sub(sm.nodes[i].pos, step)
	}
	for i, d := range dist {
		nod := &sm.nodes[i]
		if d > 0 || len(nod.connectivity) == 0 {
			continue // don't smooth boundary nodes.
		}
		var sum r3.Vec
		for _, conn := range nod.connectivity {
			sum = r3.Add(sum, sm.nodes[conn].pos)
		}
		nod.pos = r3.Scale(1/float64(len(nod.connectivity)), sum)
	}
}

// gradient is the central difference gradient of f at p.
func gradient(p r3.Vec, h float64, f func(r3.Vec) float64) r3.Vec {
	return r3.Vec{
		X: f(r3.Add(p, r3.Vec{X: h})) - f(r3.Sub(p, r3.Vec{X: h})),
		Y: f(r3.Add(p, r3.Vec{Y: h})) - f(r3.Sub(p, r3.Vec{Y: h})),
		Z: f(r3.Add(p, r3.Vec{Z: h})) - f(r3.Sub(p, r3.Vec{Z: h})),
	}
}

// evaluateAll evaluates s at every point, splitting the work between workers.
func evaluateAll(s SDF3, pts []r3.Vec, workers int) []float64 {
	dist := make([]float64, len(pts))
	if workers < 1 {
		workers = 1
	}
	chunk := (len(pts) + workers - 1) / workers
	if workers == 1 || chunk < minChunk {
		for i, p := range pts {
			dist[i] = s.Evaluate(p)
		}
		return dist
	}
	var g errgroup.Group
	for lo := 0; lo < len(pts); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(pts))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				dist[i] = s.Evaluate(pts[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return dist
}

// minChunk is the least number of SDF evaluations worth a goroutine.
const minChunk = 256
