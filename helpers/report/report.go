// Package report summarizes 3D tetrahedral meshes and their 4D extrusions.
package report

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/helpers/tetmesh"
)

// Summary holds the element counts of an extrusion.
type Summary struct {
	Nodes3, Tetras3 int
	// Faces is the number of unique triangular faces of the 3D mesh.
	Faces int
	// BoundaryFaces is the number of faces belonging to a single tetrahedron.
	BoundaryFaces  int
	Nodes4, Tetras4 int
	// Volume statistics of the 3D tetrahedra. Zero for an empty mesh.
	MinVolume, MaxVolume, TotalVolume float64
}

// Summarize counts the elements of m3 and of its extrusion m4.
func Summarize(m3 mesh4d.Mesh3D, m4 mesh4d.Mesh4D) Summary {
	count := make(map[mesh4d.Face]int, 2*len(m3.Tetras))
	for _, t := range m3.Tetras {
		for _, f := range mesh4d.TetraFaces(t) {
			count[f]++
		}
	}
	s := Summary{
		Nodes3:  len(m3.Nodes),
		Tetras3: len(m3.Tetras),
		Faces:   len(count),
		Nodes4:  len(m4.Nodes),
		Tetras4: len(m4.Tetras),
	}
	for _, n := range count {
		if n == 1 {
			s.BoundaryFaces++
		}
	}
	if vols := tetmesh.Volumes(m3); len(vols) > 0 {
		s.MinVolume = floats.Min(vols)
		s.MaxVolume = floats.Max(vols)
		s.TotalVolume = floats.Sum(vols)
	}
	return s
}

// Check verifies the extrusion counts 2N nodes and 2T+3F tetrahedra.
func (s Summary) Check() error {
	var errs []error
	if s.Nodes4 != 2*s.Nodes3 {
		errs = append(errs, fmt.Errorf("4D mesh has %d nodes, want 2N=%d", s.Nodes4, 2*s.Nodes3))
	}
	if want := 2*s.Tetras3 + 3*s.Faces; s.Tetras4 != want {
		errs = append(errs, fmt.Errorf("4D mesh has %d tetrahedra, want 2T+3F=%d", s.Tetras4, want))
	}
	return errors.Join(errs...)
}

// WriteTo writes a human readable table of s to w.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "3D nodes (N)\t%d\n", s.Nodes3)
	fmt.Fprintf(tw, "3D tetrahedra (T)\t%d\n", s.Tetras3)
	fmt.Fprintf(tw, "unique faces (F)\t%d\n", s.Faces)
	fmt.Fprintf(tw, "boundary faces\t%d\n", s.BoundaryFaces)
	fmt.Fprintf(tw, "4D nodes (2N)\t%d\n", s.Nodes4)
	fmt.Fprintf(tw, "4D tetrahedra (2T+3F)\t%d\n", s.Tetras4)
	fmt.Fprintf(tw, "volume min/max/total\t%g / %g / %g\n", s.MinVolume, s.MaxVolume, s.TotalVolume)
	err := tw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// VolumeHistogram saves a histogram of volumes with the given number of bins
// to path. The image format is chosen by the path extension (png, svg, pdf...).
func VolumeHistogram(path string, volumes []float64, bins int) error {
	if len(volumes) == 0 {
		return fmt.Errorf("%w: no volumes to plot", mesh4d.ErrInvalidParameter)
	}
	if bins < 1 {
		return fmt.Errorf("%w: histogram needs at least one bin, got %d", mesh4d.ErrInvalidParameter, bins)
	}
	p := plot.New()
	p.Title.Text = "Tetrahedron volumes"
	p.X.Label.Text = "volume"
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(plotter.Values(volumes), bins)
	if err != nil {
		return fmt.Errorf("%w: %v", mesh4d.ErrInvalidParameter, err)
	}
	p.Add(h)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	}
	return nil
}
