package render

import (
	"errors"
	"fmt"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"

	mesh4d "github.com/devdye/4DMeshTool"
)

// View configures the camera of a surface preview.
type View struct {
	// Width and Height of the output image in pixels.
	Width, Height int
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
}

// DefaultView is an isometric view of the surface scaled to the bi-unit cube.
var DefaultView = View{
	Width:  768,
	Height: 432,
	Up:     r3.Vec{Z: 1},
	Eye:    r3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Near:   1,
	Far:    10,
}

// SurfacePNG renders a shaded preview of model to a PNG file at path.
// The model is scaled to fit a bi-unit cube centered at the origin.
func SurfacePNG(path string, model []Triangle3, view View) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return fmt.Errorf("%w: preview size %dx%d", mesh4d.ErrInvalidParameter, view.Width, view.Height)
	}
	const (
		scale = 2  // supersampling, reduced with a bilinear filter.
		fovy  = 30 // vertical field of view in degrees
	)
	var (
		eye    = fauxV(view.Eye)
		center = fauxV(view.LookAt)
		up     = fauxV(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	triangles := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		triangles[i] = fauxgl.NewTriangleForPoints(fauxV(t[0]), fauxV(t[1]), fauxV(t[2]))
	}
	mesh := fauxgl.NewTriangleMesh(triangles)
	mesh.BiUnitCube()

	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)

	image := resize.Resize(uint(view.Width), uint(view.Height), context.Image(), resize.Bilinear)
	if err := fauxgl.SavePNG(path, image); err != nil {
		return fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	}
	return nil
}

func fauxV(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }
