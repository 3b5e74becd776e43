package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devdye/4DMeshTool/internal/config"
	"github.com/devdye/4DMeshTool/render"
)

func (a *app) extrudeCmd() *cobra.Command {
	var (
		distance   float64
		height     string
		plane      []float64
		resolution float64
		force      bool
		surfaceOut string
	)
	cmd := &cobra.Command{
		Use:   "extrude <input.obj|input.stl> <output.txt>",
		Short: "Extrude a closed surface into a 4D tetrahedral mesh",
		Long: `Extrude tetrahedralizes the volume enclosed by the input surface and
sweeps it along W. Each base node (x,y,z) is lifted to w = h(x,y,z) and
copied to w + distance. Base and top layers are joined by 3 tetrahedra
per unique triangular face.

The output is identical for every --workers value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("distance") {
				cfg.Extrude.Distance = distance
			}
			if flags.Changed("height") {
				cfg.Extrude.Height = height
			}
			if flags.Changed("plane") {
				cfg.Extrude.Plane = plane
				if !flags.Changed("height") {
					cfg.Extrude.Height = config.HeightPlane
				}
			}
			if flags.Changed("resolution") {
				cfg.Mesh.Resolution = resolution
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := checkOutput(out, force); err != nil {
				return err
			}

			model, err := a.loadSurface(in)
			if err != nil {
				return err
			}
			if surfaceOut != "" {
				if err := render.CreateSTL(surfaceOut, model); err != nil {
					return err
				}
				a.logger.Debug("surface written", zap.String("path", surfaceOut))
			}
			m3, err := a.tetrahedralize(model)
			if err != nil {
				return err
			}
			e := cfg.Extruder()
			e.Log = a.logger
			m4, err := e.Extrude(m3)
			if err != nil {
				return err
			}
			if err := render.CreateTetrahedra4(out, m4); err != nil {
				return err
			}
			a.logger.Info("4D mesh written",
				zap.String("path", out),
				zap.Int("nodes", len(m4.Nodes)),
				zap.Int("tetrahedra", len(m4.Tetras)))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&distance, "distance", "d", 1.0, "Extrusion distance along W")
	cmd.Flags().StringVar(&height, "height", config.HeightZero, "Base layer height function: zero or plane")
	cmd.Flags().Float64SliceVar(&plane, "plane", nil, "Plane coefficients a,b,c,d of w = a*x + b*y + c*z + d")
	cmd.Flags().Float64VarP(&resolution, "resolution", "r", 0, "Lattice cell size (0 infers from the surface size)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().StringVar(&surfaceOut, "surface-out", "", "Also write the input surface as binary STL")
	return cmd
}
