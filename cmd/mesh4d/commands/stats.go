package commands

import (
	"github.com/spf13/cobra"

	"github.com/devdye/4DMeshTool/helpers/report"
	"github.com/devdye/4DMeshTool/helpers/tetmesh"
)

func (a *app) statsCmd() *cobra.Command {
	var (
		resolution float64
		bins       int
	)
	cmd := &cobra.Command{
		Use:   "stats <input.obj|input.stl> [histogram.png]",
		Short: "Print element counts of a dry run extrusion",
		Long: `Stats tetrahedralizes and extrudes the input without writing the 4D mesh
and prints the element counts. If a histogram path is given the
tetrahedron volume distribution is plotted to it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("resolution") {
				cfg.Mesh.Resolution = resolution
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			model, err := a.loadSurface(args[0])
			if err != nil {
				return err
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
			s := report.Summarize(m3, m4)
			if _, err := s.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if err := s.Check(); err != nil {
				return err
			}
			if len(args) == 2 {
				return report.VolumeHistogram(args[1], tetmesh.Volumes(m3), bins)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&resolution, "resolution", "r", 0, "Lattice cell size (0 infers from the surface size)")
	cmd.Flags().IntVar(&bins, "bins", 30, "Number of histogram bins")
	return cmd
}
