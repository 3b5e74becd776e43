package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devdye/4DMeshTool/render"
)

func (a *app) previewCmd() *cobra.Command {
	var (
		width, height int
		force         bool
	)
	cmd := &cobra.Command{
		Use:   "preview <input.obj|input.stl> <output.png>",
		Short: "Render a shaded preview image of a surface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if err := checkOutput(out, force); err != nil {
				return err
			}
			model, err := a.loadSurface(in)
			if err != nil {
				return err
			}
			view := render.DefaultView
			view.Width, view.Height = width, height
			if err := render.SurfacePNG(out, model, view); err != nil {
				return err
			}
			a.logger.Info("preview written", zap.String("path", out))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", render.DefaultView.Width, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", render.DefaultView.Height, "Image height in pixels")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing output file")
	return cmd
}
