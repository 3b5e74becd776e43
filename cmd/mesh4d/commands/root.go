// Package commands implements the mesh4d command line.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/helpers/tetmesh"
	"github.com/devdye/4DMeshTool/internal/config"
	"github.com/devdye/4DMeshTool/internal/logging"
	"github.com/devdye/4DMeshTool/render"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	logFile    string
	workers    int

	cfg     *config.Config
	logger  *zap.Logger
	cleanup func() error
}

// Execute runs the mesh4d command with the process arguments.
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{logger: zap.NewNop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if a.cleanup != nil {
		if cerr := a.cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mesh4d",
		Short: "Extrude closed 3D surfaces into 4D tetrahedral meshes",
		Long: `mesh4d tetrahedralizes a closed OBJ or STL surface and sweeps the
resulting 3D tetrahedral mesh along the W axis. The 4D mesh is written as
text records of 4 vertices with x y z w coordinates.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on the console")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "extrude_tetrahedrons_4d.log", "Debug log file (empty disables)")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "Number of worker goroutines (0 uses every CPU); output does not depend on it")

	root.AddCommand(a.extrudeCmd(), a.previewCmd(), a.statsCmd())
	return root
}

// setup loads the configuration, then environment overrides, then
// persistent flag overrides, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Logging.Verbose = a.verbose
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = a.logFile
	}
	if flags.Changed("workers") {
		cfg.Extrude.Workers = a.workers
	}
	a.cfg = cfg

	logger, cleanup, err := logging.New(logging.Options{
		Console: cmd.ErrOrStderr(),
		Verbose: cfg.Logging.Verbose,
		File:    cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	a.logger, a.cleanup = logger, cleanup
	return nil
}

// loadSurface reads the surface at path.
func (a *app) loadSurface(path string) ([]render.Triangle3, error) {
	model, err := render.LoadSurface(path)
	if err != nil {
		return nil, err
	}
	a.logger.Info("surface loaded", zap.String("path", path), zap.Int("triangles", len(model)))
	return model, nil
}

// tetrahedralize meshes the volume enclosed by model.
func (a *app) tetrahedralize(model []render.Triangle3) (mesh4d.Mesh3D, error) {
	p := a.cfg.TetmeshParams()
	p.Log = a.logger
	return tetmesh.Tetrahedralize(model, p)
}

// checkOutput fails if path is a directory, or an existing file and
// overwriting was not requested.
func checkOutput(path string, force bool) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	case info.IsDir():
		return fmt.Errorf("%w: output %s is a directory", mesh4d.ErrIO, path)
	case !force:
		return fmt.Errorf("%w: output %s already exists, use --force to overwrite", mesh4d.ErrIO, path)
	}
	return nil
}
