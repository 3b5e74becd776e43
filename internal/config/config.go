// Package config loads the mesh4d command configuration from YAML.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	mesh4d "github.com/devdye/4DMeshTool"
	"github.com/devdye/4DMeshTool/helpers/tetmesh"
)

// Height function names accepted in ExtrudeConfig.Height.
const (
	HeightZero  = "zero"
	HeightPlane = "plane"
)

// Config holds all mesh4d configuration.
type Config struct {
	Extrude ExtrudeConfig `yaml:"extrude"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExtrudeConfig configures the 4D extrusion.
type ExtrudeConfig struct {
	Distance float64 `yaml:"distance"`
	Height   string  `yaml:"height"` // zero, plane
	// Plane holds a, b, c, d of w = a*x + b*y + c*z + d.
	Plane []float64 `yaml:"plane"`
	// Workers is the number of goroutines. Zero uses every CPU.
	Workers int `yaml:"workers"`
}

// MeshConfig configures the tetrahedralization of surface inputs.
type MeshConfig struct {
	Resolution      float64 `yaml:"resolution"` // zero infers from the surface size
	VertexTol       float64 `yaml:"vertex_tol"`
	SmoothingPasses int     `yaml:"smoothing_passes"`
}

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"` // empty disables the log file
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extrude: ExtrudeConfig{
			Distance: mesh4d.DefaultDistance,
			Height:   HeightZero,
			Plane:    []float64{0, 0, 0, 0},
		},
		Mesh: MeshConfig{
			SmoothingPasses: tetmesh.DefaultSmoothingPasses,
		},
		Logging: LoggingConfig{
			File: "extrude_tetrahedrons_4d.log",
		},
	}
}

// Load loads configuration from a YAML file. An empty path or a missing
// file yields the defaults. Environment overrides are applied in every case.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path, ok := os.LookupEnv("MESH4D_LOG_FILE"); ok {
		c.Logging.File = path
	}
	if n, err := strconv.Atoi(os.Getenv("MESH4D_WORKERS")); err == nil {
		c.Extrude.Workers = n
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if !(c.Extrude.Distance > 0) || math.IsInf(c.Extrude.Distance, 0) {
		return fmt.Errorf("%w: extrusion distance must be positive and finite, got %g", mesh4d.ErrInvalidParameter, c.Extrude.Distance)
	}
	switch c.Extrude.Height {
	case HeightZero:
	case HeightPlane:
		if len(c.Extrude.Plane) != 4 {
			return fmt.Errorf("%w: plane needs 4 coefficients a,b,c,d, got %d", mesh4d.ErrInvalidParameter, len(c.Extrude.Plane))
		}
		for _, v := range c.Extrude.Plane {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: plane coefficients must be finite", mesh4d.ErrInvalidParameter)
			}
		}
	default:
		return fmt.Errorf("%w: invalid height function %q (valid: %s, %s)", mesh4d.ErrInvalidParameter, c.Extrude.Height, HeightZero, HeightPlane)
	}
	if c.Extrude.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", mesh4d.ErrInvalidParameter, c.Extrude.Workers)
	}
	if !(c.Mesh.Resolution >= 0) || math.IsInf(c.Mesh.Resolution, 0) {
		return fmt.Errorf("%w: resolution must be zero or positive, got %g", mesh4d.ErrInvalidParameter, c.Mesh.Resolution)
	}
	if !(c.Mesh.VertexTol >= 0) {
		return fmt.Errorf("%w: vertex tolerance must be zero or positive, got %g", mesh4d.ErrInvalidParameter, c.Mesh.VertexTol)
	}
	if c.Mesh.SmoothingPasses < 0 {
		return fmt.Errorf("%w: negative smoothing passes %d", mesh4d.ErrInvalidParameter, c.Mesh.SmoothingPasses)
	}
	return nil
}

// workers resolves a zero worker count to the number of CPUs.
func (c *Config) workers() int {
	if c.Extrude.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Extrude.Workers
}

// HeightFunc returns the configured height function.
// The configuration must have been validated.
func (c *Config) HeightFunc() mesh4d.HeightFunc {
	if c.Extrude.Height == HeightPlane {
		p := c.Extrude.Plane
		return mesh4d.PlaneHeight(p[0], p[1], p[2], p[3])
	}
	return mesh4d.ZeroHeight
}

// Extruder returns an extruder configured by c.
func (c *Config) Extruder() mesh4d.Extruder {
	return mesh4d.Extruder{
		Distance: c.Extrude.Distance,
		Height:   c.HeightFunc(),
		Workers:  c.workers(),
	}
}

// TetmeshParams returns the tetrahedralization parameters configured by c.
func (c *Config) TetmeshParams() tetmesh.Params {
	return tetmesh.Params{
		Resolution:      c.Mesh.Resolution,
		VertexTol:       c.Mesh.VertexTol,
		SmoothingPasses: c.Mesh.SmoothingPasses,
		Workers:         c.workers(),
	}
}
