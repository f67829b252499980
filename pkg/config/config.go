// Package config provides configuration loading and management for the
// percolation analysis engine. It handles loading sweep configuration from
// YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/analysis"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
)

// Config represents the sweep configuration loaded from YAML
type Config struct {
	// Volume generation parameters
	Volume struct {
		// Sizes lists the cubic system sizes to sweep
		Sizes []int `yaml:"sizes"`

		// Type selects the percolation model: site, bond, or correlated
		Type string `yaml:"type"`

		// CorrelationLength is the box-filter half-width for the
		// correlated model
		CorrelationLength int `yaml:"correlationLength"`
	} `yaml:"volume"`

	// Sweep parameters over the control parameter
	Sweep struct {
		// PMin and PMax bound the occupation-probability range
		PMin float64 `yaml:"pMin"`
		PMax float64 `yaml:"pMax"`

		// PSteps is the number of evenly spaced values in [PMin, PMax]
		PSteps int `yaml:"pSteps"`

		// Replicates is the number of independent volumes per condition
		Replicates int `yaml:"replicates"`

		// Seed is the base random seed for reproducible sweeps
		Seed uint64 `yaml:"seed"`
	} `yaml:"sweep"`

	// Analysis parameters
	Analysis struct {
		// Connectivity is the pore neighborhood: 6 or 26
		Connectivity int `yaml:"connectivity"`

		// Axis is the transport direction: x, y, or z
		Axis string `yaml:"axis"`

		// Walkers is the random-walker count for diffusive tortuosity
		// (0 disables it)
		Walkers int `yaml:"walkers"`

		// Topology enables Betti/Euler estimation per volume
		Topology bool `yaml:"topology"`

		// Fractal enables box-counting dimension estimation per volume
		Fractal bool `yaml:"fractal"`
	} `yaml:"analysis"`

	// Output parameters
	Output struct {
		// NumCores bounds the worker pool
		NumCores int `yaml:"numCores"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default volume parameters
	cfg.Volume.Sizes = []int{16, 24, 32}
	cfg.Volume.Type = string(analysis.Site)
	cfg.Volume.CorrelationLength = 2

	// Set default sweep parameters around the site-percolation threshold
	cfg.Sweep.PMin = 0.20
	cfg.Sweep.PMax = 0.50
	cfg.Sweep.PSteps = 13
	cfg.Sweep.Replicates = 20
	cfg.Sweep.Seed = 42

	// Set default analysis parameters
	cfg.Analysis.Connectivity = int(connectivity.Face6)
	cfg.Analysis.Axis = "z"
	cfg.Analysis.Walkers = 0
	cfg.Analysis.Topology = true
	cfg.Analysis.Fractal = true

	// Set default output parameters
	cfg.Output.NumCores = runtime.NumCPU()
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Params converts the configuration into validated sweep parameters.
func (cfg *Config) Params() (*analysis.Params, error) {
	kind, err := analysis.ParseGeneratorKind(cfg.Volume.Type)
	if err != nil {
		return nil, err
	}

	var axis connectivity.Axis
	switch cfg.Analysis.Axis {
	case "x":
		axis = connectivity.X
	case "y":
		axis = connectivity.Y
	case "z", "":
		axis = connectivity.Z
	default:
		return nil, fmt.Errorf("%w: unknown axis %q", analysis.ErrInvalidConfig, cfg.Analysis.Axis)
	}

	if cfg.Sweep.PSteps < 1 {
		return nil, fmt.Errorf("%w: pSteps %d must be >= 1", analysis.ErrInvalidConfig, cfg.Sweep.PSteps)
	}
	if cfg.Sweep.PMax < cfg.Sweep.PMin {
		return nil, fmt.Errorf("%w: pMax %g below pMin %g", analysis.ErrInvalidConfig, cfg.Sweep.PMax, cfg.Sweep.PMin)
	}
	pValues := make([]float64, cfg.Sweep.PSteps)
	if cfg.Sweep.PSteps == 1 {
		pValues[0] = cfg.Sweep.PMin
	} else {
		step := (cfg.Sweep.PMax - cfg.Sweep.PMin) / float64(cfg.Sweep.PSteps-1)
		for i := range pValues {
			pValues[i] = cfg.Sweep.PMin + float64(i)*step
		}
		// Pin the endpoint so rounding never pushes it past pMax.
		pValues[len(pValues)-1] = cfg.Sweep.PMax
	}

	params := &analysis.Params{
		Sizes:             cfg.Volume.Sizes,
		Kind:              kind,
		PValues:           pValues,
		Replicates:        cfg.Sweep.Replicates,
		Connectivity:      connectivity.Connectivity(cfg.Analysis.Connectivity),
		Axis:              axis,
		Seed:              cfg.Sweep.Seed,
		NumCores:          cfg.Output.NumCores,
		CorrelationLength: cfg.Volume.CorrelationLength,
		Walkers:           cfg.Analysis.Walkers,
		ComputeTopology:   cfg.Analysis.Topology,
		ComputeFractal:    cfg.Analysis.Fractal,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}
