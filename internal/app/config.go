package app

import (
	"errors"
	"fmt"
)

// Defaults shared by the CLI flag definitions and direct library use.
const (
	DefaultEntriesDir    = "pourbaix_entries"
	DefaultDiagramsDir   = "pourbaix_diagrams"
	DefaultConcentration = 1e-8
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Elements requests a single diagram over these element symbols, in
	// input order. Mutually exclusive with JobPath.
	Elements []string

	// JobPath points to an HCL job file or a directory of job files.
	JobPath string

	EntriesDir  string // cached entry files, one JSON file per element
	DiagramsDir string // rendered PNG files

	// Concentration is the assumed molar concentration of dissolved
	// species for diagrams that do not override it.
	Concentration float64

	// NoFilterSolids keeps solid phases that are nowhere the most stable
	// solid. The zero value filters them out.
	NoFilterSolids bool

	// Show opens a window with the rendered diagram after the run.
	Show bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults for unset fields.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Elements) == 0 && cfg.JobPath == "" {
		return nil, errors.New("either an element selection or a job path is required")
	}
	if len(cfg.Elements) > 0 && cfg.JobPath != "" {
		return nil, errors.New("an element selection and a job path are mutually exclusive")
	}
	if cfg.Concentration < 0 {
		return nil, fmt.Errorf("concentration must be positive, got %g", cfg.Concentration)
	}

	if cfg.EntriesDir == "" {
		cfg.EntriesDir = DefaultEntriesDir
	}
	if cfg.DiagramsDir == "" {
		cfg.DiagramsDir = DefaultDiagramsDir
	}
	if cfg.Concentration == 0 {
		cfg.Concentration = DefaultConcentration
	}

	return &cfg, nil
}
