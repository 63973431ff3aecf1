// Package config defines the format-agnostic job model for the application,
// along with the Loader interface for reading it from various sources.
//
// The `config.Model` is the single source of truth for the orchestrator: one
// Diagram per requested output, with every optional knob either set or left
// to the run defaults. Concrete loader implementations, such as for HCL, are
// provided in separate packages.
package config
