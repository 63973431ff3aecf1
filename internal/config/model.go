package config

import (
	"fmt"
	"math"

	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// Model is the unified, format-agnostic representation of a diagram job: the
// full set of diagrams one invocation should produce.
type Model struct {
	Diagrams []*Diagram
}

// Diagram describes one requested stability diagram. Optional fields are
// pointers (or zero values) and fall back to the run defaults when unset.
type Diagram struct {
	// Name labels the diagram in logs and names its output file when no
	// explicit Output is given. Names are not checked for uniqueness, so
	// two diagrams with the same name overwrite each other's output.
	Name string

	// Elements are the element symbols the diagram covers, in input order.
	Elements []string

	// Composition overrides the uniform elemental fractions. Keys must be
	// a subset of Elements and values must sum to one.
	Composition map[string]float64

	// Concentration overrides the run's default ion concentration.
	Concentration float64

	// FilterSolids overrides the run's solid filtering toggle.
	FilterSolids *bool

	// Window overrides the displayed region.
	Window *Window

	// Output overrides the output file name (not the directory).
	Output string
}

// Window is a rectangular region of the potential-vs-pH plane.
type Window struct {
	PHMin, PHMax float64
	VMin, VMax   float64
}

// Validate checks the model for errors no loader format can rule out on its
// own.
func (m *Model) Validate() error {
	if len(m.Diagrams) == 0 {
		return fmt.Errorf("job defines no diagrams")
	}
	for _, d := range m.Diagrams {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single diagram definition.
func (d *Diagram) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("diagram has no name")
	}
	if len(d.Elements) == 0 {
		return fmt.Errorf("diagram %q: at least one element is required", d.Name)
	}

	seen := make(map[string]struct{}, len(d.Elements))
	for _, symbol := range d.Elements {
		if !pourbaix.KnownElement(symbol) {
			return fmt.Errorf("diagram %q: unknown element symbol %q", d.Name, symbol)
		}
		if _, dup := seen[symbol]; dup {
			return fmt.Errorf("diagram %q: element %s listed twice", d.Name, symbol)
		}
		seen[symbol] = struct{}{}
	}

	if len(d.Composition) > 0 {
		var sum float64
		for symbol, fraction := range d.Composition {
			if _, ok := seen[symbol]; !ok {
				return fmt.Errorf("diagram %q: composition names element %s outside the element list", d.Name, symbol)
			}
			if fraction <= 0 {
				return fmt.Errorf("diagram %q: composition fraction for %s must be positive", d.Name, symbol)
			}
			sum += fraction
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("diagram %q: composition fractions sum to %v, want 1", d.Name, sum)
		}
	}

	if d.Concentration < 0 {
		return fmt.Errorf("diagram %q: concentration must be positive", d.Name)
	}

	if w := d.Window; w != nil {
		if w.PHMin >= w.PHMax || w.VMin >= w.VMax {
			return fmt.Errorf("diagram %q: degenerate window %+v", d.Name, *w)
		}
	}
	return nil
}
