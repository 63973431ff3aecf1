package app

import "github.com/karelplanken/pourbaix/internal/config"

// compositionWeights returns the elemental fractions for a diagram. An
// explicit composition wins; otherwise every element gets an equal share.
func compositionWeights(diagram *config.Diagram) map[string]float64 {
	if len(diagram.Composition) > 0 {
		return diagram.Composition
	}

	weights := make(map[string]float64, len(diagram.Elements))
	share := 1 / float64(len(diagram.Elements))
	for _, element := range diagram.Elements {
		weights[element] = share
	}
	return weights
}

// concentrations maps every element of the diagram to its assumed molar
// concentration, falling back to the run default when the diagram does not
// set one.
func concentrations(diagram *config.Diagram, fallback float64) map[string]float64 {
	conc := diagram.Concentration
	if conc == 0 {
		conc = fallback
	}

	m := make(map[string]float64, len(diagram.Elements))
	for _, element := range diagram.Elements {
		m[element] = conc
	}
	return m
}

// filterSolids resolves the per-diagram override against the run default.
func (a *App) filterSolids(diagram *config.Diagram) bool {
	if diagram.FilterSolids != nil {
		return *diagram.FilterSolids
	}
	return !a.config.NoFilterSolids
}
