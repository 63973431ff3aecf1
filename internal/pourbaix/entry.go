// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Karel Planken
//
// This file defines Entry, the atomic thermodynamic record of the package.
// An Entry describes one candidate species (a solid phase or a dissolved ion)
// together with everything needed to evaluate its free energy at a given
// point of the potential-vs-pH plane.
//
// Why carry the raw formation energy and derive the rest?
//
// The remote database reports a single water-referenced formation energy per
// species. All the condition-dependent terms (the pH slope, the potential
// slope, the concentration correction) follow from the species' composition
// and charge alone, so Entry stores only the raw inputs and computes the
// derived coefficients on demand. This keeps the cache schema identical to
// the wire schema and makes every correction auditable in one place.
package pourbaix

import (
	"fmt"
	"math"
	"sort"
)

// NernstSlope is the Nernst slope ln(10)*RT/F at 298 K, in volts per pH unit.
// It converts a proton count into a pH dependence of the free energy.
const NernstSlope = 0.0591

// MuH2O is the chemical potential of water at standard conditions, in eV.
const MuH2O = -2.4583

// Phase distinguishes solid phases from dissolved ionic species.
type Phase string

const (
	PhaseSolid Phase = "Solid"
	PhaseIon   Phase = "Ion"
)

// Entry is one candidate species of a stability diagram. The JSON tags define
// both the remote wire schema and the local cache schema; the two are
// deliberately identical so cached files round-trip byte-compatibly.
type Entry struct {
	EntryID     string             `json:"entry_id"`
	Name        string             `json:"name"`
	Composition map[string]float64 `json:"composition"`
	Energy      float64            `json:"energy"`
	Charge      float64            `json:"charge"`
	Phase       Phase              `json:"phase"`

	// Concentration is the molar concentration for ions. Solids are pure
	// phases and carry 1.0. Diagram construction overrides ion values from
	// the per-element concentration map, so the fetched value is a seed.
	Concentration float64 `json:"concentration"`
}

// Validate reports whether the entry is internally consistent enough to take
// part in diagram construction.
func (e Entry) Validate() error {
	if e.Phase != PhaseSolid && e.Phase != PhaseIon {
		return fmt.Errorf("entry %q: unknown phase %q", e.DisplayName(), e.Phase)
	}
	if len(e.Composition) == 0 {
		return fmt.Errorf("entry %q: empty composition", e.DisplayName())
	}
	if e.Phase == PhaseIon && e.Concentration <= 0 {
		return fmt.Errorf("entry %q: ion concentration must be positive, got %v", e.DisplayName(), e.Concentration)
	}
	if len(e.NonOHElements()) == 0 {
		return fmt.Errorf("entry %q: species contains no elements besides H and O", e.DisplayName())
	}
	return nil
}

// DisplayName returns the label used for this species in logs and plots.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.EntryID
}

// atoms returns the atom count of one element in the species formula.
func (e Entry) atoms(symbol string) float64 {
	return e.Composition[symbol]
}

// NumAtoms is the total number of atoms in the species formula.
func (e Entry) NumAtoms() float64 {
	var n float64
	for _, count := range e.Composition {
		n += count
	}
	return n
}

// NH2O is the number of water molecules consumed when forming the species
// from the reference state. It equals the oxygen count: oxygen enters the
// system only through water.
func (e Entry) NH2O() float64 {
	return e.atoms("O")
}

// NpH is the proton coefficient of the formation reaction: hydrogen atoms in
// the formula minus those supplied by the consumed water.
func (e Entry) NpH() float64 {
	return e.atoms("H") - 2*e.atoms("O")
}

// NPhi is the electron coefficient of the formation reaction.
func (e Entry) NPhi() float64 {
	return e.NpH() - e.Charge
}

// ConcTerm is the free energy correction for a finite ion concentration.
// Solids are pure phases and contribute nothing.
func (e Entry) ConcTerm() float64 {
	if e.Phase == PhaseSolid {
		return 0
	}
	return NernstSlope * math.Log10(e.Concentration)
}

// EffectiveEnergy is the species free energy at pH 0 and zero potential,
// after the concentration correction and the water reference shift.
func (e Entry) EffectiveEnergy() float64 {
	return e.Energy + e.ConcTerm() - MuH2O*e.NH2O()
}

// NormalizationFactor rescales the free energy to one atom of the non-water
// part of the formula. Stability comparisons between species of different
// formula sizes are only meaningful on this normalized scale.
func (e Entry) NormalizationFactor() float64 {
	return 1.0 / (e.NumAtoms() - e.atoms("H") - e.atoms("O"))
}

// EnergyAt evaluates the species free energy at the given pH and potential.
func (e Entry) EnergyAt(pH, v float64) float64 {
	return e.EffectiveEnergy() + e.NpH()*NernstSlope*pH + e.NPhi()*v
}

// NormalizedEnergyAt is EnergyAt rescaled by the normalization factor.
func (e Entry) NormalizedEnergyAt(pH, v float64) float64 {
	return e.EnergyAt(pH, v) * e.NormalizationFactor()
}

// NonOHElements returns the sorted element symbols of the species formula,
// excluding hydrogen and oxygen.
func (e Entry) NonOHElements() []string {
	var elements []string
	for symbol := range e.Composition {
		if symbol == "H" || symbol == "O" {
			continue
		}
		elements = append(elements, symbol)
	}
	sort.Strings(elements)
	return elements
}
