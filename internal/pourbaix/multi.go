// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Karel Planken
//
// This file defines MultiEntry, the weighted assemblage of species that
// represents the stable state of a multi-element system, and the combination
// search that generates all viable assemblages from a flat entry list.
//
// Why assemblages at all?
//
// In a system with more than one active element there is usually no single
// species containing every element in the requested ratio. The stable state
// at a point of the diagram is instead a coexistence of phases, one or more
// per element, mixed in whatever proportions reproduce the target
// composition. Each such mixture behaves like a single species whose
// thermodynamic coefficients are the weight-averaged coefficients of its
// members, which is exactly what MultiEntry models.
//
// Why balance only the non-water elements?
//
// Hydrogen and oxygen exchange freely with the solvent through water, protons
// and electrons, so they never constrain the mixing weights. The weights are
// fixed by requiring the combined non-water composition of the assemblage to
// match the target composition, a small linear system solved exactly.
package pourbaix

import (
	"math"
	"sort"
	"strings"
)

// weightThreshold is the smallest mixing weight considered physically
// meaningful. Assemblages needing a smaller or negative weight are discarded.
const weightThreshold = 1e-4

// Species is a candidate occupant of a diagram region: either a single Entry
// or a weighted MultiEntry assemblage.
type Species interface {
	DisplayName() string
	NpH() float64
	NPhi() float64
	EffectiveEnergy() float64
	NormalizationFactor() float64
	NormalizedEnergyAt(pH, v float64) float64
}

// MultiEntry is a weighted combination of entries acting as one species.
// Weights are positive and parallel to Entries.
type MultiEntry struct {
	Entries []Entry
	Weights []float64
}

// DisplayName joins the member names in combination order.
func (m MultiEntry) DisplayName() string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.DisplayName()
	}
	return strings.Join(names, " + ")
}

// weightedSum folds a per-entry quantity over the assemblage.
func (m MultiEntry) weightedSum(f func(Entry) float64) float64 {
	var sum float64
	for i, e := range m.Entries {
		sum += m.Weights[i] * f(e)
	}
	return sum
}

// NpH is the weight-averaged proton coefficient.
func (m MultiEntry) NpH() float64 {
	return m.weightedSum(Entry.NpH)
}

// NPhi is the weight-averaged electron coefficient.
func (m MultiEntry) NPhi() float64 {
	return m.weightedSum(Entry.NPhi)
}

// NH2O is the weight-averaged water coefficient.
func (m MultiEntry) NH2O() float64 {
	return m.weightedSum(Entry.NH2O)
}

// EffectiveEnergy is the weight-averaged corrected free energy.
func (m MultiEntry) EffectiveEnergy() float64 {
	return m.weightedSum(Entry.EffectiveEnergy)
}

// NormalizationFactor rescales to one atom of the combined non-water
// composition, mirroring the single-entry definition.
func (m MultiEntry) NormalizationFactor() float64 {
	n := m.weightedSum(func(e Entry) float64 {
		return e.NumAtoms() - e.atoms("H") - e.atoms("O")
	})
	return 1.0 / n
}

// EnergyAt evaluates the assemblage free energy at the given conditions.
func (m MultiEntry) EnergyAt(pH, v float64) float64 {
	return m.EffectiveEnergy() + m.NpH()*NernstSlope*pH + m.NPhi()*v
}

// NormalizedEnergyAt is EnergyAt rescaled by the normalization factor.
func (m MultiEntry) NormalizedEnergyAt(pH, v float64) float64 {
	return m.EnergyAt(pH, v) * m.NormalizationFactor()
}

// buildMultiEntries generates every viable assemblage of 1..N entries, where
// N is the number of target elements. An assemblage is viable when its
// members jointly contain every target element and the composition balance
// yields strictly positive weights.
func buildMultiEntries(entries []Entry, target map[string]float64) []Species {
	symbols := make([]string, 0, len(target))
	for symbol := range target {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var result []Species
	for size := 1; size <= len(symbols); size++ {
		forEachCombination(len(entries), size, func(idx []int) {
			combo := make([]Entry, len(idx))
			for i, j := range idx {
				combo[i] = entries[j]
			}
			if !coversElements(combo, symbols) {
				return
			}
			weights, ok := balanceWeights(combo, symbols, target)
			if !ok {
				return
			}
			for _, w := range weights {
				if w <= weightThreshold {
					return
				}
			}
			result = append(result, MultiEntry{Entries: combo, Weights: weights})
		})
	}
	return result
}

// coversElements reports whether the combined composition of the combo
// contains every one of the given element symbols.
func coversElements(combo []Entry, symbols []string) bool {
	for _, symbol := range symbols {
		found := false
		for _, e := range combo {
			if e.atoms(symbol) > 0 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// forEachCombination visits every k-subset of {0..n-1} in lexicographic
// order. The index slice is reused between visits.
func forEachCombination(n, k int, visit func(idx []int)) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// balanceWeights solves for weights w such that the combined non-water
// composition of the combo equals the target: one linear equation per target
// element. A combo whose balance is underdetermined or inconsistent is
// rejected.
func balanceWeights(combo []Entry, symbols []string, target map[string]float64) ([]float64, bool) {
	rows := len(symbols)
	cols := len(combo)

	a := make([][]float64, rows)
	b := make([]float64, rows)
	for r, symbol := range symbols {
		a[r] = make([]float64, cols)
		for c, e := range combo {
			a[r][c] = e.atoms(symbol)
		}
		b[r] = target[symbol]
	}

	return solveLinear(a, b)
}

// solveLinear solves a*x = b by Gaussian elimination with partial pivoting.
// It reports failure when the system has no unique solution. a and b are
// consumed.
func solveLinear(a [][]float64, b []float64) ([]float64, bool) {
	rows := len(a)
	if rows == 0 {
		return nil, false
	}
	cols := len(a[0])

	const pivotEps = 1e-12

	pivotCols := make([]int, 0, cols)
	pivot := 0
	for col := 0; col < cols && pivot < rows; col++ {
		best := pivot
		for r := pivot + 1; r < rows; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[best][col]) {
				best = r
			}
		}
		if math.Abs(a[best][col]) < pivotEps {
			continue
		}
		a[pivot], a[best] = a[best], a[pivot]
		b[pivot], b[best] = b[best], b[pivot]

		for r := pivot + 1; r < rows; r++ {
			factor := a[r][col] / a[pivot][col]
			if factor == 0 {
				continue
			}
			for c := col; c < cols; c++ {
				a[r][c] -= factor * a[pivot][c]
			}
			b[r] -= factor * b[pivot]
		}
		pivotCols = append(pivotCols, col)
		pivot++
	}

	// Fewer pivots than unknowns means the weights are not uniquely
	// determined by the composition balance.
	if len(pivotCols) < cols {
		return nil, false
	}

	// Remaining rows must be consistent with a zero right-hand side.
	for r := pivot; r < rows; r++ {
		if math.Abs(b[r]) > 1e-9 {
			return nil, false
		}
	}

	x := make([]float64, cols)
	for i := len(pivotCols) - 1; i >= 0; i-- {
		col := pivotCols[i]
		sum := b[i]
		for c := col + 1; c < cols; c++ {
			sum -= a[i][c] * x[c]
		}
		x[col] = sum / a[i][col]
	}
	return x, true
}
