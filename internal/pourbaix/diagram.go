// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Karel Planken
//
// This file assembles entries into a Diagram: the partition of the
// potential-vs-pH plane into regions, each owned by the species (or species
// assemblage) with the lowest normalized free energy there.
//
// Why a construction frame wider than the plotted window?
//
// Region boundaries are intersections of free energy planes and extend to
// infinity. Clipping against a finite frame keeps every region a bounded
// polygon. The frame is deliberately wider than the window users look at, so
// that boundary artifacts from the clipping never show up inside the plot.
//
// Why filter solids against solids only?
//
// The remote database reports many solid phases that are never the ground
// state anywhere in the water stability window. Dropping every solid that
// owns no region in a solids-only diagram of its own element system removes
// exactly those phases before the expensive assemblage search, without ever
// touching the ion entries, whose stability depends on the chosen
// concentrations. Solids of different elements never compete against each
// other here, since they describe different compositions.
package pourbaix

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Frame is the rectangular construction window of a diagram.
type Frame struct {
	PHMin, PHMax float64
	VMin, VMax   float64
}

// DefaultFrame is the construction window used when none is configured. It
// extends well past the conventional display window on every side.
func DefaultFrame() Frame {
	return Frame{PHMin: -2, PHMax: 16, VMin: -4, VMax: 4}
}

// minDomainArea is the smallest region area considered a real region rather
// than clipping residue along a shared boundary.
const minDomainArea = 1e-6

// DiagramConfig carries the construction parameters for NewDiagram.
type DiagramConfig struct {
	// Composition maps each active element to its fraction of the target
	// system. Fractions sum to one.
	Composition map[string]float64

	// Concentration maps each active element to the assumed molar
	// concentration of its dissolved species.
	Concentration map[string]float64

	// FilterSolids drops solid phases that are nowhere the most stable
	// solid before the diagram is assembled.
	FilterSolids bool

	// Frame is the construction window. The zero value selects DefaultFrame.
	Frame Frame
}

// Domain is one region of the assembled diagram.
type Domain struct {
	Species  Species
	Vertices []Point
	Center   Point
}

// Diagram is the finished partition of the plane.
type Diagram struct {
	species []Species
	domains []Domain
	frame   Frame
}

// NewDiagram builds a diagram from raw entries. Every element appearing in
// the entries (hydrogen and oxygen aside) must have a composition fraction
// and a concentration configured.
func NewDiagram(entries []Entry, cfg DiagramConfig) (*Diagram, error) {
	if len(entries) == 0 {
		return nil, errors.New("no entries supplied")
	}
	if cfg.Frame == (Frame{}) {
		cfg.Frame = DefaultFrame()
	}
	if cfg.Frame.PHMin >= cfg.Frame.PHMax || cfg.Frame.VMin >= cfg.Frame.VMax {
		return nil, fmt.Errorf("degenerate frame %+v", cfg.Frame)
	}

	for _, symbol := range activeElements(entries) {
		if _, ok := cfg.Composition[symbol]; !ok {
			return nil, fmt.Errorf("no composition fraction configured for element %s", symbol)
		}
		if _, ok := cfg.Concentration[symbol]; !ok {
			return nil, fmt.Errorf("no concentration configured for element %s", symbol)
		}
	}

	solids, ions, err := partitionByPhase(entries)
	if err != nil {
		return nil, err
	}
	ions, err = applyConcentrations(ions, cfg.Concentration)
	if err != nil {
		return nil, err
	}
	for _, e := range solids {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	for _, e := range ions {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	if cfg.FilterSolids {
		solids = filterUnstableSolids(solids, cfg.Frame)
	}

	processed := append(append([]Entry{}, solids...), ions...)

	var species []Species
	if len(cfg.Composition) > 1 {
		species = buildMultiEntries(processed, cfg.Composition)
		if len(species) == 0 {
			return nil, errors.New("no viable species assemblage matches the requested composition")
		}
	} else {
		species = make([]Species, len(processed))
		for i, e := range processed {
			species[i] = e
		}
	}

	regions := stableRegions(species, cfg.Frame)
	var domains []Domain
	for i, poly := range regions {
		if poly == nil {
			continue
		}
		domains = append(domains, Domain{
			Species:  species[i],
			Vertices: poly,
			Center:   VertexAverage(poly),
		})
	}

	return &Diagram{species: species, domains: domains, frame: cfg.Frame}, nil
}

// Domains returns the regions of the diagram.
func (d *Diagram) Domains() []Domain {
	return d.domains
}

// AllSpecies returns every species considered during construction, including
// those that own no region.
func (d *Diagram) AllSpecies() []Species {
	return d.species
}

// Frame returns the construction window.
func (d *Diagram) Frame() Frame {
	return d.frame
}

// StableSpecies returns the species with the lowest normalized free energy at
// the given conditions.
func (d *Diagram) StableSpecies(pH, v float64) Species {
	var best Species
	bestEnergy := 0.0
	for _, s := range d.species {
		if e := s.NormalizedEnergyAt(pH, v); best == nil || e < bestEnergy {
			best = s
			bestEnergy = e
		}
	}
	return best
}

// HydrogenLineV is the potential of the hydrogen evolution equilibrium at the
// given pH. Below this line water is reduced.
func HydrogenLineV(pH float64) float64 {
	return -NernstSlope * pH
}

// OxygenLineV is the potential of the oxygen evolution equilibrium at the
// given pH. Above this line water is oxidized.
func OxygenLineV(pH float64) float64 {
	return 1.229 - NernstSlope*pH
}

// activeElements collects the sorted non-water element symbols present
// anywhere in the entry list.
func activeElements(entries []Entry) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		for _, symbol := range e.NonOHElements() {
			set[symbol] = struct{}{}
		}
	}
	symbols := make([]string, 0, len(set))
	for symbol := range set {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// partitionByPhase splits entries into solids and ions, rejecting unknown
// phases up front.
func partitionByPhase(entries []Entry) (solids, ions []Entry, err error) {
	for _, e := range entries {
		switch e.Phase {
		case PhaseSolid:
			solids = append(solids, e)
		case PhaseIon:
			ions = append(ions, e)
		default:
			return nil, nil, fmt.Errorf("entry %q: unknown phase %q", e.DisplayName(), e.Phase)
		}
	}
	return solids, ions, nil
}

// applyConcentrations returns ion copies with their concentration replaced by
// the configured per-element value, scaled to the normalized formula unit.
// Ions spanning several elements keep their fetched concentration and must
// carry one.
func applyConcentrations(ions []Entry, conc map[string]float64) ([]Entry, error) {
	out := make([]Entry, len(ions))
	for i, e := range ions {
		symbols := e.NonOHElements()
		switch {
		case len(symbols) == 1:
			e.Concentration = conc[symbols[0]] * e.NormalizationFactor()
		case len(symbols) > 1 && e.Concentration <= 0:
			return nil, fmt.Errorf("ion %q spans several elements and needs an explicit concentration", e.DisplayName())
		}
		out[i] = e
	}
	return out, nil
}

// filterUnstableSolids keeps only the solids owning a region in a solids-only
// diagram over the frame. Solids compete within their own element system
// only: phases of different elements describe different compositions and can
// be stable side by side.
func filterUnstableSolids(solids []Entry, frame Frame) []Entry {
	groups := make(map[string][]Entry)
	var order []string
	for _, e := range solids {
		key := strings.Join(e.NonOHElements(), ",")
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	var kept []Entry
	for _, key := range order {
		kept = append(kept, filterSolidGroup(groups[key], frame)...)
	}
	return kept
}

// filterSolidGroup drops the members of one element system that own no
// region in a solids-only diagram over the frame.
func filterSolidGroup(solids []Entry, frame Frame) []Entry {
	if len(solids) < 2 {
		return solids
	}
	species := make([]Species, len(solids))
	for i, e := range solids {
		species[i] = e
	}
	regions := stableRegions(species, frame)

	kept := solids[:0]
	for i, poly := range regions {
		if poly != nil {
			kept = append(kept, solids[i])
		}
	}
	return kept
}

// plane is the normalized free energy of one species as an affine function of
// the diagram coordinates: E(pH, v) = a*pH + b*v + c.
type plane struct {
	a, b, c float64
}

func speciesPlane(s Species) plane {
	nf := s.NormalizationFactor()
	return plane{
		a: s.NpH() * NernstSlope * nf,
		b: s.NPhi() * nf,
		c: s.EffectiveEnergy() * nf,
	}
}

// stableRegions computes the region owned by each species over the frame, as
// a slice parallel to the input. Species owning no region get nil. A species
// owns a point when its plane is lowest there, so its region is the frame
// clipped once against every competitor's difference half-plane.
func stableRegions(species []Species, frame Frame) [][]Point {
	planes := make([]plane, len(species))
	for i, s := range species {
		planes[i] = speciesPlane(s)
	}

	base := frameRectangle(frame)
	regions := make([][]Point, len(species))
	for i := range species {
		poly := base
		for j := range species {
			if j == i {
				continue
			}
			h := halfPlane{
				a: planes[i].a - planes[j].a,
				b: planes[i].b - planes[j].b,
				c: planes[i].c - planes[j].c,
			}
			poly = clipPolygon(poly, h)
			if len(poly) == 0 {
				break
			}
		}
		if len(poly) < 3 || abs(polygonArea(poly)) < minDomainArea {
			continue
		}
		regions[i] = poly
	}
	return regions
}

// frameRectangle returns the frame corners in counter-clockwise order.
func frameRectangle(f Frame) []Point {
	return []Point{
		{PH: f.PHMin, V: f.VMin},
		{PH: f.PHMax, V: f.VMin},
		{PH: f.PHMax, V: f.VMax},
		{PH: f.PHMin, V: f.VMax},
	}
}
