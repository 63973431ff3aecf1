// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Karel Planken
//
// Package pourbaix computes electrochemical stability diagrams: for a set of
// candidate species of one or more elements in water, it partitions the
// potential-vs-pH plane into the regions where each species (or coexisting
// assemblage of species) is the thermodynamic ground state.
//
// # Core Concepts
//
// The package is built around a few structures:
//
//   - Entry: one candidate species, solid or dissolved ion, as reported by
//     the remote database and cached on disk. Its composition and charge
//     determine how its free energy varies with pH and applied potential.
//
//   - MultiEntry: a weighted coexistence of entries, used when the system
//     contains several elements and no single species can realize the
//     requested composition on its own.
//
//   - Diagram: the assembled partition. Each Domain pairs a species with the
//     convex polygon of conditions where it is the ground state.
//
// # Construction
//
// Every species' free energy is affine in (pH, V), so each one defines a
// plane over the diagram coordinates and the ground state surface is the
// lower envelope of all planes. A species' domain is the projection of its
// facet of that envelope: the construction clips the bounding frame against
// one half-plane per competitor and keeps whatever survives. All comparisons
// happen on energies normalized per non-water atom, which is what makes
// species of different formula sizes comparable at all.
//
// The package deals in pure values and has no I/O. Fetching, caching and
// rendering live elsewhere.
package pourbaix
