// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Karel Planken
//
// This file carries the periodic table of element symbols.
//
// Why validate symbols locally?
//
// Element symbols flow into cache file names and remote query strings, so an
// unknown or malformed symbol would either create stray files on disk or burn
// a remote round trip on a request that can only fail. The set of valid
// symbols is small, closed, and changes roughly once a decade, which makes a
// local table the cheapest possible guard.
package pourbaix

// knownElements is the set of IUPAC element symbols.
var knownElements = map[string]struct{}{
	"H": {}, "He": {}, "Li": {}, "Be": {}, "B": {}, "C": {}, "N": {}, "O": {},
	"F": {}, "Ne": {}, "Na": {}, "Mg": {}, "Al": {}, "Si": {}, "P": {}, "S": {},
	"Cl": {}, "Ar": {}, "K": {}, "Ca": {}, "Sc": {}, "Ti": {}, "V": {}, "Cr": {},
	"Mn": {}, "Fe": {}, "Co": {}, "Ni": {}, "Cu": {}, "Zn": {}, "Ga": {}, "Ge": {},
	"As": {}, "Se": {}, "Br": {}, "Kr": {}, "Rb": {}, "Sr": {}, "Y": {}, "Zr": {},
	"Nb": {}, "Mo": {}, "Tc": {}, "Ru": {}, "Rh": {}, "Pd": {}, "Ag": {}, "Cd": {},
	"In": {}, "Sn": {}, "Sb": {}, "Te": {}, "I": {}, "Xe": {}, "Cs": {}, "Ba": {},
	"La": {}, "Ce": {}, "Pr": {}, "Nd": {}, "Pm": {}, "Sm": {}, "Eu": {}, "Gd": {},
	"Tb": {}, "Dy": {}, "Ho": {}, "Er": {}, "Tm": {}, "Yb": {}, "Lu": {}, "Hf": {},
	"Ta": {}, "W": {}, "Re": {}, "Os": {}, "Ir": {}, "Pt": {}, "Au": {}, "Hg": {},
	"Tl": {}, "Pb": {}, "Bi": {}, "Po": {}, "At": {}, "Rn": {}, "Fr": {}, "Ra": {},
	"Ac": {}, "Th": {}, "Pa": {}, "U": {}, "Np": {}, "Pu": {}, "Am": {}, "Cm": {},
	"Bk": {}, "Cf": {}, "Es": {}, "Fm": {}, "Md": {}, "No": {}, "Lr": {}, "Rf": {},
	"Db": {}, "Sg": {}, "Bh": {}, "Hs": {}, "Mt": {}, "Ds": {}, "Rg": {}, "Cn": {},
	"Nh": {}, "Fl": {}, "Mc": {}, "Lv": {}, "Ts": {}, "Og": {},
}

// KnownElement reports whether symbol is a valid element symbol, using the
// conventional capitalization (e.g. "Fe", not "fe" or "FE").
func KnownElement(symbol string) bool {
	_, ok := knownElements[symbol]
	return ok
}
