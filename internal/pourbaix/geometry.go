// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Karel Planken
//
// This file implements the small amount of planar geometry the diagram
// construction needs: convex polygon clipping against half-planes, plus the
// area and vertex-average helpers used to weed out degenerate regions and to
// place labels.
//
// Why half-plane clipping?
//
// Every species contributes an affine free energy plane over the (pH, V)
// plane, and its stability region is the set of points where its plane lies
// below all the others. That region is the intersection of one half-plane per
// competitor with the bounding frame, so it can be computed exactly by
// starting from the frame rectangle and clipping it once per competitor. The
// polygons involved stay convex throughout, which keeps the clip a simple
// single pass over the vertex ring.
package pourbaix

// Point is a location in the diagram plane.
type Point struct {
	PH float64
	V  float64
}

// halfPlane is the constraint a*pH + b*v + c <= 0.
type halfPlane struct {
	a, b, c float64
}

// clipEps absorbs floating point noise when classifying a vertex against a
// half-plane boundary.
const clipEps = 1e-9

func (h halfPlane) eval(p Point) float64 {
	return h.a*p.PH + h.b*p.V + h.c
}

// clipPolygon returns the part of a convex polygon satisfying the half-plane
// constraint. Vertex order is preserved, so a counter-clockwise input stays
// counter-clockwise. The result may be empty.
func clipPolygon(poly []Point, h halfPlane) []Point {
	if len(poly) == 0 {
		return nil
	}

	var out []Point
	for i, cur := range poly {
		next := poly[(i+1)%len(poly)]
		curIn := h.eval(cur) <= clipEps
		nextIn := h.eval(next) <= clipEps

		switch {
		case curIn && nextIn:
			out = append(out, cur)
		case curIn && !nextIn:
			out = append(out, cur, intersect(cur, next, h))
		case !curIn && nextIn:
			out = append(out, intersect(cur, next, h))
		}
	}
	return dedupe(out)
}

// intersect finds the crossing of segment pq with the half-plane boundary.
// Callers guarantee p and q lie on opposite sides.
func intersect(p, q Point, h halfPlane) Point {
	fp := h.eval(p)
	fq := h.eval(q)
	t := fp / (fp - fq)
	return Point{
		PH: p.PH + t*(q.PH-p.PH),
		V:  p.V + t*(q.V-p.V),
	}
}

// dedupe removes consecutive vertices that coincide within clipping
// tolerance. Clipping along a boundary that passes through an existing vertex
// produces such pairs.
func dedupe(poly []Point) []Point {
	if len(poly) < 2 {
		return poly
	}
	out := poly[:0]
	for _, p := range poly {
		if len(out) > 0 && samePoint(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(p, q Point) bool {
	return abs(p.PH-q.PH) <= clipEps && abs(p.V-q.V) <= clipEps
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ClipToFrame returns the part of a convex polygon inside the frame, or nil
// when nothing remains. Renderers use this to restrict construction-frame
// polygons to the displayed window.
func ClipToFrame(poly []Point, f Frame) []Point {
	for _, h := range frameHalfPlanes(f) {
		poly = clipPolygon(poly, h)
		if len(poly) == 0 {
			return nil
		}
	}
	return poly
}

func frameHalfPlanes(f Frame) []halfPlane {
	return []halfPlane{
		{a: -1, b: 0, c: f.PHMin},
		{a: 1, b: 0, c: -f.PHMax},
		{a: 0, b: -1, c: f.VMin},
		{a: 0, b: 1, c: -f.VMax},
	}
}

// polygonArea computes the signed shoelace area. Counter-clockwise polygons
// have positive area.
func polygonArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.PH*q.V - q.PH*p.V
	}
	return sum / 2
}

// VertexAverage is the arithmetic mean of the polygon vertices. Labels are
// anchored here rather than at the area centroid to match the established
// presentation of these diagrams.
func VertexAverage(poly []Point) Point {
	var c Point
	if len(poly) == 0 {
		return c
	}
	for _, p := range poly {
		c.PH += p.PH
		c.V += p.V
	}
	c.PH /= float64(len(poly))
	c.V /= float64(len(poly))
	return c
}
