// seehuhn.de/go/isoband - classified contours from polygon layers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge represents a line segment in grid coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// crossing is an intersection of an edge with the centre line of a row.
type crossing struct {
	x       float64
	winding int // +1 for downward edges, -1 for upward edges
}

// FillRule identifies which fill rule decides whether a point is inside.
type FillRule int

const (
	// EvenOdd treats a point as inside if a ray from it crosses the
	// boundary an odd number of times. Holes are excluded regardless of
	// their orientation.
	EvenOdd FillRule = iota

	// NonZero treats a point as inside if the winding number is non-zero.
	NonZero
)

func (r FillRule) String() string {
	switch r {
	case EvenOdd:
		return "evenodd"
	case NonZero:
		return "nonzero"
	}
	return "unknown"
}

// Rasterizer scan-converts paths into runs of covered cells. A cell is
// covered if and only if its centre lies inside the path.
//
// Create one instance per worker and reuse it for many paths. Internal
// buffers grow as needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM transforms from world coordinates to grid coordinates, where cell
	// (c, r) covers [c, c+1) x [r, r+1). Must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this rectangle in grid coordinates.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls curve approximation accuracy in cells.
	// Typical values: 0.1–0.5. Must be positive.
	Flatness float64

	// Internal buffers (reused across calls)
	edges     []edge     // edge list for current path (grid coordinates)
	activeIdx []int      // indices of active edges
	crossings []crossing // crossings of the active edges with the current row

	// Edge collection state (used by collectPathEdges/addEdge)
	edgeBBoxFirst bool    // true if no edges added yet
	edgeDevXMin   float64 // bounding box in grid space
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer returns a Rasterizer with the given clip rectangle, the
// identity transformation and default flatness.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Reset resets the Rasterizer to its initial state with the given clip
// rectangle, preserving internal buffer capacity for reuse.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness

	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.crossings = r.crossings[:0]
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
// Used for CTM-aware tolerance checking where translation is irrelevant.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic flattens a quadratic Bézier and calls emit for each line segment.
// p0 is the start point (current point), p1 is control, p2 is endpoint.
// All points are in world coordinates; CTM-aware tolerance checking is used.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	errDev := r.transformLinear(e).Length()
	if errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier and calls emit for each line segment.
// p0 is start, p1/p2 are controls, p3 is endpoint. All in world coordinates.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	// Wang's formula: n = ceil(sqrt(3 * m / (4 * ε)))
	m := max(r.transformLinear(d1).Length(), r.transformLinear(d2).Length())
	n := 1
	if m > 0 {
		nFloat := math.Sqrt(3 * m / (4 * r.Flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// FillSpans scan-converts the path using the given fill rule. For every
// row, emit is called once per run [xMin, xMax) of covered cells, in
// increasing x order; runs within a row do not overlap. Rows are visited
// top to bottom.
//
// The sample point of cell (c, r) is its centre (c+½, r+½). Edges are
// treated as half-open in y, and runs as half-open in x, so that a centre
// lying exactly on a shared edge belongs to exactly one of two adjacent
// polygons.
func (r *Rasterizer) FillSpans(p *path.Data, rule FillRule, emit func(y, xMin, xMax int)) {
	yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}

	clipXMin := int(r.Clip.LLx)
	clipXMax := int(r.Clip.URx)

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yc := float64(y) + 0.5

		// add edges which start at or above the row centre
		for nextEdge < len(r.edges) {
			e := &r.edges[nextEdge]
			if min(e.y0, e.y1) > yc {
				break
			}
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}

		// collect crossings, dropping edges which end at or above the centre
		r.crossings = r.crossings[:0]
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yc {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			w := 1
			if e.y1 < e.y0 {
				w = -1
			}
			r.crossings = append(r.crossings, crossing{
				x:       e.x0 + e.dxdy*(yc-e.y0),
				winding: w,
			})
			i++
		}
		if len(r.crossings) < 2 {
			continue
		}
		slices.SortFunc(r.crossings, func(a, b crossing) int {
			return cmp.Compare(a.x, b.x)
		})

		wind := 0
		for i := 0; i+1 < len(r.crossings); i++ {
			wind += r.crossings[i].winding
			inside := wind != 0
			if rule == EvenOdd {
				inside = (i+1)%2 == 1
			}
			if !inside {
				continue
			}
			x0 := max(centerIndex(r.crossings[i].x), clipXMin)
			x1 := min(centerIndex(r.crossings[i+1].x), clipXMax)
			if x0 < x1 {
				emit(y, x0, x1)
			}
		}
	}
}

// centerIndex returns the first cell index whose centre is at or to the
// right of x.
func centerIndex(x float64) int {
	return int(math.Ceil(x - 0.5))
}

// collectPathEdges walks the path, transforms to grid space, and builds the
// edge list. It returns the range of rows whose centres may be covered,
// clamped to the clip rectangle.
func (r *Rasterizer) collectPathEdges(p *path.Data) (yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	var current vec.Vec2 // current point (world space)
	var subpath vec.Vec2 // subpath start (world space)
	open := false

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != subpath {
				r.addEdge(current, subpath)
			}
			current = p.Coords[coordIdx]
			subpath = current
			open = true
			coordIdx++

		case path.CmdLineTo:
			r.addEdge(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++

		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], r.addEdge)
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], r.addEdge)
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
			open = false
		}
	}
	// fills implicitly close open subpaths
	if open && current != subpath {
		r.addEdge(current, subpath)
	}

	if len(r.edges) == 0 {
		return 0, 0, false
	}

	// reject paths entirely to the left or right of the clip region
	if r.edgeDevXMax < r.Clip.LLx || r.edgeDevXMin > r.Clip.URx {
		return 0, 0, false
	}

	yMin = max(centerIndex(r.edgeDevYMin), int(r.Clip.LLy))
	yMax = min(centerIndex(r.edgeDevYMax), int(r.Clip.URy))
	if yMin >= yMax {
		return 0, 0, false
	}
	return yMin, yMax, true
}

// addEdge adds an edge from world coordinates, transforming to grid space.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	// Skip horizontal edges
	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin = min(dx0, dx1)
		r.edgeDevXMax = max(dx0, dx1)
		r.edgeDevYMin = min(dy0, dy1)
		r.edgeDevYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
		r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
		r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
		r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
	}
}

// Default values for rasterizer parameters.
const (
	// defaultFlatness is the default curve flattening tolerance in cells.
	defaultFlatness = 0.25
)

// Numerical tolerances for the rasterizer.
const (
	// horizontalEdgeThreshold is the minimum vertical extent, in cells, for
	// an edge to take part in scan conversion. Horizontal edges never cross
	// a row centre.
	horizontalEdgeThreshold = 1e-10
)
