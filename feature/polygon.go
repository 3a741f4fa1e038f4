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

// Package feature holds the attributed polygons which enter the pipeline.
package feature

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrInvalidGeometry marks a polygon which cannot be rasterized.
// Such polygons are skipped and reported; they never abort a run.
var ErrInvalidGeometry = errors.New("feature: invalid geometry")

// zeroAreaThreshold is the absolute signed area (in squared world units)
// below which an outer ring is treated as degenerate.
const zeroAreaThreshold = 1e-12

// Polygon is one attributed input polygon.
type Polygon struct {
	// Rings holds the outer ring followed by zero or more holes.
	// Repeating the first vertex at the end of a ring is optional.
	Rings [][]vec.Vec2

	// Value is the scalar attribute which is classified.
	Value float64

	// Valid is the validity flag supplied by the decoder.
	Valid bool
}

// Validate checks that the polygon can be rasterized.
// All failures wrap ErrInvalidGeometry.
func (p *Polygon) Validate() error {
	if !p.Valid {
		return fmt.Errorf("%w: flagged invalid", ErrInvalidGeometry)
	}
	if len(p.Rings) == 0 {
		return fmt.Errorf("%w: no rings", ErrInvalidGeometry)
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("%w: attribute value %g", ErrInvalidGeometry, p.Value)
	}
	for i, ring := range p.Rings {
		for _, v := range ring {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				return fmt.Errorf("%w: ring %d has non-finite vertex", ErrInvalidGeometry, i)
			}
		}
		if n := distinctVertices(ring); n < 3 {
			return fmt.Errorf("%w: ring %d has %d distinct vertices", ErrInvalidGeometry, i, n)
		}
	}
	if a := SignedArea(p.Rings[0]); math.Abs(a) < zeroAreaThreshold {
		return fmt.Errorf("%w: zero area", ErrInvalidGeometry)
	}
	return nil
}

// distinctVertices counts vertices which differ from their predecessor,
// ignoring a closing vertex.
func distinctVertices(ring []vec.Vec2) int {
	ring = openRing(ring)
	if len(ring) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(ring); i++ {
		if ring[i] != ring[i-1] {
			n++
		}
	}
	return n
}

// openRing drops the closing vertex of a ring, if present.
func openRing(ring []vec.Vec2) []vec.Vec2 {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}

// SignedArea returns the shoelace area of a ring. Counter-clockwise rings
// (in a y-up coordinate system) have positive area.
func SignedArea(ring []vec.Vec2) float64 {
	ring = openRing(ring)
	n := len(ring)
	if n < 3 {
		return 0
	}
	// shift to the first vertex to limit cancellation for large coordinates
	o := ring[0]
	var sum float64
	for i := 1; i+1 < n; i++ {
		a := ring[i].Sub(o)
		b := ring[i+1].Sub(o)
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the area of the outer ring minus the area of the holes.
func (p *Polygon) Area() float64 {
	if len(p.Rings) == 0 {
		return 0
	}
	a := math.Abs(SignedArea(p.Rings[0]))
	for _, hole := range p.Rings[1:] {
		a -= math.Abs(SignedArea(hole))
	}
	return a
}

// Bounds returns the bounding box of all ring vertices.
func (p *Polygon) Bounds() rect.Rect {
	var b rect.Rect
	first := true
	for _, ring := range p.Rings {
		for _, v := range ring {
			if first {
				b = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
				first = false
				continue
			}
			b.LLx = min(b.LLx, v.X)
			b.LLy = min(b.LLy, v.Y)
			b.URx = max(b.URx, v.X)
			b.URy = max(b.URy, v.Y)
		}
	}
	return b
}

// Path converts the rings into a path with one closed subpath per ring.
// The outer ring is oriented counter-clockwise and holes clockwise, so
// that the nonzero and even-odd fill rules agree for well-formed polygons.
func (p *Polygon) Path() *path.Data {
	d := &path.Data{}
	for i, ring := range p.Rings {
		ring = openRing(ring)
		if len(ring) == 0 {
			continue
		}
		wantCCW := i == 0
		isCCW := SignedArea(ring) > 0
		if wantCCW == isCCW {
			d = d.MoveTo(ring[0])
			for _, v := range ring[1:] {
				d = d.LineTo(v)
			}
		} else {
			d = d.MoveTo(ring[len(ring)-1])
			for j := len(ring) - 2; j >= 0; j-- {
				d = d.LineTo(ring[j])
			}
		}
		d = d.Close()
	}
	return d
}

// WithValue returns a shallow copy of p carrying a different attribute
// value. The rings are shared with p.
func (p *Polygon) WithValue(v float64) Polygon {
	return Polygon{Rings: p.Rings, Value: v, Valid: p.Valid}
}

// BoundsOf returns the union of the bounding boxes of all polygons which
// pass Validate. The second return value is false if there are none.
func BoundsOf(polys []Polygon) (rect.Rect, bool) {
	var b rect.Rect
	found := false
	for i := range polys {
		if polys[i].Validate() != nil {
			continue
		}
		pb := polys[i].Bounds()
		if !found {
			b = pb
			found = true
			continue
		}
		b.LLx = min(b.LLx, pb.LLx)
		b.LLy = min(b.LLy, pb.LLy)
		b.URx = max(b.URx, pb.URx)
		b.URy = max(b.URy, pb.URy)
	}
	return b, found
}
