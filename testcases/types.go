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

// Package testcases provides named polygon layers for exercising the
// isoband pipeline. Cases are grouped by category in [All].
package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/grid"
	"seehuhn.de/go/isoband/raster"
)

// TestCase is one input layer together with the grid it is burned into.
type TestCase struct {
	Name     string            // lowercase a-z, 0-9 and _ only
	Polygons []feature.Polygon // raw attribute values, not yet quantized
	Geometry grid.Geometry     // target grid
	Policy   raster.Policy     // overlap resolution
	Rule     raster.FillRule   // fill rule within one polygon
}

// canvas returns the geometry of a w×h grid of unit cells whose top-left
// corner is at (0, h). World y points up, so row 0 covers y in [h-1, h).
func canvas(w, h int) grid.Geometry {
	return grid.Geometry{
		Origin:   vec.Vec2{X: 0, Y: float64(h)},
		CellSize: 1,
		Width:    w,
		Height:   h,
		NoData:   0,
	}
}

// poly builds a valid polygon from an outer ring and optional holes.
func poly(value float64, rings ...[]vec.Vec2) feature.Polygon {
	return feature.Polygon{Rings: rings, Value: value, Valid: true}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// rectangle builds a counter-clockwise rectangular ring.
func rectangle(x1, y1, x2, y2 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2)}
}

// triangle builds a triangular ring.
func triangle(x1, y1, x2, y2, x3, y3 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x1, y1), pt(x2, y2), pt(x3, y3)}
}

// fivePointStar builds a self-intersecting five-pointed star ring.
func fivePointStar(cx, cy, r float64) []vec.Vec2 {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 + math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3
	return []vec.Vec2{pts[0], pts[2], pts[4], pts[1], pts[3]}
}

// regular builds a regular n-gon approximating a circle.
func regular(cx, cy, r float64, n int) []vec.Vec2 {
	ring := make([]vec.Vec2, n)
	for i := range ring {
		angle := float64(i) * 2 * math.Pi / float64(n)
		ring[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return ring
}

// diamond builds a square ring rotated by 45 degrees.
func diamond(cx, cy, r float64) []vec.Vec2 {
	return []vec.Vec2{pt(cx+r, cy), pt(cx, cy+r), pt(cx-r, cy), pt(cx, cy-r)}
}

// reversed returns the ring in opposite orientation.
func reversed(ring []vec.Vec2) []vec.Vec2 {
	out := make([]vec.Vec2, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}
