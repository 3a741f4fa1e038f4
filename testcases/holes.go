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

package testcases

import (
	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/raster"
)

var holeCases = []TestCase{
	{
		// hole in the same orientation as the outer ring
		Name:     "ring_same_orientation",
		Polygons: []feature.Polygon{ringShape(32, 32, 24, 12, 90)},
		Geometry: canvas(64, 64),
	},
	{
		Name: "ring_reversed_hole_nonzero",
		Polygons: []feature.Polygon{poly(90,
			rectangle(8, 8, 56, 56),
			reversed(rectangle(20, 20, 44, 44)),
		)},
		Geometry: canvas(64, 64),
		Rule:     raster.NonZero,
	},
	{
		// a second polygon fills the hole of the first
		Name: "island_in_hole",
		Polygons: []feature.Polygon{
			ringShape(32, 32, 28, 16, 90),
			poly(190, rectangle(24, 24, 40, 40)),
		},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "multiple_rings",
		Polygons: multipleRings(64, 64),
		Geometry: canvas(128, 128),
	},
	{
		Name: "two_holes",
		Polygons: []feature.Polygon{poly(160,
			rectangle(4, 12, 60, 52),
			regular(20, 32, 10, 24),
			regular(44, 32, 10, 24),
		)},
		Geometry: canvas(64, 64),
	},
}

// ringShape builds a square polygon with a square hole, both centred on
// (cx, cy).
func ringShape(cx, cy, outerSize, innerSize, value float64) feature.Polygon {
	return poly(value,
		rectangle(cx-outerSize, cy-outerSize, cx+outerSize, cy+outerSize),
		rectangle(cx-innerSize, cy-innerSize, cx+innerSize, cy+innerSize),
	)
}

// multipleRings builds three square donuts with different values.
func multipleRings(cx, cy float64) []feature.Polygon {
	return []feature.Polygon{
		ringShape(cx-30, cy-30, 20, 10, 30),
		ringShape(cx+30, cy-30, 20, 10, 130),
		ringShape(cx, cy+30, 20, 10, 230),
	}
}
