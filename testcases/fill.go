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

var fillCases = []TestCase{
	{
		// covers the whole grid; every cell must end up at 62.5
		Name:     "single_rectangle",
		Polygons: []feature.Polygon{poly(60, rectangle(0, 0, 64, 64))},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "rectangle",
		Polygons: []feature.Polygon{poly(30, rectangle(10, 20, 44, 54))},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "triangle",
		Polygons: []feature.Polygon{poly(100, triangle(10, 14, 32, 54, 54, 14))},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "star_nonzero",
		Polygons: []feature.Polygon{poly(180, fivePointStar(32, 32, 25))},
		Geometry: canvas(64, 64),
		Rule:     raster.NonZero,
	},
	{
		Name:     "star_evenodd",
		Polygons: []feature.Polygon{poly(180, fivePointStar(32, 32, 25))},
		Geometry: canvas(64, 64),
		Rule:     raster.EvenOdd,
	},
	{
		// nested squares with increasing values, like a stepped pyramid
		Name:     "terraces",
		Polygons: terraces(32, 32, 30, 6, 20, 40),
		Geometry: canvas(64, 64),
	},
	{
		Name:     "disc",
		Polygons: []feature.Polygon{poly(140, regular(32, 32, 20, 48))},
		Geometry: canvas(64, 64),
	},
}

// terraces builds n nested squares centred on (cx, cy). The outermost
// square has half-width r and value v0; each further square is smaller
// and its value larger by step.
func terraces(cx, cy, r float64, n int, v0, step float64) []feature.Polygon {
	polys := make([]feature.Polygon, n)
	for i := range polys {
		d := r * float64(n-i) / float64(n)
		polys[i] = poly(v0+float64(i)*step, rectangle(cx-d, cy-d, cx+d, cy+d))
	}
	return polys
}
