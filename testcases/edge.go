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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/feature"
)

var edgeCases = []TestCase{
	{
		Name:     "empty",
		Geometry: canvas(32, 32),
	},
	{
		Name:     "clipped",
		Polygons: []feature.Polygon{poly(70, rectangle(-20, 10, 84, 50))},
		Geometry: canvas(64, 64),
	},
	{
		// only the last polygon is usable
		Name: "skipped",
		Polygons: []feature.Polygon{
			poly(50, rectangle(100, 100, 120, 120)),
			poly(50, rectangle(10, 10, 40, 10)),
			{Rings: [][]vec.Vec2{rectangle(10, 10, 40, 40)}, Value: 50, Valid: false},
			poly(math.NaN(), rectangle(10, 10, 40, 40)),
			poly(50, triangle(10, 10, 20, 20, 30, 30)),
			poly(110, rectangle(16, 16, 48, 48)),
		},
		Geometry: canvas(64, 64),
	},
	{
		// values outside [0, 255] are clamped to the outer buckets
		Name: "out_of_range",
		Polygons: []feature.Polygon{
			poly(-5, rectangle(0, 0, 32, 64)),
			poly(300, rectangle(32, 0, 64, 64)),
		},
		Geometry: canvas(64, 64),
	},
	{
		// contours end where the data ends
		Name: "nodata_gap",
		Polygons: []feature.Polygon{
			poly(20, rectangle(0, 0, 28, 64)),
			poly(80, rectangle(36, 0, 64, 64)),
			poly(80, rectangle(10, 20, 20, 40)),
		},
		Geometry: canvas(64, 64),
	},
	{
		// a closing vertex equal to the first one is accepted
		Name: "explicitly_closed",
		Polygons: []feature.Polygon{
			poly(130, append(rectangle(8, 8, 40, 56), pt(8, 8))),
		},
		Geometry: canvas(64, 64),
	},
}
