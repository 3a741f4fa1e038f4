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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/grid"
)

var precisionCases = []TestCase{
	// edges between, on and beyond the cell centres
	{
		Name:     "subcell_offset_00",
		Polygons: []feature.Polygon{poly(60, offsetRectangle(20, 20, 24, 24, 0.0))},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "subcell_offset_25",
		Polygons: []feature.Polygon{poly(60, offsetRectangle(20, 20, 24, 24, 0.25))},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "subcell_offset_50",
		Polygons: []feature.Polygon{poly(60, offsetRectangle(20, 20, 24, 24, 0.5))},
		Geometry: canvas(64, 64),
	},
	{
		Name:     "subcell_offset_75",
		Polygons: []feature.Polygon{poly(60, offsetRectangle(20, 20, 24, 24, 0.75))},
		Geometry: canvas(64, 64),
	},
	{
		// projected coordinates in the millions, 10m cells
		Name: "utm_offset",
		Polygons: []feature.Polygon{
			poly(30, offsetRectangle(500000, 5000000, 640, 640, 0)),
			poly(180, diamond(500320, 5000320, 200)),
		},
		Geometry: grid.Geometry{
			Origin:   vec.Vec2{X: 500000, Y: 5000640},
			CellSize: 10,
			Width:    64,
			Height:   64,
			NoData:   0,
		},
	},
	{
		Name:     "float64_precision",
		Polygons: []feature.Polygon{poly(90, float64PrecisionShape())},
		Geometry: canvas(64, 64),
	},
}

// offsetRectangle builds a rectangular ring with an offset applied to all
// coordinates.
func offsetRectangle(x1, y1, w, h, offset float64) []vec.Vec2 {
	return rectangle(x1+offset, y1+offset, x1+w+offset, y1+h+offset)
}

// float64PrecisionShape builds a square whose corners differ only in
// the low bits of float64.
func float64PrecisionShape() []vec.Vec2 {
	base := 32.0
	delta1 := 0.123456789012345
	delta2 := 0.123456789012346
	return rectangle(base-10+delta1, base-10+delta1, base+10+delta2, base+10+delta2)
}
