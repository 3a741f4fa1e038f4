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
)

var saddleCases = []TestCase{
	{
		// every block corner is an ambiguous square
		Name:     "checkerboard",
		Polygons: checkerboard(4, 4, 16, 12.5, 62.5),
		Geometry: canvas(64, 64),
	},
	{
		Name:     "checkerboard_fine",
		Polygons: checkerboard(16, 16, 4, 37.5, 187.5),
		Geometry: canvas(64, 64),
	},
	{
		// two squares meeting in a single point on a common background
		Name: "diagonal_touch",
		Polygons: []feature.Polygon{
			poly(10, rectangle(0, 0, 64, 64)),
			poly(100, rectangle(12, 32, 32, 52)),
			poly(100, rectangle(32, 12, 52, 32)),
		},
		Geometry: canvas(64, 64),
	},
}

// checkerboard builds rows×cols square blocks of the given size with
// alternating values, starting with a at the bottom left.
func checkerboard(rows, cols int, size, a, b float64) []feature.Polygon {
	polys := make([]feature.Polygon, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			v := a
			if (row+col)%2 == 1 {
				v = b
			}
			x := float64(col) * size
			y := float64(row) * size
			polys = append(polys, poly(v, rectangle(x, y, x+size, y+size)))
		}
	}
	return polys
}
