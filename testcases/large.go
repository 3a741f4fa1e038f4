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

// largeCases use grids big enough for several row bands per worker.
var largeCases = []TestCase{
	{
		Name:     "large_rectangle",
		Polygons: []feature.Polygon{poly(160, rectangle(50, 50, 462, 462))},
		Geometry: canvas(512, 512),
	},
	{
		Name:     "large_terraces",
		Polygons: terraces(256, 256, 240, 10, 10, 25),
		Geometry: canvas(512, 512),
	},
	{
		Name:     "large_diamond",
		Polygons: []feature.Polygon{poly(75, diamond(256, 256, 180))},
		Geometry: canvas(512, 512),
	},
	{
		Name:     "large_grid",
		Polygons: rectangleGrid(8, 8, 512, 512, 4),
		Geometry: canvas(512, 512),
	},
	{
		Name:     "large_grid_max",
		Polygons: rectangleGrid(8, 8, 512, 512, -8),
		Geometry: canvas(512, 512),
		Policy:   raster.MaxValueWins,
	},
	{
		Name:     "large_clipped",
		Polygons: []feature.Polygon{poly(230, rectangle(-100, 100, 612, 400))},
		Geometry: canvas(512, 512),
	},
}

// rectangleGrid builds a grid of rectangles whose values cycle through
// the whole 0-255 range. A negative gap makes neighbours overlap.
func rectangleGrid(rows, cols, width, height int, gap float64) []feature.Polygon {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	var polys []feature.Polygon
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap

			value := float64((row*cols+col)*37%256)
			polys = append(polys, poly(value, rectangle(x1, y1, x2, y2)))
		}
	}
	return polys
}
