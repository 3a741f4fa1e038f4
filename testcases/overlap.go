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

// low and high overlap in the square [24, 40) x [24, 40).
var (
	low  = poly(12.5, rectangle(4, 4, 40, 40))
	high = poly(62.5, rectangle(24, 24, 60, 60))
)

var overlapCases = []TestCase{
	{
		Name:     "last_low_high",
		Polygons: []feature.Polygon{low, high},
		Geometry: canvas(64, 64),
		Policy:   raster.LastWriteWins,
	},
	{
		Name:     "last_high_low",
		Polygons: []feature.Polygon{high, low},
		Geometry: canvas(64, 64),
		Policy:   raster.LastWriteWins,
	},
	{
		Name:     "max_low_high",
		Polygons: []feature.Polygon{low, high},
		Geometry: canvas(64, 64),
		Policy:   raster.MaxValueWins,
	},
	{
		Name:     "max_high_low",
		Polygons: []feature.Polygon{high, low},
		Geometry: canvas(64, 64),
		Policy:   raster.MaxValueWins,
	},
	{
		Name: "three_discs_last",
		Polygons: []feature.Polygon{
			poly(40, regular(24, 24, 16, 32)),
			poly(120, regular(40, 24, 16, 32)),
			poly(200, regular(32, 40, 16, 32)),
		},
		Geometry: canvas(64, 64),
		Policy:   raster.LastWriteWins,
	},
	{
		Name: "three_discs_max",
		Polygons: []feature.Polygon{
			poly(200, regular(32, 40, 16, 32)),
			poly(120, regular(40, 24, 16, 32)),
			poly(40, regular(24, 24, 16, 32)),
		},
		Geometry: canvas(64, 64),
		Policy:   raster.MaxValueWins,
	},
}
