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

// Package isoband converts attributed polygons into a classified value grid
// and extracts classified contours from it.
//
// The pipeline has four stages. Polygon attribute values are quantized to
// bucket representatives (package quantize). The quantized polygons are
// burned into a grid, resolving overlaps with a configurable policy
// (package raster). Isolines are traced through the grid at the bucket
// boundaries (package contour). Finally the isoline segments are chained
// into polylines, tagged with their class and cleaned (package classify).
//
// [Run] executes all stages with a single immutable [Config]. The
// individual packages can also be used on their own.
//
// The library performs no file I/O and does not log. Everything that
// happened during a run is returned in a [Report].
package isoband
