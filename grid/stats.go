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

package grid

import (
	"maps"
	"slices"
)

// Stats summarises the cell values of a grid.
type Stats struct {
	Total int64 // number of cells
	Valid int64 // number of cells not equal to nodata

	// Min and Max are the smallest and largest valid values.
	// Both are zero if there are no valid cells.
	Min, Max float64

	// Counts maps each valid value to the number of cells holding it.
	Counts map[float64]int64
}

// Stats scans the grid once and returns its value summary.
func (g *Grid) Stats() Stats {
	s := Stats{
		Total:  int64(len(g.Data)),
		Counts: make(map[float64]int64),
	}
	first := true
	for _, v := range g.Data {
		if g.IsNoData(v) {
			continue
		}
		s.Valid++
		s.Counts[v]++
		if first {
			s.Min, s.Max = v, v
			first = false
		} else {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
		}
	}
	return s
}

// ValidFraction returns the fraction of cells which hold a value.
func (s Stats) ValidFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Valid) / float64(s.Total)
}

// Values returns the distinct valid values in increasing order.
func (s Stats) Values() []float64 {
	return slices.Sorted(maps.Keys(s.Counts))
}
