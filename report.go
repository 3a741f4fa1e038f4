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

package isoband

import (
	"errors"
	"fmt"
	"strings"
)

// Report summarises a run. Problems with individual polygons never abort
// a run; they are collected in Issues.
type Report struct {
	Input      int // polygons passed to Run
	Filtered   int // polygons dropped by the filter
	Invalid    int // polygons skipped by validation
	Clamped    int // polygons whose value was outside the bucket domain
	Outside    int // valid polygons entirely outside the grid
	Rasterized int // polygons burned into the grid

	CellsWritten int64 // cell writes, counting overwrites
	ValidCells   int64 // cells holding a value after rasterization
	TotalCells   int64

	Segments        int // isoline segments over all levels
	Chains          int // polylines after chaining
	Closed          int // closed polylines among the chains
	Short           int // polylines below the minimum length
	Duplicates      int // polylines removed as duplicates
	VerticesRemoved int // vertices removed by simplification
	Contours        int // contours in the result

	// Issues holds one entry per skipped or clamped polygon.
	Issues []error
}

// Err joins all issues into one error, or returns nil if there were none.
func (r *Report) Err() error {
	return errors.Join(r.Issues...)
}

// Empty reports whether no polygon reached the grid. An empty run yields
// a grid which holds only nodata and no contours; it is not an error.
func (r *Report) Empty() bool {
	return r.Rasterized == 0
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "polygons: %d input, %d filtered, %d invalid, %d outside, %d clamped, %d rasterized\n",
		r.Input, r.Filtered, r.Invalid, r.Outside, r.Clamped, r.Rasterized)
	pct := 0.0
	if r.TotalCells > 0 {
		pct = 100 * float64(r.ValidCells) / float64(r.TotalCells)
	}
	fmt.Fprintf(&b, "grid: %d of %d cells hold a value (%.2f%%), %d writes\n",
		r.ValidCells, r.TotalCells, pct, r.CellsWritten)
	fmt.Fprintf(&b, "contours: %d segments, %d chains (%d closed), %d short, %d duplicates, %d vertices simplified, %d kept",
		r.Segments, r.Chains, r.Closed, r.Short, r.Duplicates, r.VerticesRemoved, r.Contours)
	return b.String()
}
