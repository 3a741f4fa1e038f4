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

package feature

import (
	"math"

	"seehuhn.de/go/geom/rect"
)

// Filter selects the polygons which take part in a run.
type Filter struct {
	// Crop, if non-nil, keeps only polygons whose bounding box overlaps
	// this rectangle.
	Crop *rect.Rect

	// MinValue drops polygons whose attribute value is below it.
	MinValue float64
}

// NoFilter returns a filter which keeps every polygon.
func NoFilter() Filter {
	return Filter{MinValue: math.Inf(-1)}
}

// Keep reports whether p passes the filter. Polygons with a NaN value are
// kept so that validation can report them.
func (f Filter) Keep(p *Polygon) bool {
	if p.Value < f.MinValue {
		return false
	}
	if f.Crop != nil {
		b := p.Bounds()
		c := f.Crop
		if b.URx < c.LLx || b.LLx > c.URx || b.URy < c.LLy || b.LLy > c.URy {
			return false
		}
	}
	return true
}
