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

package classify

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"seehuhn.de/go/geom/vec"
)

// Simplify applies Douglas-Peucker simplification with tolerance tol to
// every contour and returns the new contours together with the number of
// removed vertices. The input is not modified. A non-positive tol returns
// the input unchanged.
//
// Open contours keep their end points. A closed contour which would
// shrink below four points keeps all of its vertices. Simplifying an
// already simplified set with the same tolerance removes nothing.
func Simplify(contours []Contour, tol float64) ([]Contour, int) {
	if !(tol > 0) {
		return contours, 0
	}
	dp := simplify.DouglasPeucker(tol)

	removed := 0
	out := make([]Contour, len(contours))
	for i, c := range contours {
		out[i] = c
		if len(c.Points) < 3 {
			continue
		}
		res, ok := dp.Simplify(c.LineString()).(orb.LineString)
		if !ok || len(res) >= len(c.Points) {
			continue
		}
		if c.Closed && len(res) < 4 || len(res) < 2 {
			continue
		}
		pts := make([]vec.Vec2, len(res))
		for j, p := range res {
			pts[j] = vec.Vec2{X: p[0], Y: p[1]}
		}
		removed += len(c.Points) - len(pts)
		out[i].Points = pts
	}
	return out, removed
}

// indexed places a contour in the spatial index, represented by its
// bounding box.
type indexed struct {
	geom.Polygonal
	idx int
}

// dedup removes contours whose vertex set lies within tol of the vertex
// set of an earlier contour, and vice versa. The contours must all have
// the same level. The first of a group of duplicates is kept.
func dedup(contours []Contour, tol float64) ([]Contour, int) {
	if len(contours) < 2 {
		return contours, 0
	}

	tree := rtree.NewTree(25, 50)
	pad := max(tol, 1e-12)
	var out []Contour
	dups := 0
	for i := range contours {
		c := &contours[i]
		b := c.Bounds()
		box := &geom.Bounds{
			Min: geom.Point{X: b.LLx - pad, Y: b.LLy - pad},
			Max: geom.Point{X: b.URx + pad, Y: b.URy + pad},
		}

		duplicate := false
		for _, hit := range tree.SearchIntersect(box) {
			other := &out[hit.(*indexed).idx]
			if other.Closed == c.Closed && nearSame(c.Points, other.Points, tol) {
				duplicate = true
				break
			}
		}
		if duplicate {
			dups++
			continue
		}

		tree.Insert(&indexed{
			Polygonal: &geom.Bounds{
				Min: geom.Point{X: b.LLx, Y: b.LLy},
				Max: geom.Point{X: b.URx, Y: b.URy},
			},
			idx: len(out),
		})
		out = append(out, *c)
	}
	return out, dups
}

// nearSame reports whether every vertex of a is within tol of some vertex
// of b, and every vertex of b is within tol of some vertex of a.
func nearSame(a, b []vec.Vec2, tol float64) bool {
	return covered(a, b, tol) && covered(b, a, tol)
}

func covered(a, b []vec.Vec2, tol float64) bool {
	tol2 := tol * tol
	for _, p := range a {
		best := math.Inf(1)
		for _, q := range b {
			dx := p.X - q.X
			dy := p.Y - q.Y
			best = min(best, dx*dx+dy*dy)
			if best <= tol2 {
				break
			}
		}
		if best > tol2 {
			return false
		}
	}
	return true
}
