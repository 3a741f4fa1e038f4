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
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/contour"
)

// Polyline is a chain of segments. If Closed is set, the last point
// equals the first.
type Polyline struct {
	Points []vec.Vec2
	Closed bool
}

// pointKey identifies a point after snapping to the chaining tolerance.
type pointKey [2]int64

func makeKey(p vec.Vec2, tol float64) pointKey {
	if tol <= 0 {
		return pointKey{int64(math.Float64bits(p.X)), int64(math.Float64bits(p.Y))}
	}
	return pointKey{int64(math.Round(p.X / tol)), int64(math.Round(p.Y / tol))}
}

// Chain joins segments into polylines by matching endpoints.
//
// Endpoints match if they agree after rounding to multiples of tol; a
// non-positive tol requires exact equality. Segments are used as seeds in
// input order. Each chain is first extended from its end, then from its
// start, so the result is deterministic. A chain whose ends meet and
// which has at least four points is closed.
//
// Segments whose endpoints match each other are dropped; their number is
// returned as the second result.
func Chain(segs []contour.Segment, tol float64) ([]Polyline, int) {
	type end struct {
		seg   int
		first bool // the key belongs to A
	}

	keys := make([][2]pointKey, len(segs))
	ends := make(map[pointKey][]end)
	used := make([]bool, len(segs))
	degenerate := 0
	for i, s := range segs {
		ka, kb := makeKey(s.A, tol), makeKey(s.B, tol)
		keys[i] = [2]pointKey{ka, kb}
		if ka == kb {
			used[i] = true
			degenerate++
			continue
		}
		ends[ka] = append(ends[ka], end{i, true})
		ends[kb] = append(ends[kb], end{i, false})
	}

	// next finds an unused segment touching k and returns its other end.
	next := func(k pointKey) (vec.Vec2, pointKey, bool) {
		for _, e := range ends[k] {
			if used[e.seg] {
				continue
			}
			used[e.seg] = true
			if e.first {
				return segs[e.seg].B, keys[e.seg][1], true
			}
			return segs[e.seg].A, keys[e.seg][0], true
		}
		return vec.Vec2{}, pointKey{}, false
	}

	var lines []Polyline
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		startKey, endKey := keys[i][0], keys[i][1]
		fwd := []vec.Vec2{segs[i].A, segs[i].B}

		closed := false
		for !closed {
			p, k, ok := next(endKey)
			if !ok {
				break
			}
			fwd = append(fwd, p)
			endKey = k
			closed = k == startKey
		}

		var back []vec.Vec2
		for !closed {
			p, k, ok := next(startKey)
			if !ok {
				break
			}
			back = append(back, p)
			startKey = k
			closed = k == endKey
		}

		var pts []vec.Vec2
		if len(back) > 0 {
			slices.Reverse(back)
			pts = append(back, fwd...)
		} else {
			pts = fwd
		}

		if closed && len(pts) >= 4 {
			pts[len(pts)-1] = pts[0]
		} else {
			closed = false
		}
		lines = append(lines, Polyline{Points: pts, Closed: closed})
	}
	return lines, degenerate
}
