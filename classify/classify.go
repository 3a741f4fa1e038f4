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

// Package classify turns raw isoline segments into classified contours.
//
// Segments of one level are chained into polylines, tagged with the class
// which the level opens, and cleaned: short artifacts are dropped, the
// remaining lines are optionally simplified, and near-identical lines at
// the same level are removed.
package classify

import (
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/contour"
	"seehuhn.de/go/isoband/quantize"
)

// Contour is a classified isoline.
type Contour struct {
	// Level is the bucket boundary the line was traced at.
	Level float64

	// Class is the 1-based index of the level among the bucket
	// boundaries. Bucket number Class is the one directly below the
	// level, so class i lies between levels i-1 and i.
	Class int

	// Range describes the values of bucket Class, for example "25-50".
	Range string

	// Points lists the vertices in world coordinates. Closed contours
	// repeat the first point at the end.
	Points []vec.Vec2
	Closed bool
}

// LineString converts the contour to an orb line string.
func (c *Contour) LineString() orb.LineString {
	ls := make(orb.LineString, len(c.Points))
	for i, p := range c.Points {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// Length returns the length of the contour in world units.
func (c *Contour) Length() float64 {
	return planar.Length(c.LineString())
}

// Bounds returns the bounding box of the contour.
func (c *Contour) Bounds() rect.Rect {
	b := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, p := range c.Points {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}

// Options controls chaining and cleaning. All lengths are in world units.
type Options struct {
	// SnapTolerance is the distance within which segment endpoints are
	// joined.
	SnapTolerance float64

	// MinLength drops contours shorter than this.
	MinLength float64

	// Simplify is the Douglas-Peucker tolerance. Zero disables
	// simplification.
	Simplify float64

	// DedupTolerance is the largest distance between the vertex sets of
	// two contours at the same level for them to count as duplicates.
	// Negative values disable deduplication.
	DedupTolerance float64
}

// DefaultOptions returns options which join exactly matching endpoints,
// keep all contours, do not simplify and remove exact duplicates.
func DefaultOptions() Options {
	return Options{
		SnapTolerance:  1e-9,
		MinLength:      0,
		Simplify:       0,
		DedupTolerance: 0,
	}
}

// Stats counts what happened during classification.
type Stats struct {
	Segments        int // input segments over all levels
	Degenerate      int // zero-length segments dropped before chaining
	Chains          int // polylines formed by chaining
	Closed          int // closed polylines among the chains
	Short           int // chains dropped by the length filter
	Duplicates      int // chains dropped as duplicates
	VerticesRemoved int // vertices removed by simplification
}

// Classify chains, tags and cleans the segments of every level.
// levelSegs[i] holds the segments traced at levels[i], and every level
// must be a boundary of b.
//
// The result is sorted by level. Within a level, contours appear in the
// order their first segment was traced.
func Classify(levelSegs [][]contour.Segment, levels []float64, b quantize.Buckets, opts Options) ([]Contour, Stats, error) {
	var stats Stats
	if len(levelSegs) != len(levels) {
		return nil, stats, fmt.Errorf("classify: %d segment lists for %d levels",
			len(levelSegs), len(levels))
	}
	classes := make([]int, len(levels))
	for i, level := range levels {
		class, ok := b.LevelIndex(level)
		if !ok {
			return nil, stats, fmt.Errorf("%w: level %g is not a boundary",
				quantize.ErrInvalidBuckets, level)
		}
		classes[i] = class
	}

	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		switch {
		case levels[i] < levels[j]:
			return -1
		case levels[i] > levels[j]:
			return 1
		}
		return 0
	})

	var out []Contour
	for _, i := range order {
		segs := levelSegs[i]
		stats.Segments += len(segs)
		lines, degenerate := Chain(segs, opts.SnapTolerance)
		stats.Degenerate += degenerate
		stats.Chains += len(lines)

		rangeText := b.ClassRange(classes[i])
		var cs []Contour
		for _, l := range lines {
			if l.Closed {
				stats.Closed++
			}
			c := Contour{
				Level:  levels[i],
				Class:  classes[i],
				Range:  rangeText,
				Points: l.Points,
				Closed: l.Closed,
			}
			if c.Length() < opts.MinLength {
				stats.Short++
				continue
			}
			cs = append(cs, c)
		}

		var removed int
		cs, removed = Simplify(cs, opts.Simplify)
		stats.VerticesRemoved += removed

		if opts.DedupTolerance >= 0 {
			var dups int
			cs, dups = dedup(cs, opts.DedupTolerance)
			stats.Duplicates += dups
		}
		out = append(out, cs...)
	}
	return out, stats, nil
}
