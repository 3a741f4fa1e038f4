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

// Package contour traces isolines through a value grid using marching
// squares.
//
// The corners of the marching squares are the cell centres of the grid,
// so a grid of W×H cells has (W-1)×(H-1) squares. A corner counts as
// above a level if its value is greater than or equal to the level.
// Squares with a nodata corner produce no segments.
//
// Ambiguous squares, where diagonally opposite corners are on the same
// side of the level, are resolved by the mean of the four corner values:
// if the mean is at least the level, the two corners above the level are
// taken to be connected through the centre of the square; otherwise the
// two corners below the level are.
package contour

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/grid"
)

// Segment is one piece of an isoline, in world coordinates.
type Segment struct {
	A, B  vec.Vec2
	Level float64
}

// Edges of a square.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// Corner bits of the case index.
const (
	bitBL = 1 << iota
	bitBR
	bitTR
	bitTL
)

// caseEdges lists, for every non-saddle case, the pair of square edges
// the isoline crosses. Cases 0 and 15 have no crossing. Cases 5 and 10
// are saddles and are handled separately.
var caseEdges = [16][2]int{
	1:  {edgeLeft, edgeBottom},
	2:  {edgeBottom, edgeRight},
	3:  {edgeLeft, edgeRight},
	4:  {edgeTop, edgeRight},
	6:  {edgeTop, edgeBottom},
	7:  {edgeLeft, edgeTop},
	8:  {edgeLeft, edgeTop},
	9:  {edgeTop, edgeBottom},
	11: {edgeTop, edgeRight},
	12: {edgeLeft, edgeRight},
	13: {edgeBottom, edgeRight},
	14: {edgeLeft, edgeBottom},
}

// cancelCheckRows is the number of square rows traced between checks for
// cancellation.
const cancelCheckRows = 256

// TraceLevel visits the squares of g in row-major order and calls emit
// for every isoline segment at the given level.
//
// Crossing points on an edge shared by two squares are bit-identical in
// both squares, so segments can be chained by exact endpoint comparison.
func TraceLevel(g *grid.Grid, level float64, emit func(Segment)) {
	_ = traceLevel(context.Background(), g, level, emit)
}

// Trace traces all levels of g concurrently, using at most workers
// goroutines; zero selects runtime.GOMAXPROCS(0). The result holds one
// slice of segments per level, in the order of levels.
//
// If ctx is cancelled, Trace returns ctx.Err() and no segments.
func Trace(ctx context.Context, g *grid.Grid, levels []float64, workers int) ([][]Segment, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([][]Segment, len(levels))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, level := range levels {
		eg.Go(func() error {
			var segs []Segment
			err := traceLevel(ctx, g, level, func(s Segment) {
				segs = append(segs, s)
			})
			out[i] = segs
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func traceLevel(ctx context.Context, g *grid.Grid, level float64, emit func(Segment)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.Width < 2 || g.Height < 2 || math.IsNaN(level) {
		return nil
	}

	t := tracer{g: g, level: level}
	for r := 0; r < g.Height-1; r++ {
		if r%cancelCheckRows == cancelCheckRows-1 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		upper := g.Row(r)
		lower := g.Row(r + 1)
		for c := 0; c < g.Width-1; c++ {
			t.v = [4]float64{upper[c], upper[c+1], lower[c+1], lower[c]}
			t.c, t.r = c, r
			t.square(emit)
		}
	}
	return nil
}

// tracer holds the square currently being processed.
type tracer struct {
	g     *grid.Grid
	level float64

	c, r int
	v    [4]float64 // corner values tl, tr, br, bl
}

func (t *tracer) square(emit func(Segment)) {
	idx := 0
	for i, v := range t.v {
		if t.g.IsNoData(v) || math.IsNaN(v) {
			return
		}
		if v >= t.level {
			idx |= bitTL >> i
		}
	}

	switch idx {
	case 0, 15:
		return
	case 5, 10:
		mean := (t.v[0] + t.v[1] + t.v[2] + t.v[3]) / 4
		// with tr and bl above, joining them isolates tl and br
		isolateTLBR := (idx == 5) == (mean >= t.level)
		if isolateTLBR {
			emit(t.segment(edgeLeft, edgeTop))
			emit(t.segment(edgeBottom, edgeRight))
		} else {
			emit(t.segment(edgeTop, edgeRight))
			emit(t.segment(edgeLeft, edgeBottom))
		}
	default:
		e := caseEdges[idx]
		emit(t.segment(e[0], e[1]))
	}
}

func (t *tracer) segment(e0, e1 int) Segment {
	return Segment{A: t.crossing(e0), B: t.crossing(e1), Level: t.level}
}

// crossing returns the world coordinate where the isoline crosses the
// given edge. Interpolation always runs from the left or top corner,
// independent of which square asks.
func (t *tracer) crossing(edge int) vec.Vec2 {
	x0 := float64(t.c) + 0.5
	y0 := float64(t.r) + 0.5
	tl, tr, br, bl := t.v[0], t.v[1], t.v[2], t.v[3]

	switch edge {
	case edgeTop:
		return t.g.GridToWorld(x0+t.frac(tl, tr), y0)
	case edgeBottom:
		return t.g.GridToWorld(x0+t.frac(bl, br), y0+1)
	case edgeLeft:
		return t.g.GridToWorld(x0, y0+t.frac(tl, bl))
	default: // edgeRight
		return t.g.GridToWorld(x0+1, y0+t.frac(tr, br))
	}
}

// frac returns the relative position of the level between v0 and v1.
func (t *tracer) frac(v0, v1 float64) float64 {
	return (t.level - v0) / (v1 - v0)
}
