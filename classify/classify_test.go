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
	"errors"
	"reflect"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/contour"
	"seehuhn.de/go/isoband/grid"
	"seehuhn.de/go/isoband/quantize"
)

func seg(x0, y0, x1, y1 float64) contour.Segment {
	return contour.Segment{A: vec.Vec2{X: x0, Y: y0}, B: vec.Vec2{X: x1, Y: y1}, Level: 25}
}

func TestChainClosed(t *testing.T) {
	// a unit square with mixed segment orientations
	segs := []contour.Segment{
		seg(0, 0, 1, 0),
		seg(1, 1, 1, 0),
		seg(0, 1, 0, 0),
		seg(1, 1, 0, 1),
	}
	lines, degenerate := Chain(segs, 1e-9)
	if degenerate != 0 {
		t.Errorf("degenerate = %d", degenerate)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	l := lines[0]
	if !l.Closed || len(l.Points) != 5 || l.Points[0] != l.Points[4] {
		t.Errorf("got %+v", l)
	}
}

func TestChainOpen(t *testing.T) {
	// the seed lies in the middle of the chain
	segs := []contour.Segment{
		seg(1, 0, 2, 0),
		seg(0, 0, 1, 0),
		seg(3, 0, 2, 0),
		seg(5, 5, 5, 5),
	}
	lines, degenerate := Chain(segs, 1e-9)
	if degenerate != 1 {
		t.Errorf("degenerate = %d, want 1", degenerate)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	want := []vec.Vec2{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	if lines[0].Closed || !reflect.DeepEqual(lines[0].Points, want) {
		t.Errorf("got %+v", lines[0])
	}
}

func TestChainTolerance(t *testing.T) {
	segs := []contour.Segment{
		seg(0, 0, 1, 0),
		seg(1+1e-12, 0, 2, 0),
	}
	if lines, _ := Chain(segs, 1e-9); len(lines) != 1 {
		t.Errorf("snapped: got %d polylines, want 1", len(lines))
	}
	if lines, _ := Chain(segs, 0); len(lines) != 2 {
		t.Errorf("exact: got %d polylines, want 2", len(lines))
	}
}

// plateau returns the segments of a 5×5 grid with a 3×3 block of 62.5 in
// the middle of a 12.5 background.
func plateau(t *testing.T, levels []float64) [][]contour.Segment {
	t.Helper()
	g, err := grid.New(grid.Geometry{
		Origin:   vec.Vec2{X: 0, Y: 5},
		CellSize: 1,
		Width:    5,
		Height:   5,
		NoData:   0,
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for r := range 5 {
		for c := range 5 {
			v := 12.5
			if r >= 1 && r <= 3 && c >= 1 && c <= 3 {
				v = 62.5
			}
			g.Set(c, r, v)
		}
	}
	out := make([][]contour.Segment, len(levels))
	for i, level := range levels {
		contour.TraceLevel(g, level, func(s contour.Segment) {
			out[i] = append(out[i], s)
		})
	}
	return out
}

func TestClassify(t *testing.T) {
	levels := []float64{75, 25, 50}
	segs := plateau(t, levels)

	cs, stats, err := Classify(segs, levels, quantize.Default(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 {
		t.Fatalf("got %d contours, want 2", len(cs))
	}
	want := []struct {
		level float64
		class int
		rng   string
	}{
		{25, 1, "<25"},
		{50, 2, "25-50"},
	}
	for i, w := range want {
		c := cs[i]
		if c.Level != w.level || c.Class != w.class || c.Range != w.rng {
			t.Errorf("contour %d: got level %g class %d range %q", i, c.Level, c.Class, c.Range)
		}
		if !c.Closed || len(c.Points) != 13 {
			t.Errorf("contour %d: closed=%t with %d points", i, c.Closed, len(c.Points))
		}
	}
	if stats.Segments != 24 || stats.Chains != 2 || stats.Closed != 2 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestClassifyErrors(t *testing.T) {
	b := quantize.Default()
	_, _, err := Classify(make([][]contour.Segment, 1), []float64{30}, b, DefaultOptions())
	if !errors.Is(err, quantize.ErrInvalidBuckets) {
		t.Errorf("non-boundary level: got %v", err)
	}
	if _, _, err := Classify(nil, []float64{25}, b, DefaultOptions()); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestMinLength(t *testing.T) {
	levels := []float64{25}
	segs := plateau(t, levels)

	opts := DefaultOptions()
	opts.MinLength = 100
	cs, stats, err := Classify(segs, levels, quantize.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 0 || stats.Short != 1 {
		t.Errorf("got %d contours, stats %+v", len(cs), stats)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	levels := []float64{25, 50}
	segs := plateau(t, levels)

	opts := DefaultOptions()
	opts.Simplify = 0.01
	cs, stats, err := Classify(segs, levels, quantize.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if stats.VerticesRemoved == 0 {
		t.Fatal("collinear vertices were not removed")
	}
	for _, c := range cs {
		if !c.Closed || len(c.Points) < 4 || c.Points[0] != c.Points[len(c.Points)-1] {
			t.Errorf("simplified ring broken: %+v", c)
		}
	}

	again, removed := Simplify(cs, opts.Simplify)
	if removed != 0 {
		t.Errorf("second pass removed %d vertices", removed)
	}
	if !reflect.DeepEqual(again, cs) {
		t.Error("second pass changed the contours")
	}
}

func TestSimplifyKeepsSmallRings(t *testing.T) {
	ring := Contour{
		Points: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}},
		Closed: true,
	}
	out, removed := Simplify([]Contour{ring}, 10)
	if removed != 0 || len(out[0].Points) != 4 {
		t.Errorf("ring collapsed: removed %d, %v", removed, out[0].Points)
	}
}

func TestDedup(t *testing.T) {
	base := Contour{
		Level:  25,
		Points: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}},
	}
	reversed := base
	reversed.Points = []vec.Vec2{{X: 2, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1e-6}}
	shifted := base
	shifted.Points = []vec.Vec2{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}, {X: 2, Y: 1.5}}

	out, dups := dedup([]Contour{base, reversed, shifted}, 1e-3)
	if dups != 1 || len(out) != 2 {
		t.Fatalf("got %d contours, %d duplicates", len(out), dups)
	}
	if !reflect.DeepEqual(out[0], base) || !reflect.DeepEqual(out[1], shifted) {
		t.Errorf("wrong contours kept: %v", out)
	}

	levels := []float64{25}
	segs := plateau(t, levels)
	segs[0] = append(segs[0], segs[0]...)
	opts := DefaultOptions()
	cs, stats, err := Classify(segs, levels, quantize.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 1 || stats.Duplicates != 1 {
		t.Errorf("doubled segments: %d contours, stats %+v", len(cs), stats)
	}

	opts.DedupTolerance = -1
	cs, _, err = Classify(segs, levels, quantize.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 {
		t.Errorf("dedup disabled: got %d contours, want 2", len(cs))
	}
}
