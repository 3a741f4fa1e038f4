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

package contour

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband/grid"
)

// makeGrid builds a grid with unit cells whose top-left corner is at
// (0, h), so that grid x equals world x and grid y equals h minus world y.
func makeGrid(t *testing.T, rows [][]float64, nodata float64) *grid.Grid {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	g, err := grid.New(grid.Geometry{
		Origin:   vec.Vec2{X: 0, Y: float64(h)},
		CellSize: 1,
		Width:    w,
		Height:   h,
		NoData:   nodata,
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for r, row := range rows {
		copy(g.Row(r), row)
	}
	return g
}

func collect(g *grid.Grid, level float64) []Segment {
	var segs []Segment
	TraceLevel(g, level, func(s Segment) { segs = append(segs, s) })
	return segs
}

func TestUniform(t *testing.T) {
	g := makeGrid(t, [][]float64{
		{62.5, 62.5, 62.5},
		{62.5, 62.5, 62.5},
		{62.5, 62.5, 62.5},
	}, 0)
	for _, level := range []float64{25, 50, 75} {
		if segs := collect(g, level); len(segs) != 0 {
			t.Errorf("level %g: got %d segments, want 0", level, len(segs))
		}
	}
}

func TestStep(t *testing.T) {
	g := makeGrid(t, [][]float64{
		{12.5, 12.5, 62.5, 62.5},
		{12.5, 12.5, 62.5, 62.5},
		{12.5, 12.5, 62.5, 62.5},
	}, 0)

	segs := collect(g, 25)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	// the crossing lies a quarter of the way from centre 1.5 to centre 2.5
	for _, s := range segs {
		if s.A.X != 1.75 || s.B.X != 1.75 {
			t.Errorf("segment %v not at x=1.75", s)
		}
		if s.Level != 25 {
			t.Errorf("segment level %g", s.Level)
		}
	}
	// consecutive squares share their crossing point exactly
	if segs[0].B != segs[1].A {
		t.Errorf("shared endpoint differs: %v vs %v", segs[0].B, segs[1].A)
	}

	// the level of the upper value counts as above
	if segs := collect(g, 62.5); len(segs) != 2 {
		t.Errorf("level 62.5: got %d segments, want 2", len(segs))
	}
	if segs := collect(g, 62.6); len(segs) != 0 {
		t.Errorf("level 62.6: got %d segments, want 0", len(segs))
	}
}

func TestNoData(t *testing.T) {
	const nd = -9999
	g := makeGrid(t, [][]float64{
		{12.5, 62.5, 62.5},
		{12.5, nd, 62.5},
		{12.5, 62.5, 62.5},
	}, nd)
	// every square touches the centre cell
	if segs := collect(g, 25); len(segs) != 0 {
		t.Errorf("got %d segments next to nodata, want 0", len(segs))
	}

	g = makeGrid(t, [][]float64{
		{math.NaN(), 12.5, 62.5},
		{math.NaN(), 12.5, 62.5},
	}, math.NaN())
	if segs := collect(g, 25); len(segs) != 1 {
		t.Errorf("NaN nodata: got %d segments, want 1", len(segs))
	}
}

// gridPoint converts a world point of a unit grid of height h back to
// grid coordinates.
func gridPoint(p vec.Vec2, h float64) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: h - p.Y}
}

func samePair(s Segment, h float64, p, q vec.Vec2) bool {
	a := gridPoint(s.A, h)
	b := gridPoint(s.B, h)
	near := func(u, v vec.Vec2) bool {
		return math.Abs(u.X-v.X) < 1e-12 && math.Abs(u.Y-v.Y) < 1e-12
	}
	return near(a, p) && near(b, q) || near(a, q) && near(b, p)
}

func TestSaddle(t *testing.T) {
	cases := []struct {
		name  string
		rows  [][]float64
		level float64
		want  [2][2]vec.Vec2
	}{
		{
			// tr and bl above, mean 50 >= 50: tl and br are cut off
			name:  "case5-joined",
			rows:  [][]float64{{0, 100}, {100, 0}},
			level: 50,
			want: [2][2]vec.Vec2{
				{{X: 0.5, Y: 1}, {X: 1, Y: 0.5}},
				{{X: 1, Y: 1.5}, {X: 1.5, Y: 1}},
			},
		},
		{
			// tr and bl above, mean 50 < 60: tr and bl are cut off
			name:  "case5-split",
			rows:  [][]float64{{0, 100}, {100, 0}},
			level: 60,
			want: [2][2]vec.Vec2{
				{{X: 1.1, Y: 0.5}, {X: 1.5, Y: 0.9}},
				{{X: 0.5, Y: 1.1}, {X: 0.9, Y: 1.5}},
			},
		},
		{
			// tl and br above, mean 50 >= 40: tr and bl are cut off
			name:  "case10-joined",
			rows:  [][]float64{{100, 0}, {0, 100}},
			level: 40,
			want: [2][2]vec.Vec2{
				{{X: 1.1, Y: 0.5}, {X: 1.5, Y: 0.9}},
				{{X: 0.5, Y: 1.1}, {X: 0.9, Y: 1.5}},
			},
		},
		{
			// tl and br above, mean 50 < 60: tl and br are cut off
			name:  "case10-split",
			rows:  [][]float64{{100, 0}, {0, 100}},
			level: 60,
			want: [2][2]vec.Vec2{
				{{X: 0.5, Y: 0.9}, {X: 0.9, Y: 0.5}},
				{{X: 1.1, Y: 1.5}, {X: 1.5, Y: 1.1}},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := makeGrid(t, c.rows, -1)
			segs := collect(g, c.level)
			if len(segs) != 2 {
				t.Fatalf("got %d segments, want 2", len(segs))
			}
			for _, w := range c.want {
				found := false
				for _, s := range segs {
					if samePair(s, 2, w[0], w[1]) {
						found = true
					}
				}
				if !found {
					t.Errorf("missing segment %v-%v in %v", w[0], w[1], segs)
				}
			}
		})
	}
}

func TestTraceLevels(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	reps := []float64{12.5, 37.5, 62.5, 87.5}
	rows := make([][]float64, 40)
	for r := range rows {
		rows[r] = make([]float64, 50)
		for c := range rows[r] {
			rows[r][c] = reps[rng.Intn(len(reps))]
		}
	}
	g := makeGrid(t, rows, 0)
	levels := []float64{25, 50, 75}

	ref, err := Trace(context.Background(), g, levels, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ref) != len(levels) {
		t.Fatalf("got %d levels, want %d", len(ref), len(levels))
	}
	for i, segs := range ref {
		if len(segs) == 0 {
			t.Errorf("level %g: no segments", levels[i])
		}
		for _, s := range segs {
			if s.Level != levels[i] {
				t.Fatalf("segment of level %g stored under %g", s.Level, levels[i])
			}
		}
		if !reflect.DeepEqual(segs, collect(g, levels[i])) {
			t.Errorf("level %g: Trace and TraceLevel differ", levels[i])
		}
	}

	got, err := Trace(context.Background(), g, levels, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, ref) {
		t.Error("result depends on the number of workers")
	}
}

func TestTraceCancelled(t *testing.T) {
	g := makeGrid(t, [][]float64{{12.5, 62.5}, {12.5, 62.5}}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	segs, err := Trace(ctx, g, []float64{25, 50}, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if segs != nil {
		t.Error("segments returned after cancellation")
	}
}

func TestSmallGrid(t *testing.T) {
	g := makeGrid(t, [][]float64{{12.5, 62.5, 12.5}}, 0)
	if segs := collect(g, 25); len(segs) != 0 {
		t.Errorf("single row: got %d segments", len(segs))
	}
}
