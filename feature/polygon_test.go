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
	"encoding/json"
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func square(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestValidate(t *testing.T) {
	good := Polygon{Rings: [][]vec.Vec2{square(0, 0, 1, 1)}, Value: 3, Valid: true}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid polygon rejected: %v", err)
	}

	cases := []struct {
		name string
		p    Polygon
	}{
		{"flagged", Polygon{Rings: good.Rings, Valid: false}},
		{"no rings", Polygon{Valid: true}},
		{"two vertices", Polygon{Rings: [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}, Valid: true}},
		{"collinear", Polygon{Rings: [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}, Valid: true}},
		{"nan vertex", Polygon{Rings: [][]vec.Vec2{{{X: 0, Y: 0}, {X: math.NaN(), Y: 1}, {X: 2, Y: 0}}}, Valid: true}},
		{"nan value", Polygon{Rings: good.Rings, Value: math.NaN(), Valid: true}},
		{"degenerate hole", Polygon{Rings: [][]vec.Vec2{square(0, 0, 4, 4), {{X: 1, Y: 1}}}, Valid: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.p.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("got %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestSignedArea(t *testing.T) {
	ccw := square(0, 0, 2, 3)
	if a := SignedArea(ccw); a != 6 {
		t.Errorf("ccw: got %g, want 6", a)
	}
	cw := []vec.Vec2{ccw[3], ccw[2], ccw[1], ccw[0], ccw[3]}
	if a := SignedArea(cw); a != -6 {
		t.Errorf("cw closed: got %g, want -6", a)
	}

	p := Polygon{Rings: [][]vec.Vec2{square(0, 0, 4, 4), square(1, 1, 2, 2)}}
	if a := p.Area(); a != 15 {
		t.Errorf("area with hole: got %g, want 15", a)
	}
}

func TestPathOrientation(t *testing.T) {
	outerCW := []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}
	holeCCW := square(1, 1, 2, 2)
	p := Polygon{Rings: [][]vec.Vec2{outerCW, holeCCW}, Valid: true}

	d := p.Path()
	var rings [][]vec.Vec2
	idx := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			rings = append(rings, []vec.Vec2{d.Coords[idx]})
			idx++
		case path.CmdLineTo:
			rings[len(rings)-1] = append(rings[len(rings)-1], d.Coords[idx])
			idx++
		}
	}
	if len(rings) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(rings))
	}
	if SignedArea(rings[0]) <= 0 {
		t.Error("outer ring not counter-clockwise")
	}
	if SignedArea(rings[1]) >= 0 {
		t.Error("hole not clockwise")
	}
}

func TestFromProperties(t *testing.T) {
	rings := [][][2]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	values := []any{253.0, float32(253), 253, int64(253), uint8(253), json.Number("253"), " 253 "}
	for _, raw := range values {
		p, err := FromProperties(rings, map[string]any{"DN": raw}, "DN")
		if err != nil {
			t.Errorf("%T: %v", raw, err)
			continue
		}
		if p.Value != 253 || !p.Valid || len(p.Rings[0]) != 4 {
			t.Errorf("%T: got %+v", raw, p)
		}
	}

	for _, props := range []map[string]any{
		{},
		{"DN": nil},
		{"DN": "high"},
		{"DN": []int{1}},
	} {
		if _, err := FromProperties(rings, props, "DN"); !errors.Is(err, ErrInvalidAttribute) {
			t.Errorf("%v: got %v, want ErrInvalidAttribute", props, err)
		}
	}
}

func TestFilter(t *testing.T) {
	p := Polygon{Rings: [][]vec.Vec2{square(10, 10, 20, 20)}, Value: 100, Valid: true}

	if !NoFilter().Keep(&p) {
		t.Error("NoFilter dropped polygon")
	}

	f := NoFilter()
	f.MinValue = 253
	if f.Keep(&p) {
		t.Error("threshold did not drop polygon")
	}

	f = NoFilter()
	f.Crop = &rect.Rect{LLx: 0, LLy: 0, URx: 5, URy: 5}
	if f.Keep(&p) {
		t.Error("crop did not drop polygon")
	}
	f.Crop = &rect.Rect{LLx: 15, LLy: 0, URx: 30, URy: 12}
	if !f.Keep(&p) {
		t.Error("crop dropped overlapping polygon")
	}
}

func TestBoundsOf(t *testing.T) {
	polys := []Polygon{
		{Rings: [][]vec.Vec2{square(0, 0, 1, 1)}, Valid: true},
		{Rings: [][]vec.Vec2{square(-100, -100, 100, 100)}, Valid: false},
		{Rings: [][]vec.Vec2{square(5, -2, 6, 3)}, Valid: true},
	}
	b, ok := BoundsOf(polys)
	if !ok {
		t.Fatal("no bounds")
	}
	want := rect.Rect{LLx: 0, LLy: -2, URx: 6, URy: 3}
	if b != want {
		t.Errorf("got %v, want %v", b, want)
	}
	if _, ok := BoundsOf(nil); ok {
		t.Error("bounds of empty input")
	}
}
