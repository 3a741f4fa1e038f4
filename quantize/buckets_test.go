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

package quantize

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	b := Default()
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	if b.K() != 10 {
		t.Errorf("K: got %d, want 10", b.K())
	}
}

func TestQuantizeTieBreak(t *testing.T) {
	b := Default()
	cases := []struct {
		in      float64
		want    float64
		clamped bool
	}{
		{0, 12.5, false},
		{24.999, 12.5, false},
		{25, 37.5, false},
		{49.999, 37.5, false},
		{50, 62.5, false},
		{60, 62.5, false},
		{224.9, 212.5, false},
		{225, 240, false},
		{255, 240, false},
		{300, 240, true},
		{-1, 12.5, true},
		{math.NaN(), 12.5, true},
	}
	for _, c := range cases {
		got, clamped := b.Quantize(c.in)
		if got != c.want {
			t.Errorf("Quantize(%g): got %g, want %g", c.in, got, c.want)
		}
		if clamped != c.clamped {
			t.Errorf("Quantize(%g): clamped=%t, want %t", c.in, clamped, c.clamped)
		}
	}
}

func TestQuantizeMonotonic(t *testing.T) {
	b := Default()
	rng := rand.New(rand.NewSource(1))
	values := make([]float64, 2000)
	for i := range values {
		values[i] = rng.Float64()*400 - 70
	}
	// include every boundary and its neighbours
	for _, x := range b.Boundaries {
		values = append(values, x, math.Nextafter(x, math.Inf(-1)), math.Nextafter(x, math.Inf(1)))
	}
	slices.Sort(values)

	prev := math.Inf(-1)
	for _, v := range values {
		q, _ := b.Quantize(v)
		if !b.IsRepresentative(q) {
			t.Fatalf("Quantize(%g) = %g is not a representative", v, q)
		}
		if q < prev {
			t.Fatalf("Quantize not monotonic at %g: %g < %g", v, q, prev)
		}
		prev = q
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		b    Buckets
	}{
		{"no boundaries", Buckets{Representatives: []float64{1}, Min: 0, Max: 1}},
		{"count mismatch", Buckets{Boundaries: []float64{10}, Representatives: []float64{5}, Min: 0, Max: 20}},
		{"boundaries not increasing", Buckets{Boundaries: []float64{10, 10}, Representatives: []float64{5, 10, 15}, Min: 0, Max: 20}},
		{"representatives not increasing", Buckets{Boundaries: []float64{10, 20}, Representatives: []float64{5, 15, 15}, Min: 0, Max: 30}},
		{"representative on boundary", Buckets{Boundaries: []float64{10}, Representatives: []float64{5, 10}, Min: 0, Max: 20}},
		{"first representative above boundary", Buckets{Boundaries: []float64{10}, Representatives: []float64{11, 12}, Min: 0, Max: 20}},
		{"nan boundary", Buckets{Boundaries: []float64{math.NaN()}, Representatives: []float64{1, 2}, Min: 0, Max: 20}},
		{"empty domain", Buckets{Boundaries: []float64{10}, Representatives: []float64{5, 15}, Min: 5, Max: 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.b.Validate()
			if !errors.Is(err, ErrInvalidBuckets) {
				t.Errorf("got %v, want ErrInvalidBuckets", err)
			}
		})
	}
}

func TestNewUnbounded(t *testing.T) {
	b, err := New([]float64{0}, []float64{-1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if q, clamped := b.Quantize(-1e300); q != -1 || clamped {
		t.Errorf("got %g/%t, want -1/false", q, clamped)
	}
	if q, clamped := b.Quantize(0); q != 1 || clamped {
		t.Errorf("got %g/%t, want 1/false", q, clamped)
	}

	if _, err := New([]float64{0}, []float64{1}); !errors.Is(err, ErrInvalidBuckets) {
		t.Errorf("got %v, want ErrInvalidBuckets", err)
	}
}

func TestLevelIndexAndRange(t *testing.T) {
	b := Default()
	idx, ok := b.LevelIndex(75)
	if !ok || idx != 3 {
		t.Errorf("LevelIndex(75): got %d/%t, want 3/true", idx, ok)
	}
	if _, ok := b.LevelIndex(76); ok {
		t.Error("LevelIndex(76) should fail")
	}

	ranges := map[int]string{
		0:  "",
		1:  "<25",
		2:  "25-50",
		3:  "50-75",
		10: ">=225",
		11: "",
	}
	for class, want := range ranges {
		if got := b.ClassRange(class); got != want {
			t.Errorf("ClassRange(%d): got %q, want %q", class, got, want)
		}
	}
}
