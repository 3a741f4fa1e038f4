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

// Package quantize maps attribute values onto a fixed, ordered set of
// bucket representative values.
//
// A bucket set with K buckets has K-1 strictly increasing interior
// boundaries. Bucket i (1-based) is the half-open interval
// [Boundaries[i-2], Boundaries[i-1]); the first bucket extends to -Inf
// and the last to +Inf. A value equal to a boundary belongs to the bucket
// above it.
package quantize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ErrInvalidBuckets is returned when a bucket configuration is unusable.
// This is a configuration error and aborts processing before any work is
// done.
var ErrInvalidBuckets = errors.New("quantize: invalid bucket configuration")

// ErrOutOfRange marks an attribute value outside the configured domain.
// Such values are clamped, never rejected; the error is only used to
// report them.
var ErrOutOfRange = errors.New("quantize: value out of range")

// Buckets is an ordered set of quantization buckets.
type Buckets struct {
	// Boundaries are the K-1 interior bucket boundaries, strictly increasing.
	Boundaries []float64

	// Representatives are the K bucket values, strictly increasing. Each
	// lies strictly inside its bucket.
	Representatives []float64

	// Min and Max bound the attribute domain. Values outside [Min, Max] are
	// clamped before quantization and reported as out of range.
	// Use math.Inf for an unbounded domain.
	Min, Max float64
}

// New returns a validated bucket set with an unbounded domain.
func New(boundaries, representatives []float64) (Buckets, error) {
	b := Buckets{
		Boundaries:      boundaries,
		Representatives: representatives,
		Min:             math.Inf(-1),
		Max:             math.Inf(1),
	}
	if err := b.Validate(); err != nil {
		return Buckets{}, err
	}
	return b, nil
}

// Default returns ten buckets of width 25 over the 8-bit range [0, 255].
// The boundaries are 25, 50, ..., 225 and the representatives are the
// bucket midpoints 12.5, 37.5, ..., 212.5, with 240 for the top bucket.
func Default() Buckets {
	boundaries := make([]float64, 9)
	representatives := make([]float64, 10)
	for i := range boundaries {
		boundaries[i] = float64(25 * (i + 1))
	}
	for i := range 9 {
		representatives[i] = 12.5 + float64(25*i)
	}
	representatives[9] = 240
	return Buckets{
		Boundaries:      boundaries,
		Representatives: representatives,
		Min:             0,
		Max:             255,
	}
}

// K returns the number of buckets.
func (b Buckets) K() int {
	return len(b.Representatives)
}

// Validate checks that the buckets are consistent.
func (b Buckets) Validate() error {
	nb, nr := len(b.Boundaries), len(b.Representatives)
	if nb == 0 {
		return fmt.Errorf("%w: no boundaries", ErrInvalidBuckets)
	}
	if nr != nb+1 {
		return fmt.Errorf("%w: %d boundaries need %d representatives, got %d",
			ErrInvalidBuckets, nb, nb+1, nr)
	}
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || b.Min >= b.Max {
		return fmt.Errorf("%w: empty domain [%g, %g]", ErrInvalidBuckets, b.Min, b.Max)
	}
	for i, x := range b.Boundaries {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: boundary %d is %g", ErrInvalidBuckets, i, x)
		}
		if i > 0 && x <= b.Boundaries[i-1] {
			return fmt.Errorf("%w: boundaries not strictly increasing at %d", ErrInvalidBuckets, i)
		}
	}
	for i, r := range b.Representatives {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: representative %d is %g", ErrInvalidBuckets, i, r)
		}
		if i > 0 && r <= b.Representatives[i-1] {
			return fmt.Errorf("%w: representatives not strictly increasing at %d", ErrInvalidBuckets, i)
		}
		if i > 0 && r <= b.Boundaries[i-1] {
			return fmt.Errorf("%w: representative %g not above boundary %g",
				ErrInvalidBuckets, r, b.Boundaries[i-1])
		}
		if i < nb && r >= b.Boundaries[i] {
			return fmt.Errorf("%w: representative %g not below boundary %g",
				ErrInvalidBuckets, r, b.Boundaries[i])
		}
	}
	return nil
}

// Class returns the 1-based bucket index of v. A value equal to a
// boundary belongs to the bucket above. NaN is treated as -Inf.
func (b Buckets) Class(v float64) int {
	if math.IsNaN(v) {
		return 1
	}
	// number of boundaries <= v
	n := sort.Search(len(b.Boundaries), func(i int) bool {
		return b.Boundaries[i] > v
	})
	return n + 1
}

// Clamp restricts v to the domain [Min, Max]. NaN clamps to Min. The
// second return value reports whether v was outside the domain.
func (b Buckets) Clamp(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v):
		return b.Min, true
	case v < b.Min:
		return b.Min, true
	case v > b.Max:
		return b.Max, true
	}
	return v, false
}

// Quantize returns the representative value of the bucket containing v.
// Out-of-domain values are clamped first and reported through clamped.
// Quantize is monotonic non-decreasing in v.
func (b Buckets) Quantize(v float64) (rep float64, clamped bool) {
	v, clamped = b.Clamp(v)
	return b.Representatives[b.Class(v)-1], clamped
}

// IsRepresentative reports whether v is one of the representative values.
func (b Buckets) IsRepresentative(v float64) bool {
	i := sort.SearchFloat64s(b.Representatives, v)
	return i < len(b.Representatives) && b.Representatives[i] == v
}

// LevelIndex returns the 1-based position of level among the boundaries.
func (b Buckets) LevelIndex(level float64) (int, bool) {
	i := sort.SearchFloat64s(b.Boundaries, level)
	if i < len(b.Boundaries) && b.Boundaries[i] == level {
		return i + 1, true
	}
	return 0, false
}

// ClassRange describes the value range of bucket class (1-based), for
// example "<25", "25-50" or ">=225".
func (b Buckets) ClassRange(class int) string {
	nb := len(b.Boundaries)
	switch {
	case class < 1 || class > nb+1:
		return ""
	case class == 1:
		return "<" + formatValue(b.Boundaries[0])
	case class == nb+1:
		return ">=" + formatValue(b.Boundaries[nb-1])
	}
	return formatValue(b.Boundaries[class-2]) + "-" + formatValue(b.Boundaries[class-1])
}

func formatValue(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
