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

package isoband

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/grid"
	"seehuhn.de/go/isoband/quantize"
	"seehuhn.de/go/isoband/raster"
)

// ErrInvalidConfig is returned by Run for configuration values which are
// out of range. Bucket problems are reported as quantize.ErrInvalidBuckets
// instead.
var ErrInvalidConfig = errors.New("isoband: invalid configuration")

// Config holds all settings of a run. A Config is passed by value and is
// not modified by Run.
type Config struct {
	// Buckets defines quantization and the available contour levels.
	Buckets quantize.Buckets

	// Levels lists the boundaries at which contours are traced. Every
	// level must be one of Buckets.Boundaries. Nil selects all boundaries.
	Levels []float64

	// Policy decides which value wins where polygons overlap.
	Policy raster.Policy

	// FillRule decides which parts of self-overlapping rings are inside.
	FillRule raster.FillRule

	// MaxCells is the largest grid that will be allocated.
	// Zero or negative disables the check.
	MaxCells int64

	// Bands and Workers control parallelism; zero selects defaults based
	// on the number of CPUs. The output does not depend on either value.
	Bands   int
	Workers int

	// Filter drops polygons before quantization.
	Filter feature.Filter

	// MinLength drops contours shorter than this, in world units.
	MinLength float64

	// Simplify is the Douglas-Peucker tolerance in world units.
	// Zero disables simplification.
	Simplify float64

	// SnapTolerance is the distance within which segment endpoints are
	// joined. Zero selects one millionth of the cell size.
	SnapTolerance float64

	// DedupTolerance is the distance below which two contours at the same
	// level are considered identical. Negative values disable
	// deduplication.
	DedupTolerance float64
}

// DefaultConfig returns the default buckets with all levels,
// last-write-wins overlap resolution, even-odd filling and no filtering,
// length threshold or simplification.
func DefaultConfig() Config {
	return Config{
		Buckets:  quantize.Default(),
		Policy:   raster.LastWriteWins,
		FillRule: raster.EvenOdd,
		MaxCells: grid.DefaultMaxCells,
		Filter:   feature.NoFilter(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Buckets.Validate(); err != nil {
		return err
	}
	for _, level := range c.Levels {
		if _, ok := c.Buckets.LevelIndex(level); !ok {
			return fmt.Errorf("%w: level %g is not a boundary", quantize.ErrInvalidBuckets, level)
		}
	}
	switch c.Policy {
	case raster.LastWriteWins, raster.MaxValueWins:
	default:
		return fmt.Errorf("%w: overlap policy %d", ErrInvalidConfig, int(c.Policy))
	}
	switch c.FillRule {
	case raster.EvenOdd, raster.NonZero:
	default:
		return fmt.Errorf("%w: fill rule %d", ErrInvalidConfig, int(c.FillRule))
	}
	if c.Bands < 0 || c.Workers < 0 {
		return fmt.Errorf("%w: negative bands or workers", ErrInvalidConfig)
	}
	for _, x := range []struct {
		name  string
		value float64
	}{
		{"minimum length", c.MinLength},
		{"simplification tolerance", c.Simplify},
		{"snap tolerance", c.SnapTolerance},
	} {
		if !(x.value >= 0) || math.IsInf(x.value, 0) {
			return fmt.Errorf("%w: %s %g", ErrInvalidConfig, x.name, x.value)
		}
	}
	if math.IsNaN(c.DedupTolerance) || math.IsInf(c.DedupTolerance, 1) {
		return fmt.Errorf("%w: dedup tolerance %g", ErrInvalidConfig, c.DedupTolerance)
	}
	return nil
}

// levels returns the contour levels in increasing order without
// duplicates. The result does not alias c.Levels.
func (c Config) levels() []float64 {
	if c.Levels == nil {
		return slices.Clone(c.Buckets.Boundaries)
	}
	levels := slices.Clone(c.Levels)
	slices.Sort(levels)
	return slices.Compact(levels)
}
