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

//go:generate go run ./testcases/export

import (
	"context"
	"fmt"

	"seehuhn.de/go/isoband/classify"
	"seehuhn.de/go/isoband/contour"
	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/grid"
	"seehuhn.de/go/isoband/quantize"
	"seehuhn.de/go/isoband/raster"
)

// Result is the output of a run.
type Result struct {
	// Grid holds bucket representatives and nodata only.
	Grid *grid.Grid

	// Contours are sorted by level.
	Contours []classify.Contour

	Report Report
}

// Run quantizes polys, burns them into a grid with geometry geom and
// extracts classified contours at the configured levels.
//
// Invalid configuration and a grid larger than cfg.MaxCells are reported
// as errors before any work is done. If ctx is cancelled, Run returns
// ctx.Err() and no result. All other problems are recorded in the report.
func Run(ctx context.Context, cfg Config, geom grid.Geometry, polys []feature.Polygon) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := geom.Validate(cfg.MaxCells); err != nil {
		return nil, err
	}
	levels := cfg.levels()

	rep := Report{Input: len(polys)}
	quantized := make([]feature.Polygon, 0, len(polys))
	for i := range polys {
		p := &polys[i]
		if !cfg.Filter.Keep(p) {
			rep.Filtered++
			continue
		}
		if err := p.Validate(); err != nil {
			rep.Invalid++
			rep.Issues = append(rep.Issues, fmt.Errorf("polygon %d: %w", i, err))
			continue
		}
		v, clamped := cfg.Buckets.Quantize(p.Value)
		if clamped {
			rep.Clamped++
			rep.Issues = append(rep.Issues, fmt.Errorf("polygon %d: %w: %g not in [%g, %g]",
				i, quantize.ErrOutOfRange, p.Value, cfg.Buckets.Min, cfg.Buckets.Max))
		}
		quantized = append(quantized, p.WithValue(v))
	}

	g, rs, err := raster.Rasterize(ctx, geom, quantized, raster.Options{
		Policy:   cfg.Policy,
		Rule:     cfg.FillRule,
		Bands:    cfg.Bands,
		Workers:  cfg.Workers,
		MaxCells: cfg.MaxCells,
	})
	if err != nil {
		return nil, err
	}
	rep.Invalid += rs.Invalid
	rep.Issues = append(rep.Issues, rs.Issues...)
	rep.Outside = rs.Outside
	rep.Rasterized = rs.Rasterized
	rep.CellsWritten = rs.CellsWritten
	gs := g.Stats()
	rep.ValidCells = gs.Valid
	rep.TotalCells = gs.Total

	segs, err := contour.Trace(ctx, g, levels, cfg.Workers)
	if err != nil {
		return nil, err
	}

	snap := cfg.SnapTolerance
	if snap == 0 {
		snap = geom.CellSize * 1e-6
	}
	contours, cs, err := classify.Classify(segs, levels, cfg.Buckets, classify.Options{
		SnapTolerance:  snap,
		MinLength:      cfg.MinLength,
		Simplify:       cfg.Simplify,
		DedupTolerance: cfg.DedupTolerance,
	})
	if err != nil {
		return nil, err
	}
	rep.Segments = cs.Segments
	rep.Chains = cs.Chains
	rep.Closed = cs.Closed
	rep.Short = cs.Short
	rep.Duplicates = cs.Duplicates
	rep.VerticesRemoved = cs.VerticesRemoved
	rep.Contours = len(contours)

	return &Result{Grid: g, Contours: contours, Report: rep}, nil
}
