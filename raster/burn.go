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

// Package raster burns attributed polygons into a value grid.
//
// Each polygon writes its value into every cell whose centre it contains.
// Where polygons overlap, a Policy decides which value survives. The
// result does not depend on the number of workers or bands.
package raster

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/grid"
)

// Policy decides which value a cell keeps when several polygons cover it.
type Policy int

const (
	// LastWriteWins lets a later polygon in the input sequence overwrite
	// cells written by an earlier one.
	LastWriteWins Policy = iota

	// MaxValueWins keeps the larger value, regardless of input order.
	MaxValueWins
)

func (p Policy) String() string {
	switch p {
	case LastWriteWins:
		return "last"
	case MaxValueWins:
		return "max"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts the output of Policy.String back into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "last", "last-write-wins":
		return LastWriteWins, nil
	case "max", "max-value-wins":
		return MaxValueWins, nil
	}
	return 0, fmt.Errorf("raster: unknown overlap policy %q", s)
}

// Options configures Rasterize.
type Options struct {
	// Policy resolves overlapping polygons.
	Policy Policy

	// Rule is the fill rule for rings within one polygon.
	Rule FillRule

	// Bands is the number of horizontal row bands the grid is split into.
	// Zero selects one band per worker.
	Bands int

	// Workers limits the number of bands processed concurrently.
	// Zero selects runtime.GOMAXPROCS(0).
	Workers int

	// MaxCells is the safety ceiling for the grid size.
	// Zero or negative disables the check.
	MaxCells int64

	// Flatness is the curve flattening tolerance in cells.
	Flatness float64
}

// DefaultOptions returns last-write-wins, even-odd filling, the default
// cell ceiling and one band per CPU.
func DefaultOptions() Options {
	return Options{
		Policy:   LastWriteWins,
		Rule:     EvenOdd,
		MaxCells: grid.DefaultMaxCells,
		Flatness: defaultFlatness,
	}
}

// Stats reports what happened to the input polygons.
type Stats struct {
	Polygons     int     // number of input polygons
	Rasterized   int     // polygons which reached scan conversion
	Invalid      int     // polygons skipped by validation
	Outside      int     // valid polygons entirely outside the grid
	CellsWritten int64   // cell writes which changed or confirmed a value
	Issues       []error // one entry per skipped polygon
}

// prepared is a polygon ready for scan conversion.
type prepared struct {
	path   *path.Data
	rowMin int // first row whose centre may be covered
	rowMax int // one past the last such row
	value  float64
}

// band is a range of rows owned by exactly one worker.
type band struct {
	y0, y1 int
	shapes []int // indices into the prepared list, in input order
}

// Rasterize burns polys into a new grid with the given geometry.
//
// Polygon values are written verbatim; quantization happens before this
// call. Invalid polygons and polygons outside the grid are skipped and
// counted. The only errors are a geometry exceeding opts.MaxCells, which
// is reported before any allocation, and cancellation of ctx, in which
// case the partially written grid is discarded.
func Rasterize(ctx context.Context, geom grid.Geometry, polys []feature.Polygon, opts Options) (*grid.Grid, Stats, error) {
	stats := Stats{Polygons: len(polys)}
	if err := geom.Validate(opts.MaxCells); err != nil {
		return nil, stats, err
	}
	if opts.Flatness <= 0 {
		opts.Flatness = defaultFlatness
	}

	toGrid := geom.ToGrid()
	extent := geom.Bounds()
	shapes := make([]prepared, 0, len(polys))
	for i := range polys {
		p := &polys[i]
		if err := p.Validate(); err != nil {
			stats.Invalid++
			stats.Issues = append(stats.Issues, fmt.Errorf("polygon %d: %w", i, err))
			continue
		}
		b := p.Bounds()
		if !overlaps(b, extent) {
			stats.Outside++
			continue
		}

		// rows whose centres may lie inside the bounding box, padded by
		// one row; the rasterizer clips exactly
		top := (geom.Origin.Y - b.URy) / geom.CellSize
		bottom := (geom.Origin.Y - b.LLy) / geom.CellSize
		rowMin := max(centerIndex(top)-1, 0)
		rowMax := min(centerIndex(bottom)+1, geom.Height)
		shapes = append(shapes, prepared{
			path:   p.Path(),
			rowMin: rowMin,
			rowMax: rowMax,
			value:  p.Value,
		})
		stats.Rasterized++
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	g, err := grid.New(geom, opts.MaxCells)
	if err != nil {
		return nil, stats, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	nBands := opts.Bands
	if nBands <= 0 {
		nBands = workers
	}
	bands := splitBands(geom.Height, nBands, shapes)

	written := make([]int64, len(bands))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for bi := range bands {
		eg.Go(func() error {
			n, err := burnBand(ctx, g, toGrid, opts, shapes, bands[bi])
			written[bi] = n
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, stats, err
	}

	for _, n := range written {
		stats.CellsWritten += n
	}
	return g, stats, nil
}

// splitBands partitions rows [0, height) into at most n bands of equal
// height and assigns every shape to the bands its row range meets.
func splitBands(height, n int, shapes []prepared) []band {
	n = max(1, min(n, height))
	step := (height + n - 1) / n
	var bands []band
	for y0 := 0; y0 < height; y0 += step {
		bands = append(bands, band{y0: y0, y1: min(y0+step, height)})
	}
	for i, s := range shapes {
		first := s.rowMin / step
		last := (s.rowMax - 1) / step
		for bi := first; bi <= last; bi++ {
			bands[bi].shapes = append(bands[bi].shapes, i)
		}
	}
	return bands
}

// burnBand scan-converts the shapes of one band into the rows the band
// owns. No other goroutine touches these rows.
func burnBand(ctx context.Context, g *grid.Grid, toGrid matrix.Matrix, opts Options, shapes []prepared, b band) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r := NewRasterizer(rect.Rect{
		LLx: 0,
		LLy: float64(b.y0),
		URx: float64(g.Width),
		URy: float64(b.y1),
	})
	r.CTM = toGrid
	r.Flatness = opts.Flatness

	rows := g.Rows(b.y0, b.y1)
	width := g.Width
	var written int64
	for k, si := range b.shapes {
		if k%cancelCheckInterval == cancelCheckInterval-1 {
			if err := ctx.Err(); err != nil {
				return written, err
			}
		}
		s := &shapes[si]
		value := s.value
		r.FillSpans(s.path, opts.Rule, func(y, xMin, xMax int) {
			row := rows[(y-b.y0)*width : (y-b.y0+1)*width]
			switch opts.Policy {
			case MaxValueWins:
				for x := xMin; x < xMax; x++ {
					if old := row[x]; g.IsNoData(old) || value > old {
						row[x] = value
						written++
					}
				}
			default:
				for x := xMin; x < xMax; x++ {
					row[x] = value
				}
				written += int64(xMax - xMin)
			}
		})
	}
	return written, nil
}

func overlaps(a, b rect.Rect) bool {
	return a.LLx < b.URx && a.URx > b.LLx && a.LLy < b.URy && a.URy > b.LLy
}

// cancelCheckInterval is the number of polygons a band processes between
// checks for cancellation.
const cancelCheckInterval = 64
