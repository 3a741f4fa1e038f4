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

// Package grid implements a dense two-dimensional value grid together with
// the geometry which places it in world coordinates.
//
// Row 0 is the top row of the grid. The world y coordinate decreases with
// increasing row index, matching the usual north-up raster layout.
package grid

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrInvalidGeometry indicates grid geometry with a non-positive or
	// non-finite cell size or dimension.
	ErrInvalidGeometry = errors.New("grid: invalid geometry")

	// ErrTooLarge indicates that the grid would exceed the configured cell
	// ceiling. It is reported before any memory is allocated.
	ErrTooLarge = errors.New("grid: too large")
)

const (
	// DefaultMaxCells is the default safety ceiling for the number of cells.
	DefaultMaxCells int64 = 4_000_000_000

	// LargeCells is the cell count above which a grid is considered large
	// enough to be worth a warning to the user.
	LargeCells int64 = 100_000_000
)

// Geometry places a grid in world coordinates.
type Geometry struct {
	// Origin is the world coordinate of the top-left grid corner.
	Origin vec.Vec2

	// CellSize is the side length of a square cell in world units.
	CellSize float64

	// Width and Height are the number of columns and rows.
	Width, Height int

	// NoData marks cells which hold no value. NaN is allowed.
	NoData float64
}

// FromBounds computes the geometry covering the given world bounds at the
// given resolution. The grid starts at the top-left corner of the bounds
// and has at least one row and one column.
func FromBounds(b rect.Rect, resolution float64, nodata float64) (Geometry, error) {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return Geometry{}, fmt.Errorf("%w: resolution %g", ErrInvalidGeometry, resolution)
	}
	w := b.URx - b.LLx
	h := b.URy - b.LLy
	if !(w >= 0 && h >= 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Geometry{}, fmt.Errorf("%w: bounds %v", ErrInvalidGeometry, b)
	}
	cols := math.Ceil(w / resolution)
	rows := math.Ceil(h / resolution)
	if cols > math.MaxInt32 || rows > math.MaxInt32 {
		return Geometry{}, fmt.Errorf("%w: %.0f x %.0f cells", ErrTooLarge, cols, rows)
	}
	return Geometry{
		Origin:   vec.Vec2{X: b.LLx, Y: b.URy},
		CellSize: resolution,
		Width:    max(int(cols), 1),
		Height:   max(int(rows), 1),
		NoData:   nodata,
	}, nil
}

// Cells returns the number of cells.
func (g Geometry) Cells() int64 {
	return int64(g.Width) * int64(g.Height)
}

// Validate checks the geometry and the cell count against maxCells.
// A non-positive maxCells disables the ceiling.
func (g Geometry) Validate(maxCells int64) error {
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("%w: cell size %g", ErrInvalidGeometry, g.CellSize)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d cells", ErrInvalidGeometry, g.Width, g.Height)
	}
	if !isFinite(g.Origin.X) || !isFinite(g.Origin.Y) {
		return fmt.Errorf("%w: origin %v", ErrInvalidGeometry, g.Origin)
	}
	if maxCells > 0 && g.Cells() > maxCells {
		return fmt.Errorf("%w: %dx%d = %d cells exceeds limit %d",
			ErrTooLarge, g.Width, g.Height, g.Cells(), maxCells)
	}
	return nil
}

// Bounds returns the world rectangle covered by the grid.
func (g Geometry) Bounds() rect.Rect {
	return rect.Rect{
		LLx: g.Origin.X,
		LLy: g.Origin.Y - float64(g.Height)*g.CellSize,
		URx: g.Origin.X + float64(g.Width)*g.CellSize,
		URy: g.Origin.Y,
	}
}

// ToGrid returns the transformation from world coordinates to grid
// coordinates. In grid coordinates, cell (c, r) covers [c, c+1) x [r, r+1).
func (g Geometry) ToGrid() matrix.Matrix {
	s := g.CellSize
	return matrix.Matrix{1 / s, 0, 0, -1 / s, -g.Origin.X / s, g.Origin.Y / s}
}

// ToWorld returns the transformation from grid coordinates to world
// coordinates. It is the inverse of ToGrid.
func (g Geometry) ToWorld() matrix.Matrix {
	s := g.CellSize
	return matrix.Matrix{s, 0, 0, -s, g.Origin.X, g.Origin.Y}
}

// GridToWorld maps a point in grid coordinates to world coordinates.
func (g Geometry) GridToWorld(gx, gy float64) vec.Vec2 {
	return vec.Vec2{
		X: g.Origin.X + gx*g.CellSize,
		Y: g.Origin.Y - gy*g.CellSize,
	}
}

// CellCenter returns the world coordinate of the centre of cell (col, row).
func (g Geometry) CellCenter(col, row int) vec.Vec2 {
	return g.GridToWorld(float64(col)+0.5, float64(row)+0.5)
}

// IsNoData reports whether v is the nodata value.
func (g Geometry) IsNoData(v float64) bool {
	if math.IsNaN(g.NoData) {
		return math.IsNaN(v)
	}
	return v == g.NoData
}

// Grid is a dense row-major array of cell values.
//
// A Grid is written by exactly one owner while it is being populated and
// is read-only afterwards. Concurrent readers are safe once writing is done.
type Grid struct {
	Geometry

	// Data holds Width*Height values, row by row starting at the top.
	Data []float64
}

// New allocates a grid filled with the nodata value. The geometry is
// validated against maxCells before any allocation takes place.
func New(geom Geometry, maxCells int64) (*Grid, error) {
	if err := geom.Validate(maxCells); err != nil {
		return nil, err
	}
	data := make([]float64, geom.Cells())
	if geom.NoData != 0 || math.Signbit(geom.NoData) {
		for i := range data {
			data[i] = geom.NoData
		}
	}
	return &Grid{Geometry: geom, Data: data}, nil
}

// At returns the value of cell (col, row).
func (g *Grid) At(col, row int) float64 {
	return g.Data[row*g.Width+col]
}

// Set changes the value of cell (col, row).
func (g *Grid) Set(col, row int, v float64) {
	g.Data[row*g.Width+col] = v
}

// Row returns the values of one grid row. The returned slice aliases the
// grid data.
func (g *Grid) Row(row int) []float64 {
	start := row * g.Width
	return g.Data[start : start+g.Width : start+g.Width]
}

// Rows returns the rows [y0, y1) as one contiguous slice aliasing the grid
// data. Disjoint row ranges can be written concurrently.
func (g *Grid) Rows(y0, y1 int) []float64 {
	return g.Data[y0*g.Width : y1*g.Width : y1*g.Width]
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
