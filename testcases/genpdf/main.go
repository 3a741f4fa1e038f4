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

// Command genpdf draws the classified grid and the contours of every test
// case into a PDF file, for visual inspection. Run from the module root
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/isoband"
	"seehuhn.de/go/isoband/quantize"
	"seehuhn.de/go/isoband/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/pdf", "output directory")
	pageSize := flag.Float64("size", 512, "page width in points")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(*outDir, name+".pdf")

			cfg := isoband.DefaultConfig()
			cfg.Policy = tc.Policy
			cfg.FillRule = tc.Rule
			res, err := isoband.Run(context.Background(), cfg, tc.Geometry, tc.Polygons)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}

			if err := generatePDF(res, cfg.Buckets, pdfPath, *pageSize); err != nil {
				log.Fatal(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(res *isoband.Result, b quantize.Buckets, pdfPath string, width float64) error {
	g := res.Grid
	scale := width / float64(g.Width)
	paper := &pdf.Rectangle{
		URx: float64(g.Width) * scale,
		URy: float64(g.Height) * scale,
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// nodata stays white
	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, paper.URx, paper.URy)
	page.Fill()

	// Grid rows count downwards from the top of the page.
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, paper.URy})

	// One fill per value, with runs of equal cells merged.
	runs := make(map[float64][][3]int)
	for row := range g.Height {
		data := g.Row(row)
		for x0 := 0; x0 < g.Width; {
			v := data[x0]
			x1 := x0 + 1
			for x1 < g.Width && data[x1] == v {
				x1++
			}
			if !g.IsNoData(v) {
				runs[v] = append(runs[v], [3]int{row, x0, x1})
			}
			x0 = x1
		}
	}
	k := float64(b.K())
	for _, v := range slices.Sorted(maps.Keys(runs)) {
		class := float64(b.Class(v))
		page.SetFillColor(color.DeviceGray(0.9 - 0.7*(class-1)/(k-1)))
		for _, r := range runs[v] {
			page.Rectangle(float64(r[1]), float64(r[0]), float64(r[2]-r[1]), 1)
		}
		page.Fill()
	}

	// Contours are given in world coordinates.
	toGrid := func(x, y float64) (float64, float64) {
		return (x - g.Origin.X) / g.CellSize, (g.Origin.Y - y) / g.CellSize
	}
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.15)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, c := range res.Contours {
		for i, p := range c.Points {
			x, y := toGrid(p.X, p.Y)
			if i == 0 {
				page.MoveTo(x, y)
			} else {
				page.LineTo(x, y)
			}
		}
		if c.Closed {
			page.ClosePath()
		}
	}
	if len(res.Contours) > 0 {
		page.Stroke()
	}

	return page.Close()
}
