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

// Command export runs the isoband pipeline on every test case and writes
// the input polygons and the resulting contours as GeoJSON, one file per
// test case. Run from the module root directory.
package main

import (
	"context"
	"flag"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	geojson "github.com/paulmach/go.geojson"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isoband"
	"seehuhn.de/go/isoband/classify"
	"seehuhn.de/go/isoband/feature"
	"seehuhn.de/go/isoband/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/geojson", "output directory")
	minLength := flag.Float64("min-length", 0, "drop contours shorter than this")
	simplify := flag.Float64("simplify", 0, "Douglas-Peucker tolerance")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name

			cfg := isoband.DefaultConfig()
			cfg.Policy = tc.Policy
			cfg.FillRule = tc.Rule
			cfg.MinLength = *minLength
			cfg.Simplify = *simplify

			res, err := isoband.Run(ctx, cfg, tc.Geometry, tc.Polygons)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			if err := res.Report.Err(); err != nil {
				log.Printf("%s: %d issues", name, len(res.Report.Issues))
			}

			fc := geojson.NewFeatureCollection()
			for i := range tc.Polygons {
				if f := polygonFeature(&tc.Polygons[i]); f != nil {
					f.SetProperty("index", i)
					fc.AddFeature(f)
				}
			}
			for i := range res.Contours {
				fc.AddFeature(contourFeature(&res.Contours[i]))
			}

			data, err := fc.MarshalJSON()
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			fname := filepath.Join(*outDir, name+".geojson")
			if err := os.WriteFile(fname, data, 0644); err != nil {
				log.Fatal(err)
			}
			log.Printf("%s: %d polygons, %d contours", name, len(tc.Polygons), len(res.Contours))
		}
	}
}

// polygonFeature converts an input polygon. Invalid polygons, which
// cannot be represented in GeoJSON, are skipped.
func polygonFeature(p *feature.Polygon) *geojson.Feature {
	if p.Validate() != nil {
		return nil
	}
	rings := make([][][]float64, len(p.Rings))
	for i, ring := range p.Rings {
		rings[i] = closedCoords(ring)
	}
	f := geojson.NewPolygonFeature(rings)
	f.SetProperty("kind", "input")
	f.SetProperty("value", p.Value)
	return f
}

func contourFeature(c *classify.Contour) *geojson.Feature {
	coords := make([][]float64, len(c.Points))
	for i, p := range c.Points {
		coords[i] = []float64{p.X, p.Y}
	}
	f := geojson.NewLineStringFeature(coords)
	f.SetProperty("kind", "contour")
	f.SetProperty("level", c.Level)
	f.SetProperty("class_id", c.Class)
	f.SetProperty("class_range", c.Range)
	f.SetProperty("closed", c.Closed)
	return f
}

// closedCoords returns the ring as GeoJSON coordinates, repeating the
// first point at the end if necessary.
func closedCoords(ring []vec.Vec2) [][]float64 {
	coords := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, []float64{p.X, p.Y})
	}
	if ring[0] != ring[len(ring)-1] {
		coords = append(coords, []float64{ring[0].X, ring[0].Y})
	}
	return coords
}
