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
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// ErrInvalidAttribute indicates that the classified attribute is missing
// from a property bag or is not numeric.
var ErrInvalidAttribute = errors.New("feature: invalid attribute")

// FromProperties builds a typed polygon from decoded ring coordinates and a
// dynamic property bag, as produced by vector format readers. The
// attribute named by field must hold a number.
//
// Rings are given as lists of [x, y] pairs. The returned polygon is marked
// valid if the attribute could be decoded; its geometry is checked later
// by Validate.
func FromProperties(rings [][][2]float64, props map[string]any, field string) (Polygon, error) {
	raw, ok := props[field]
	if !ok {
		return Polygon{}, fmt.Errorf("%w: %q missing", ErrInvalidAttribute, field)
	}
	v, err := toFloat(raw)
	if err != nil {
		return Polygon{}, fmt.Errorf("%w: %q: %v", ErrInvalidAttribute, field, err)
	}

	p := Polygon{
		Rings: make([][]vec.Vec2, len(rings)),
		Value: v,
		Valid: true,
	}
	for i, ring := range rings {
		r := make([]vec.Vec2, len(ring))
		for j, xy := range ring {
			r[j] = vec.Vec2{X: xy[0], Y: xy[1]}
		}
		p.Rings[i] = r
	}
	return p, nil
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case nil:
		return 0, errors.New("null value")
	}
	return 0, fmt.Errorf("unsupported type %T", raw)
}
