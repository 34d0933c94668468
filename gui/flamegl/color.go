// This file is part of Retroprof.
//
// Retroprof is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroprof is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroprof.  If not, see <https://www.gnu.org/licenses/>.

package flamegl

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Color is a colour with each channel normalised to the range 0 to 1.
type Color [4]float32

// White is the default focus colour.
var White = Color{1, 1, 1, 1}

var cssColor = regexp.MustCompile(`^rgba?\((.*)\)$`)

// ParseColor parses a CSS colour of the form rgb(r, g, b) or rgba(r, g, b, a).
// The red, green and blue channels are in the range 0 to 255 and the alpha
// channel, if present, in the range 0 to 1. A missing alpha channel is fully
// opaque. Out of range values are clamped.
//
// The boolean is false if the string is not a colour of that form.
func ParseColor(s string) (Color, bool) {
	m := cssColor.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Color{}, false
	}

	parts := strings.Split(m[1], ",")
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	c := Color{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Color{}, false
		}
		if i < 3 {
			v /= 255
		}
		c[i] = float32(min(max(v, 0), 1))
	}

	return c, true
}
