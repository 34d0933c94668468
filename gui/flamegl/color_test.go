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

package flamegl_test

import (
	"testing"

	"github.com/jetsetilly/retroprof/gui/flamegl"
	"github.com/jetsetilly/retroprof/test"
)

func TestParseColor(t *testing.T) {
	for _, c := range []struct {
		css      string
		expected flamegl.Color
	}{
		{"rgb(255,0,0)", flamegl.Color{1, 0, 0, 1}},
		{"rgb( 0 , 255 , 0 )", flamegl.Color{0, 1, 0, 1}},
		{"rgba(255,255,255,1)", flamegl.Color{1, 1, 1, 1}},
		{"rgba(0,0,255,0.25)", flamegl.Color{0, 0, 1, 0.25}},
		{"  rgb(51,102,204)  ", flamegl.Color{0.2, 0.4, 0.8, 1}},

		// out of range values are clamped
		{"rgba(300,-10,0,2)", flamegl.Color{1, 0, 0, 1}},

		// rgb with an alpha channel is accepted
		{"rgb(0,0,0,0.5)", flamegl.Color{0, 0, 0, 0.5}},
	} {
		v, ok := flamegl.ParseColor(c.css)
		test.ExpectSuccess(t, ok, c.css)
		for i := range v {
			test.ExpectWithin(t, float64(v[i]), float64(c.expected[i]), 1e-6, c.css, i)
		}
	}
}

func TestParseColorMalformed(t *testing.T) {
	for _, css := range []string{
		"",
		"not-a-color",
		"#ff0000",
		"red",
		"rgb(255,0)",
		"rgb(255,0,0,1,1)",
		"rgb(a,b,c)",
		"rgb(255,0,0",
		"hsl(0,100,50)",
		"rgb(NaN,0,0)",
	} {
		_, ok := flamegl.ParseColor(css)
		test.ExpectFailure(t, ok, css)
	}
}
