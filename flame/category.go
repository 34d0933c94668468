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

package flame

import (
	"image/color"
	"math"
	"strings"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/symbols"
)

// Category is the colouring class of a box.
type Category int32

// List of valid Category values.
const (
	CategoryUnknown Category = iota
	CategoryUser
	CategoryLibrary
	CategoryRuntime
)

func (c Category) String() string {
	switch c {
	case CategoryUnknown:
		return "unknown"
	case CategoryUser:
		return "user"
	case CategoryLibrary:
		return "library"
	case CategoryRuntime:
		return "runtime"
	}
	return "invalid category"
}

// ParseCategory is the inverse of Category.String().
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown":
		return CategoryUnknown, nil
	case "user":
		return CategoryUser, nil
	case "library":
		return CategoryLibrary, nil
	case "runtime":
		return CategoryRuntime, nil
	}
	return CategoryUnknown, curated.Errorf("flame: unrecognised category (%s)", s)
}

// Classifier decides the category of a symbol.
type Classifier func(sym *symbols.Symbol) Category

// DefaultClassifier puts unresolved addresses in CategoryUnknown and
// everything else in CategoryUser.
func DefaultClassifier(sym *symbols.Symbol) Category {
	if sym == symbols.Unresolved {
		return CategoryUnknown
	}
	return CategoryUser
}

// the colour of the root box
var rootColor = color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}

// colorFor returns the colour for a function. the hue range is decided by the
// category and the position within the range by the function name, so that
// the colour is stable for the function and distinct from its neighbours.
func colorFor(name string, cat Category) color.RGBA {
	v1 := namehash(name)
	v2 := namehash(reverse(name))

	var c color.RGBA
	switch cat {
	case CategoryUser:
		c = hsv(10+40*v1, 0.65+0.25*v2, 0.95)
	case CategoryLibrary:
		c = hsv(195+40*v1, 0.45+0.25*v2, 0.90)
	case CategoryRuntime:
		c = hsv(95+40*v1, 0.45+0.25*v2, 0.80)
	default:
		c = hsv(0, 0, 0.50+0.20*v1)
	}
	c.A = 0xff

	return c
}

// pack the colour into a uint32 with red in the least significant byte. this
// is the byte order expected by the colour attribute of the shader.
func pack(c color.RGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Unpack is the inverse of the packing used for Box.Color.
func Unpack(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// namehash returns a value in the range 0 to 1 for the name. only the first
// few characters contribute to the value.
func namehash(name string) float64 {
	vector := 0.0
	weight := 1.0
	max := 1.0
	mod := 10
	for _, c := range name {
		i := int(c) % mod

		vector += float64(i) / float64(mod-1) * weight
		mod++
		max += weight
		weight *= 0.7

		if mod > 13 {
			break
		}
	}
	return 1.0 - vector/max
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// hsv converts hue (in degrees), saturation and value into RGB
func hsv(h, s, v float64) color.RGBA {
	f := func(n int) uint8 {
		k := math.Mod(float64(n)+h/60.0, 6.0)
		c := v - v*s*max(0.0, min(k, 4.0-k, 1.0))
		return uint8(math.Round(c * 255))
	}

	return color.RGBA{
		R: f(5),
		G: f(3),
		B: f(1),
	}
}
