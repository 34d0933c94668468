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
	"fmt"
)

// MinBoundsWidth is the narrowest window that Clamp() allows.
const MinBoundsWidth = 1e-6

// Bounds is the visible horizontal window of the flame graph, in the same
// normalised domain as the boxes.
type Bounds struct {
	MinX float64
	MaxX float64
}

// FullBounds shows the entire flame graph.
func FullBounds() Bounds {
	return Bounds{MinX: 0, MaxX: 1}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%.6f, %.6f]", b.MinX, b.MaxX)
}

// Width of the window.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Clamp the window so that it is inside the range 0 to 1 and no narrower than
// MinBoundsWidth. A window that is too wide is reduced to the full range. A
// window that is outside the range is moved back without changing its width.
func (b Bounds) Clamp() Bounds {
	if b.MaxX < b.MinX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}

	w := b.Width()
	if w >= 1 {
		return FullBounds()
	}
	if w < MinBoundsWidth {
		c := b.MinX + w/2
		b.MinX = c - MinBoundsWidth/2
		b.MaxX = c + MinBoundsWidth/2
		w = MinBoundsWidth
	}

	if b.MinX < 0 {
		b.MinX = 0
		b.MaxX = w
	}
	if b.MaxX > 1 {
		b.MaxX = 1
		b.MinX = 1 - w
	}

	return b
}

// Zoom the window by the factor, keeping the anchor in the same position on
// screen. The anchor is in the normalised domain. A factor less than one zooms
// in.
func (b Bounds) Zoom(factor float64, anchor float64) Bounds {
	if factor <= 0 {
		return b
	}
	return Bounds{
		MinX: anchor - (anchor-b.MinX)*factor,
		MaxX: anchor + (b.MaxX-anchor)*factor,
	}.Clamp()
}

// Pan the window by dx, in the normalised domain.
func (b Bounds) Pan(dx float64) Bounds {
	return Bounds{
		MinX: b.MinX + dx,
		MaxX: b.MaxX + dx,
	}.Clamp()
}

// PanPixels pans the window by a distance in pixels on a view of the given
// width. A positive distance moves the graph to the right, which is the
// direction of a drag.
func (b Bounds) PanPixels(dpx float64, width float64) Bounds {
	if width <= 0 {
		return b
	}
	return b.Pan(-dpx / width * b.Width())
}

// ToData converts a pixel x coordinate on a view of the given width into the
// normalised domain.
func (b Bounds) ToData(px float64, width float64) float64 {
	if width <= 0 {
		return b.MinX
	}
	return b.MinX + px/width*b.Width()
}

// ToPixels is the inverse of ToData().
func (b Bounds) ToPixels(x float64, width float64) float64 {
	w := b.Width()
	if w <= 0 {
		return 0
	}
	return (x - b.MinX) / w * width
}

// BoxBounds returns a window that shows the box with a small margin either
// side.
func BoxBounds(box Box) Bounds {
	m := box.Width() * 0.05
	return Bounds{
		MinX: box.X1 - m,
		MaxX: box.X2 + m,
	}.Clamp()
}
