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
	"github.com/jetsetilly/retroprof/flame"
)

// disabled is the BoxRenderer used when there is no GL device. It draws
// nothing but keeps track of the state it is given so that the host can
// continue to work.
type disabled struct {
	state State
}

// Disabled returns true if the BoxRenderer does not draw.
func Disabled(rnd BoxRenderer) bool {
	_, ok := rnd.(*disabled)
	return ok
}

func (rnd *disabled) SetBoxes(boxes []flame.Box) {
	rnd.state.VertexCount = len(boxes) * verticesPerBox
}

func (rnd *disabled) SetBounds(bounds flame.Bounds, size Size, scale float64) {
	rnd.state.Bounds = bounds
	rnd.state.Size = size
	if scale > 0 {
		rnd.state.Scale = scale
	}
}

func (rnd *disabled) SetHovered(id int32) {
	rnd.state.Hovered = id
}

func (rnd *disabled) SetFocused(id int32) {
	rnd.state.Focused = id
}

func (rnd *disabled) SetFocusColor(css string) {
	if c, ok := ParseColor(css); ok {
		rnd.state.FocusColor = c
	}
}

func (rnd *disabled) Redraw() {
}

func (rnd *disabled) State() State {
	return rnd.state
}

func (rnd *disabled) Destroy() {
}
