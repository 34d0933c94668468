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

// RowHeight is the height of a row of boxes in pixels. The bottom pixel of
// every row is left empty to separate it from the next row.
const RowHeight = 20

// Location of the function represented by a box.
type Location struct {
	Name string
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return l.Name
	}
	return fmt.Sprintf("%s (%s:%d)", l.Name, l.File, l.Line)
}

// Box is a single rectangle in the flame graph.
type Box struct {
	// horizontal extent in the range 0 to 1
	X1, X2 float64

	// vertical extent in pixels
	Y1, Y2 int

	Depth int

	// identifies the function. shared by all boxes for the same function
	GraphID int32

	Category Category

	// packed RGBA colour. red is in the least significant byte
	Color uint32

	// index of the node in profiling.Tree.Nodes
	Node int

	Loc Location
}

// Width of the box in the normalised domain.
func (b Box) Width() float64 {
	return b.X2 - b.X1
}

func (b Box) String() string {
	return fmt.Sprintf("%d [%.6f, %.6f] id=%d %s", b.Depth, b.X1, b.X2, b.GraphID, b.Loc)
}

// rowExtent returns the vertical extent for a depth.
func rowExtent(depth int) (int, int) {
	y1 := depth * RowHeight
	return y1, y1 + RowHeight - 1
}
