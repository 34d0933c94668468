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
	"sort"
)

// Index finds the box at a point in the flame graph.
type Index struct {
	// boxes arranged by row and ordered by X1 within each row
	rows [][]Box
}

// NewIndex is the preferred method of initialisation for the Index type.
func NewIndex(boxes []Box) *Index {
	idx := &Index{}
	for _, b := range boxes {
		for len(idx.rows) <= b.Depth {
			idx.rows = append(idx.rows, nil)
		}
		idx.rows[b.Depth] = append(idx.rows[b.Depth], b)
	}
	for _, r := range idx.rows {
		sort.SliceStable(r, func(i, j int) bool {
			return r[i].X1 < r[j].X1
		})
	}
	return idx
}

// Rows returns the number of rows in the index.
func (idx *Index) Rows() int {
	return len(idx.rows)
}

// At returns the box at the x coordinate, in the normalised domain, and the
// depth. The boolean is false if there is no box at that point.
func (idx *Index) At(x float64, depth int) (Box, bool) {
	if depth < 0 || depth >= len(idx.rows) {
		return Box{}, false
	}

	r := idx.rows[depth]

	// the first box that ends after x
	i := sort.Search(len(r), func(i int) bool {
		return r[i].X2 > x
	})
	if i < len(r) && r[i].X1 <= x {
		return r[i], true
	}

	return Box{}, false
}

// DepthAt returns the depth for a y coordinate in pixels. The pixel that
// separates rows belongs to no row and returns -1.
func DepthAt(y int) int {
	if y < 0 {
		return -1
	}
	if y%RowHeight == RowHeight-1 {
		return -1
	}
	return y / RowHeight
}
