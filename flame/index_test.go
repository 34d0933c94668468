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

package flame_test

import (
	"testing"

	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/test"
)

func TestIndex(t *testing.T) {
	boxes := flame.NewLayout(nil).Boxes(scenario())
	idx := flame.NewIndex(boxes)
	test.ExpectEquality(t, idx.Rows(), 3)

	b, ok := idx.At(0.5, 1)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b.Loc.Name, "main")

	b, ok = idx.At(0.1, 2)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b.Loc.Name, "foo")

	b, ok = idx.At(0.9, 2)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b.Loc.Name, "bar")

	// the shared edge belongs to the box on the right
	edge := boxByName(t, boxes, 2, "foo").X2
	b, ok = idx.At(edge, 2)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b.Loc.Name, "bar")

	// outside the graph
	_, ok = idx.At(1.0, 2)
	test.ExpectFailure(t, ok)
	_, ok = idx.At(-0.1, 2)
	test.ExpectFailure(t, ok)
	_, ok = idx.At(0.5, 3)
	test.ExpectFailure(t, ok)
	_, ok = idx.At(0.5, -1)
	test.ExpectFailure(t, ok)
}

func TestIndexGap(t *testing.T) {
	// boxes that don't fill the row
	idx := flame.NewIndex([]flame.Box{
		{X1: 0.5, X2: 0.75, Depth: 1},
		{X1: 0.0, X2: 0.25, Depth: 1},
	})
	_, ok := idx.At(0.3, 1)
	test.ExpectFailure(t, ok)
	b, ok := idx.At(0.1, 1)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b.X1, 0.0)

	// no boxes at depth zero
	_, ok = idx.At(0.1, 0)
	test.ExpectFailure(t, ok)
}

func TestDepthAt(t *testing.T) {
	test.ExpectEquality(t, flame.DepthAt(-1), -1)
	test.ExpectEquality(t, flame.DepthAt(0), 0)
	test.ExpectEquality(t, flame.DepthAt(flame.RowHeight-2), 0)
	test.ExpectEquality(t, flame.DepthAt(flame.RowHeight-1), -1)
	test.ExpectEquality(t, flame.DepthAt(flame.RowHeight), 1)
	test.ExpectEquality(t, flame.DepthAt(5*flame.RowHeight+3), 5)
}
