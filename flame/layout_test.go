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
	"fmt"
	"testing"

	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/symbols"
	"github.com/jetsetilly/retroprof/test"
)

const (
	addrMain = 0x110
	addrFoo  = 0x210
	addrBar  = 0x310
	addrBaz  = 0x410
)

func testTable() *symbols.Table {
	return symbols.NewTable([]symbols.Symbol{
		{Start: 0x100, End: 0x200, Name: "main", File: "main.c", Line: 1},
		{Start: 0x200, End: 0x300, Name: "foo", File: "foo.c", Line: 10},
		{Start: 0x300, End: 0x400, Name: "bar", File: "bar.c", Line: 20},
		{Start: 0x400, End: 0x500, Name: "baz", File: "lib/baz.c", Line: 30},
	})
}

func scenario() *profiling.Tree {
	return profiling.Aggregate([]profiling.Sample{
		{Stack: []uint32{addrMain, addrFoo}, Weight: 1},
		{Stack: []uint32{addrMain, addrFoo}, Weight: 1},
		{Stack: []uint32{addrMain, addrBar}, Weight: 1},
	}, testTable())
}

func aggregate(tbl *symbols.Table, stack []uint32) *profiling.Tree {
	return profiling.Aggregate([]profiling.Sample{{Stack: stack, Weight: 1}}, tbl)
}

func boxByName(t *testing.T, boxes []flame.Box, depth int, name string) flame.Box {
	t.Helper()
	for _, b := range boxes {
		if b.Depth == depth && b.Loc.Name == name {
			return b
		}
	}
	t.Fatalf("no box for %s at depth %d", name, depth)
	return flame.Box{}
}

func TestLayoutScenario(t *testing.T) {
	boxes := flame.NewLayout(nil).Boxes(scenario())
	test.DemandEquality(t, len(boxes), 4)

	root := boxByName(t, boxes, 0, profiling.RootName)
	test.ExpectEquality(t, root.X1, 0.0)
	test.ExpectEquality(t, root.X2, 1.0)
	test.ExpectEquality(t, root.Y1, 0)
	test.ExpectEquality(t, root.Y2, flame.RowHeight-1)

	main := boxByName(t, boxes, 1, "main")
	test.ExpectEquality(t, main.X1, 0.0)
	test.ExpectEquality(t, main.X2, 1.0)
	test.ExpectEquality(t, main.Y1, flame.RowHeight)
	test.ExpectEquality(t, main.Y2, 2*flame.RowHeight-1)
	test.ExpectEquality(t, main.Loc.File, "main.c")

	foo := boxByName(t, boxes, 2, "foo")
	bar := boxByName(t, boxes, 2, "bar")

	// foo is two thirds of the row and to the left of bar
	test.ExpectEquality(t, foo.X1, 0.0)
	test.ExpectApproximate(t, foo.Width(), 2.0/3.0, 1e-12)
	test.ExpectApproximate(t, bar.Width(), 1.0/3.0, 1e-12)
	test.ExpectEquality(t, foo.X2, bar.X1)
	test.ExpectEquality(t, bar.X2, 1.0)
	test.ExpectSuccess(t, foo.X1 < bar.X1)
}

func TestLayoutEmpty(t *testing.T) {
	tr := profiling.Aggregate(nil, testTable())
	test.ExpectEquality(t, len(flame.NewLayout(nil).Boxes(tr)), 0)

	// samples with zero weight produce nodes with zero weight
	tr = profiling.Aggregate([]profiling.Sample{
		{Stack: []uint32{addrMain}, Weight: 0},
	}, testTable())
	test.ExpectEquality(t, len(flame.NewLayout(nil).Boxes(tr)), 0)
}

func TestLayoutOmitsZeroWeight(t *testing.T) {
	tr := profiling.Aggregate([]profiling.Sample{
		{Stack: []uint32{addrMain, addrFoo}, Weight: 4},
		{Stack: []uint32{addrMain, addrBar}, Weight: 0},
	}, testTable())

	boxes := flame.NewLayout(nil).Boxes(tr)
	test.ExpectEquality(t, len(boxes), 3)
	for _, b := range boxes {
		test.ExpectInequality(t, b.Loc.Name, "bar")
		test.ExpectSuccess(t, b.Width() > 0)
	}
}

// a tree with a mix of weights and depths
func bigTree() *profiling.Tree {
	var samples []profiling.Sample
	addrs := []uint32{addrMain, addrFoo, addrBar, addrBaz, 0x9000}
	for i := 0; i < 500; i++ {
		s := profiling.Sample{Weight: uint64(i*31%17 + 1)}
		for d := 0; d <= i%7; d++ {
			s.Stack = append(s.Stack, addrs[(i*d+d)%len(addrs)])
		}
		samples = append(samples, s)
	}
	return profiling.Aggregate(samples, testTable())
}

func TestLayoutPacking(t *testing.T) {
	tr := bigTree()
	boxes := flame.NewLayout(nil).Boxes(tr)

	byNode := make(map[int]flame.Box)
	for _, b := range boxes {
		byNode[b.Node] = b
	}

	for _, parent := range boxes {
		// children of the parent in layout order
		var children []flame.Box
		for _, c := range tr.Children(parent.Node) {
			if b, ok := byNode[c]; ok {
				children = append(children, b)
			}
		}
		if len(children) == 0 {
			continue
		}

		// the first child starts at the left edge of the parent. there are no
		// gaps or overlaps between siblings
		test.ExpectEquality(t, children[0].X1, parent.X1)
		for i := 1; i < len(children); i++ {
			test.ExpectEquality(t, children[i].X1, children[i-1].X2)
		}

		// siblings fill the parent exactly when the parent has no exclusive
		// weight. otherwise they fill the children's share
		last := children[len(children)-1]
		n := tr.Nodes[parent.Node]
		if n.Exclusive == 0 {
			test.ExpectEquality(t, last.X2, parent.X2)
		} else {
			test.ExpectSuccess(t, last.X2 < parent.X2)
		}

		var sum float64
		for _, c := range children {
			sum += c.Width()
			test.ExpectEquality(t, c.Depth, parent.Depth+1)
			test.ExpectEquality(t, c.Y1, parent.Y1+flame.RowHeight)
		}
		share := float64(n.Inclusive-n.Exclusive) / float64(tr.Total())
		test.ExpectWithin(t, sum, share, 1e-9)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	tr := bigTree()

	a := flame.NewLayout(nil).Boxes(tr)
	b := flame.NewLayout(nil).Boxes(tr)
	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		test.ExpectEquality(t, a[i], b[i], i)
	}

	// a fresh aggregation of the same samples gives the same layout
	c := flame.NewLayout(nil).Boxes(bigTree())
	test.DemandEquality(t, len(a), len(c))
	for i := range a {
		test.ExpectEquality(t, fmt.Sprint(a[i]), fmt.Sprint(c[i]), i)
	}
}

func TestGraphIDs(t *testing.T) {
	tr := profiling.Aggregate([]profiling.Sample{
		{Stack: []uint32{addrMain, addrFoo, addrBar}, Weight: 3},
		{Stack: []uint32{addrMain, addrBar}, Weight: 2},
		{Stack: []uint32{addrMain, addrBar, addrFoo}, Weight: 1},
	}, testTable())

	lay := flame.NewLayout(nil)
	boxes := lay.Boxes(tr)

	// every box for the same function shares an ID and different functions
	// have different IDs
	ids := make(map[string]int32)
	names := make(map[int32]string)
	for _, b := range boxes {
		if id, ok := ids[b.Loc.Name]; ok {
			test.ExpectEquality(t, b.GraphID, id, b.Loc.Name)
		} else {
			ids[b.Loc.Name] = b.GraphID
		}
		if n, ok := names[b.GraphID]; ok {
			test.ExpectEquality(t, b.Loc.Name, n)
		} else {
			names[b.GraphID] = b.Loc.Name
		}
	}
	test.ExpectEquality(t, len(ids), 4)
	test.ExpectEquality(t, lay.NumIDs(), 4)

	// IDs are stable over repeated layouts with the same Layout
	again := lay.Boxes(tr)
	for i := range boxes {
		test.ExpectEquality(t, again[i].GraphID, boxes[i].GraphID)
	}

	foo := tr.Nodes[boxByName(t, boxes, 2, "foo").Node].Symbol
	test.ExpectEquality(t, lay.GraphID(foo), ids["foo"])
	test.ExpectEquality(t, lay.Symbol(ids["foo"]), foo)
	test.ExpectEquality(t, lay.GraphID(&symbols.Symbol{Name: "missing"}), int32(-1))
	test.ExpectSuccess(t, lay.Symbol(-1) == nil)
	test.ExpectSuccess(t, lay.Symbol(100) == nil)
}

func TestSearch(t *testing.T) {
	lay := flame.NewLayout(nil)
	lay.Boxes(bigTree())

	ids := lay.Search("BA")
	test.DemandEquality(t, len(ids), 2)
	for _, id := range ids {
		n := lay.Symbol(id).Name
		test.ExpectSuccess(t, n == "bar" || n == "baz", n)
	}
	test.ExpectSuccess(t, ids[0] < ids[1])

	// the root is never a search result
	test.ExpectEquality(t, len(lay.Search("root")), 0)
	test.ExpectEquality(t, len(lay.Search("  ")), 0)
	test.ExpectEquality(t, len(lay.Search(symbols.UnresolvedName)), 1)
}

func TestSearchAfterReload(t *testing.T) {
	lay := flame.NewLayout(nil)
	lay.Boxes(aggregate(testTable(), []uint32{addrMain, addrFoo}))
	fooID := lay.Search("foo")
	test.DemandEquality(t, len(fooID), 1)

	// foo is no longer in the profile but keeps its graph ID
	lay.Boxes(aggregate(testTable(), []uint32{addrMain, addrBar}))
	test.ExpectEquality(t, len(lay.Search("foo")), 0)
	test.ExpectEquality(t, len(lay.Search("bar")), 1)
	test.ExpectEquality(t, lay.Symbol(fooID[0]).Name, "foo")

	// foo returns with the same ID
	lay.Boxes(aggregate(testTable(), []uint32{addrMain, addrFoo}))
	ids := lay.Search("foo")
	test.DemandEquality(t, len(ids), 1)
	test.ExpectEquality(t, ids[0], fooID[0])

	// an empty profile has no search results
	lay.Boxes(profiling.Aggregate(nil, testTable()))
	test.ExpectEquality(t, len(lay.Search("main")), 0)
}

func TestSymbolAfterReload(t *testing.T) {
	lay := flame.NewLayout(nil)
	lay.Boxes(aggregate(testTable(), []uint32{addrMain, addrFoo}))
	id := lay.Search("foo")
	test.DemandEquality(t, len(id), 1)
	test.ExpectEquality(t, lay.Symbol(id[0]).Line, 10)

	// foo has moved in the new listing. the key is unchanged so the ID is the
	// same but the symbol is from the new table
	moved := symbols.NewTable([]symbols.Symbol{
		{Start: 0x100, End: 0x200, Name: "main", File: "main.c", Line: 1},
		{Start: 0x200, End: 0x300, Name: "foo", File: "foo.c", Line: 15},
	})
	tr := aggregate(moved, []uint32{addrMain, addrFoo})
	lay.Boxes(tr)
	test.ExpectEquality(t, lay.Search("foo")[0], id[0])
	test.ExpectEquality(t, lay.Symbol(id[0]).Line, 15)
	test.ExpectEquality(t, lay.Symbol(id[0]), moved.Find("foo")[0])
}

func TestCategoryAndColor(t *testing.T) {
	tr := profiling.Aggregate([]profiling.Sample{
		{Stack: []uint32{addrMain, 0x9000}, Weight: 1},
		{Stack: []uint32{addrMain, addrFoo}, Weight: 1},
		{Stack: []uint32{addrBar, addrFoo}, Weight: 1},
	}, testTable())

	boxes := flame.NewLayout(nil).Boxes(tr)

	u := boxByName(t, boxes, 2, symbols.UnresolvedName)
	test.ExpectEquality(t, u.Category, flame.CategoryUnknown)

	main := boxByName(t, boxes, 1, "main")
	test.ExpectEquality(t, main.Category, flame.CategoryUser)

	// all boxes are opaque and the same function has the same colour
	var fooColor uint32
	for _, b := range boxes {
		test.ExpectEquality(t, flame.Unpack(b.Color).A, uint8(0xff))
		if b.Loc.Name == "foo" {
			if fooColor == 0 {
				fooColor = b.Color
			}
			test.ExpectEquality(t, b.Color, fooColor)
		}
	}

	// the classifier is only called once per function
	calls := make(map[string]int)
	lay := flame.NewLayout(func(sym *symbols.Symbol) flame.Category {
		calls[sym.Key()]++
		return flame.CategoryRuntime
	})
	boxes = lay.Boxes(tr)
	lay.Boxes(tr)
	for k, n := range calls {
		test.ExpectEquality(t, n, 1, k)
	}
	test.ExpectEquality(t, boxByName(t, boxes, 1, "bar").Category, flame.CategoryRuntime)
}

func TestCategoryStrings(t *testing.T) {
	for _, c := range []flame.Category{flame.CategoryUnknown, flame.CategoryUser, flame.CategoryLibrary, flame.CategoryRuntime} {
		p, err := flame.ParseCategory(c.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, c)
	}
	_, err := flame.ParseCategory("kernel")
	test.ExpectFailure(t, err)
}
