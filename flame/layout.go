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
	"strings"

	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/symbols"
)

// style is the category and colour of a function. computed once per function
type style struct {
	category Category
	color    uint32
}

// Layout converts call trees into boxes. The Layout remembers the graph IDs
// and styles of the functions it has seen so that they are stable over
// repeated layouts.
type Layout struct {
	cls Classifier

	// graph IDs indexed by symbol key. IDs are assigned in the order that
	// functions are first encountered
	ids map[string]int32

	// symbols indexed by graph ID. the symbol is replaced by the most recently
	// laid out symbol with the same key
	syms []*symbols.Symbol

	// graph IDs that appear in the most recent layout
	present []bool

	styles map[string]style
}

// NewLayout is the preferred method of initialisation for the Layout type. A
// nil Classifier is replaced with DefaultClassifier.
func NewLayout(cls Classifier) *Layout {
	if cls == nil {
		cls = DefaultClassifier
	}
	return &Layout{
		cls:    cls,
		ids:    make(map[string]int32),
		styles: make(map[string]style),
	}
}

// Boxes lays out the tree. The width of each box is the inclusive weight of
// the node as a fraction of the root weight. Nodes with no weight are not laid
// out and an empty tree produces no boxes.
//
// The root of the tree is laid out as a box on row zero that covers the full
// width.
func (l *Layout) Boxes(t *profiling.Tree) []Box {
	clear(l.present)

	total := t.Root().Inclusive
	if total == 0 {
		return nil
	}

	boxes := make([]Box, 0, len(t.Nodes))

	// offset is the running total of the weight to the left of the node. x
	// coordinates are always derived from the integer offsets so that the
	// right edge of a box is exactly equal to the left edge of the next
	var place func(i int, offset uint64)
	place = func(i int, offset uint64) {
		n := &t.Nodes[i]
		if n.Inclusive == 0 {
			return
		}

		id := l.graphID(n.Symbol)
		st := l.style(i, n.Symbol)
		y1, y2 := rowExtent(n.Depth)

		boxes = append(boxes, Box{
			X1:       float64(offset) / float64(total),
			X2:       float64(offset+n.Inclusive) / float64(total),
			Y1:       y1,
			Y2:       y2,
			Depth:    n.Depth,
			GraphID:  id,
			Category: st.category,
			Color:    st.color,
			Node:     i,
			Loc: Location{
				Name: n.Symbol.Name,
				File: n.Symbol.File,
				Line: n.Symbol.Line,
			},
		})

		for _, c := range t.Children(i) {
			place(c, offset)
			offset += t.Nodes[c].Inclusive
		}
	}
	place(profiling.Root, 0)

	return boxes
}

// graphID returns the ID for the symbol, assigning a new one if necessary.
func (l *Layout) graphID(sym *symbols.Symbol) int32 {
	key := sym.Key()
	if id, ok := l.ids[key]; ok {
		l.syms[id] = sym
		l.present[id] = true
		return id
	}
	id := int32(len(l.syms))
	l.ids[key] = id
	l.syms = append(l.syms, sym)
	l.present = append(l.present, true)
	return id
}

func (l *Layout) style(node int, sym *symbols.Symbol) style {
	key := sym.Key()
	if st, ok := l.styles[key]; ok {
		return st
	}

	var st style
	if node == profiling.Root {
		st = style{category: CategoryUnknown, color: pack(rootColor)}
	} else {
		st.category = l.cls(sym)
		st.color = pack(colorFor(sym.Name, st.category))
	}

	l.styles[key] = st
	return st
}

// GraphID returns the ID for the symbol or -1 if the symbol has not been laid
// out.
func (l *Layout) GraphID(sym *symbols.Symbol) int32 {
	if id, ok := l.ids[sym.Key()]; ok {
		return id
	}
	return -1
}

// Symbol returns the symbol for the graph ID or nil if the ID is not known.
func (l *Layout) Symbol(id int32) *symbols.Symbol {
	if id < 0 || int(id) >= len(l.syms) {
		return nil
	}
	return l.syms[id]
}

// NumIDs returns the number of graph IDs that have been assigned.
func (l *Layout) NumIDs() int {
	return len(l.syms)
}

// Search returns the graph IDs of the functions whose name contains the text.
// Only functions in the most recent layout are returned. Matching is not case
// sensitive. IDs are returned in ascending order.
func (l *Layout) Search(text string) []int32 {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var ids []int32
	for id, sym := range l.syms {
		if !l.present[id] || sym.Name == profiling.RootName {
			continue
		}
		if strings.Contains(strings.ToLower(sym.Name), text) {
			ids = append(ids, int32(id))
		}
	}

	return ids
}
