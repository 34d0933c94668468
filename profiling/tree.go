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

package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jetsetilly/retroprof/assert"
	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/symbols"
)

// Resolver maps an address to the function containing it. Addresses that can
// not be resolved should return symbols.Unresolved.
type Resolver interface {
	Resolve(addr uint32) *symbols.Symbol
}

// RootName is the name of the symbol at the root of every Tree.
const RootName = "<root>"

var rootSymbol = &symbols.Symbol{Name: RootName}

// Root is the index of the root node in Tree.Nodes.
const Root = 0

// Node is a single call path in the Tree.
type Node struct {
	Symbol *symbols.Symbol

	// index of parent in Tree.Nodes. the root node has a parent of -1
	Parent int

	// depth of the node. the root node is at depth zero
	Depth int

	// weight attributed directly to this call path
	Exclusive uint64

	// weight of this call path and all call paths that extend it
	Inclusive uint64

	// child nodes indexed by symbol key
	children map[string]int
}

// NumChildren returns the number of child nodes.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Tree is the aggregated call tree. Nodes are stored in a single slice and
// refer to each other by index. Node zero is the root.
type Tree struct {
	Nodes []Node

	// the sum of all sample weights
	total uint64
}

func newTree() *Tree {
	t := &Tree{
		Nodes: make([]Node, 1, 64),
	}
	t.Nodes[Root] = Node{
		Symbol:   rootSymbol,
		Parent:   -1,
		children: make(map[string]int),
	}
	return t
}

// Aggregate the samples into a call tree. Addresses are resolved with the
// Resolver. The weight of each sample is added to the exclusive weight of the
// innermost node and the inclusive weight of every node on the path,
// including the root.
//
// A sample with an empty stack adds its weight to the root.
func Aggregate(samples []Sample, res Resolver) *Tree {
	t := newTree()

	for _, s := range samples {
		t.total += s.Weight

		n := Root
		t.Nodes[Root].Inclusive += s.Weight

		for _, addr := range s.Stack {
			n = t.child(n, res.Resolve(addr))
			t.Nodes[n].Inclusive += s.Weight
		}

		t.Nodes[n].Exclusive += s.Weight
	}

	if assert.Enabled {
		assert.NoError(t.Check())
	}

	return t
}

// child returns the index of the child node of parent for the symbol,
// creating it if necessary.
func (t *Tree) child(parent int, sym *symbols.Symbol) int {
	key := sym.Key()
	if c, ok := t.Nodes[parent].children[key]; ok {
		return c
	}

	c := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		Symbol:   sym,
		Parent:   parent,
		Depth:    t.Nodes[parent].Depth + 1,
		children: make(map[string]int),
	})

	// the append may have moved the slice so we index it again
	t.Nodes[parent].children[key] = c

	return c
}

// Total returns the sum of the weights of all aggregated samples.
func (t *Tree) Total() uint64 {
	return t.total
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.Nodes[Root]
}

// MaxDepth returns the depth of the deepest node.
func (t *Tree) MaxDepth() int {
	var d int
	for i := range t.Nodes {
		if t.Nodes[i].Depth > d {
			d = t.Nodes[i].Depth
		}
	}
	return d
}

// Children returns the indexes of the child nodes of node i. The children are
// ordered by descending inclusive weight. Ties are ordered by symbol key.
func (t *Tree) Children(i int) []int {
	n := &t.Nodes[i]
	if len(n.children) == 0 {
		return nil
	}

	c := make([]int, 0, len(n.children))
	for _, idx := range n.children {
		c = append(c, idx)
	}

	sort.Slice(c, func(i, j int) bool {
		a := &t.Nodes[c[i]]
		b := &t.Nodes[c[j]]
		if a.Inclusive != b.Inclusive {
			return a.Inclusive > b.Inclusive
		}
		return a.Symbol.Key() < b.Symbol.Key()
	})

	return c
}

// Path returns the symbol names from the outermost function to node i. The
// root is not included.
func (t *Tree) Path(i int) []string {
	var p []string
	for ; i > Root; i = t.Nodes[i].Parent {
		p = append(p, t.Nodes[i].Symbol.Name)
	}
	for l, r := 0, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return p
}

// Check the weights of the tree. The inclusive weight of every node must equal
// its exclusive weight plus the inclusive weight of its children, and the
// inclusive weight of the root must equal the total sample weight.
func (t *Tree) Check() error {
	if t.Nodes[Root].Inclusive != t.total {
		return curated.Errorf("profiling: root weight %d does not equal sample weight %d", t.Nodes[Root].Inclusive, t.total)
	}

	for i := range t.Nodes {
		n := &t.Nodes[i]
		sum := n.Exclusive
		for _, c := range n.children {
			if t.Nodes[c].Parent != i {
				return curated.Errorf("profiling: node %d has the wrong parent", c)
			}
			sum += t.Nodes[c].Inclusive
		}
		if sum != n.Inclusive {
			return curated.Errorf("profiling: %s: inclusive weight %d does not equal %d", strings.Join(t.Path(i), " -> "), n.Inclusive, sum)
		}
	}

	return nil
}

// Dump writes the tree to the io.Writer, one node per line and indented by
// depth. Nodes deeper than maxDepth are not written. A maxDepth less than
// zero writes the entire tree.
func (t *Tree) Dump(w io.Writer, maxDepth int) {
	var dump func(i int)
	dump = func(i int) {
		n := &t.Nodes[i]
		if maxDepth >= 0 && n.Depth > maxDepth {
			return
		}
		fmt.Fprintf(w, "%s%s %d (%d)\n", strings.Repeat("  ", n.Depth), n.Symbol.Name, n.Inclusive, n.Exclusive)
		for _, c := range t.Children(i) {
			dump(c)
		}
	}
	dump(Root)
}

func (t *Tree) String() string {
	s := strings.Builder{}
	t.Dump(&s, -1)
	return s.String()
}
