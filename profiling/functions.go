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
	"sort"

	"github.com/jetsetilly/retroprof/symbols"
)

// FunctionStats are the figures for a single function, collated over every
// call path the function appears in.
type FunctionStats struct {
	Symbol *symbols.Symbol

	// weight attributed directly to the function
	Self uint64

	// weight of the function and everything it calls. recursive calls are
	// only counted once
	Total uint64

	// number of distinct call paths that end in the function
	Paths int
}

// SelfPercent returns Self as a percentage of the total weight.
func (fs FunctionStats) SelfPercent(total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(fs.Self) / float64(total) * 100
}

// TotalPercent returns Total as a percentage of the total weight.
func (fs FunctionStats) TotalPercent(total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(fs.Total) / float64(total) * 100
}

// Functions returns the figures for each function in the tree, ordered by
// descending self weight. Ties are ordered by descending total weight and then
// by symbol key.
func (t *Tree) Functions() []FunctionStats {
	stats := make(map[string]*FunctionStats)

	// active counts the occurences of a symbol key on the path from the root
	// to the current node. a node only adds to the total weight of its
	// function if it is the outermost occurrence
	active := make(map[string]int)

	var walk func(i int)
	walk = func(i int) {
		n := &t.Nodes[i]
		key := n.Symbol.Key()

		fs, ok := stats[key]
		if !ok {
			fs = &FunctionStats{Symbol: n.Symbol}
			stats[key] = fs
		}

		fs.Self += n.Exclusive
		fs.Paths++
		if active[key] == 0 {
			fs.Total += n.Inclusive
		}

		active[key]++
		for _, c := range n.children {
			walk(c)
		}
		active[key]--
	}

	for _, c := range t.Nodes[Root].children {
		walk(c)
	}

	fns := make([]FunctionStats, 0, len(stats))
	for _, fs := range stats {
		fns = append(fns, *fs)
	}

	sort.Slice(fns, func(i, j int) bool {
		if fns[i].Self != fns[j].Self {
			return fns[i].Self > fns[j].Self
		}
		if fns[i].Total != fns[j].Total {
			return fns[i].Total > fns[j].Total
		}
		return fns[i].Symbol.Key() < fns[j].Symbol.Key()
	})

	return fns
}
