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

package symbols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/retroprof/logger"
)

// Table is an ordered list of symbols. The list is sorted by start address
// and supports resolution of an address to the symbol containing it.
type Table struct {
	entries []Symbol

	// maxEnd[i] is the greatest end address of entries[0] to entries[i]. it
	// bounds the backwards search in Resolve()
	maxEnd []uint32

	// index of entries by name. used by Find()
	names map[string][]int

	// the longest symbol name in the table
	maxWidth int
}

// NewTable is the preferred method of initialisation for the Table type. The
// entries are copied and sorted by start address. Entries with an empty or
// inverted range are dropped.
func NewTable(entries []Symbol) *Table {
	t := &Table{
		entries: make([]Symbol, 0, len(entries)),
		names:   make(map[string][]int),
	}

	for _, e := range entries {
		if e.End <= e.Start {
			logger.Logf(logger.Allow, "symbols", "dropping %s: empty address range", e.Name)
			continue
		}
		t.entries = append(t.entries, e)
	}

	// the listing is usually sorted already but we can't rely on it
	sort.Stable(t)

	t.maxEnd = make([]uint32, len(t.entries))
	for i, e := range t.entries {
		t.maxEnd[i] = e.End
		if i > 0 && t.maxEnd[i-1] > e.End {
			t.maxEnd[i] = t.maxEnd[i-1]
		}
		t.names[e.Name] = append(t.names[e.Name], i)
		if len(e.Name) > t.maxWidth {
			t.maxWidth = len(e.Name)
		}
	}

	return t
}

func (t *Table) String() string {
	s := strings.Builder{}
	for _, e := range t.entries {
		s.WriteString(fmt.Sprintf("%#08x %#08x %-*s %s:%d (%s)\n", e.Start, e.End, t.maxWidth, e.Name, e.File, e.Line, e.Scope))
	}
	return s.String()
}

// Resolve returns the symbol containing the address. If more than one symbol
// contains the address then the symbol with the tightest range is returned.
// Addresses not contained by any symbol resolve to Unresolved.
func (t *Table) Resolve(addr uint32) *Symbol {
	// index of the first entry that starts after the address
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Start > addr
	})

	// the candidate with the greatest start address that still contains the
	// address is the tightest. for equal start addresses the narrowest range
	// is sorted last and so is seen first. nested ranges mean that we can't
	// stop at the first entry that doesn't contain the address
	for i--; i >= 0 && t.maxEnd[i] > addr; i-- {
		if t.entries[i].Contains(addr) {
			return &t.entries[i]
		}
	}

	return Unresolved
}

// Find returns all symbols with the name. There may be more than one if the
// program has static functions of the same name in different files.
func (t *Table) Find(name string) []*Symbol {
	idx := t.names[name]
	if len(idx) == 0 {
		return nil
	}
	syms := make([]*Symbol, len(idx))
	for i, j := range idx {
		syms[i] = &t.entries[j]
	}
	return syms
}

// Symbols returns the sorted entries in the table. The slice should not be
// modified.
func (t *Table) Symbols() []Symbol {
	return t.entries
}

// Len implements the sort.Interface.
func (t *Table) Len() int {
	return len(t.entries)
}

// Less implements the sort.Interface. Entries with the same start address are
// ordered by descending end address so that the narrowest range comes last.
func (t *Table) Less(i, j int) bool {
	if t.entries[i].Start == t.entries[j].Start {
		return t.entries[i].End > t.entries[j].End
	}
	return t.entries[i].Start < t.entries[j].Start
}

// Swap implements the sort.Interface.
func (t *Table) Swap(i, j int) {
	t.entries[i], t.entries[j] = t.entries[j], t.entries[i]
}
