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
)

// Scope is the visibility of a symbol.
type Scope int

// List of valid Scope values.
const (
	Global Scope = iota
	Static
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "global"
	case Static:
		return "static"
	}
	return "unknown scope"
}

// Symbol is a single function in the program. The function occupies the
// address range [Start, End).
type Symbol struct {
	Start uint32
	End   uint32
	Name  string
	File  string
	Line  int
	Scope Scope
}

// UnresolvedName is the name given to the Unresolved sentinel.
const UnresolvedName = "<unresolved>"

// Unresolved is returned by Resolve() for addresses that are not inside any
// symbol. Compare with the pointer to test for it.
var Unresolved = &Symbol{
	Name: UnresolvedName,
}

// Key identifies a symbol. Static symbols are qualified by their file so
// that functions of the same name in different files are distinct.
func (s *Symbol) Key() string {
	if s.Scope == Static {
		return fmt.Sprintf("%s::%s", s.File, s.Name)
	}
	return s.Name
}

// Contains returns true if the address is inside the symbol range.
func (s *Symbol) Contains(addr uint32) bool {
	return addr >= s.Start && addr < s.End
}

// Size of the symbol in bytes.
func (s *Symbol) Size() uint32 {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s *Symbol) String() string {
	if s == Unresolved {
		return UnresolvedName
	}
	if s.File == "" {
		return fmt.Sprintf("%s [%#08x, %#08x)", s.Name, s.Start, s.End)
	}
	return fmt.Sprintf("%s [%#08x, %#08x) %s:%d", s.Name, s.Start, s.End, s.File, s.Line)
}
