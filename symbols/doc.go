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

// Package symbols maps program addresses to the functions that contain them.
//
// A Table is built from a list of Symbol entries, usually decoded from the
// flat listing produced by the external disassembly tool with ReadListing():
//
//	entries, err := symbols.ReadListing(f)
//	if err != nil {
//		return err
//	}
//	tbl := symbols.NewTable(entries)
//	sym := tbl.Resolve(0x1040)
//
// Resolve() never fails. An address that is not inside any symbol range
// resolves to the Unresolved sentinel, so that aggregation of a profile can
// always complete even when the symbol information is partial.
package symbols
