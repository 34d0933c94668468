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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/retroprof/curated"
)

// ReadListing decodes the flat symbol listing produced by the external
// disassembly tool. Each line describes one symbol:
//
//	start end name file line scope
//
// The start and end addresses may be decimal or hex (with the 0x prefix). The
// file, line and scope fields are optional but must appear in that order. The
// scope is one of "g", "global", "s" or "static" and defaults to global.
//
// Blank lines and lines beginning with # are ignored. A malformed line is an
// error that names the line number.
func ReadListing(r io.Reader) ([]Symbol, error) {
	var entries []Symbol

	scanner := bufio.NewScanner(r)
	var n int
	for scanner.Scan() {
		n++

		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}

		sym, err := parseListingLine(l)
		if err != nil {
			return nil, curated.Errorf("symbols: line %d: %v", n, err)
		}
		entries = append(entries, sym)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("symbols: %v", err)
	}

	return entries, nil
}

func parseListingLine(l string) (Symbol, error) {
	var sym Symbol

	f := strings.Fields(l)
	if len(f) < 3 || len(f) > 6 {
		return sym, curated.Errorf("expected between 3 and 6 fields, found %d", len(f))
	}

	start, err := strconv.ParseUint(f[0], 0, 32)
	if err != nil {
		return sym, curated.Errorf("start address: %v", err)
	}
	end, err := strconv.ParseUint(f[1], 0, 32)
	if err != nil {
		return sym, curated.Errorf("end address: %v", err)
	}

	sym.Start = uint32(start)
	sym.End = uint32(end)
	sym.Name = f[2]

	if len(f) > 3 {
		sym.File = f[3]
	}

	if len(f) > 4 {
		sym.Line, err = strconv.Atoi(f[4])
		if err != nil {
			return sym, curated.Errorf("line number: %v", err)
		}
	}

	if len(f) > 5 {
		switch strings.ToLower(f[5]) {
		case "g", "global":
			sym.Scope = Global
		case "s", "static":
			sym.Scope = Static
		default:
			return sym, curated.Errorf("unrecognised scope (%s)", f[5])
		}
	}

	return sym, nil
}
