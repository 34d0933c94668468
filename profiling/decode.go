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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/retroprof/curated"
)

// DecodeStacks reads collapsed address stacks. Each line is a call stack,
// with addresses separated by semicolons and ordered from the outermost
// function to the innermost, followed by an optional weight:
//
//	0x100;0x140;0x1a0 12
//
// A missing weight is taken to be one. Addresses may be decimal or hex (with
// the 0x prefix). Blank lines and lines beginning with # are ignored.
func DecodeStacks(r io.Reader) ([]Sample, error) {
	var samples []Sample

	err := scanLines(r, func(l string) error {
		f := strings.Fields(l)
		if len(f) > 2 {
			return curated.Errorf("expected 1 or 2 fields, found %d", len(f))
		}

		s := Sample{Weight: 1}
		if len(f) == 2 {
			w, err := strconv.ParseUint(f[1], 10, 64)
			if err != nil {
				return curated.Errorf("weight: %v", err)
			}
			s.Weight = w
		}

		for _, a := range strings.Split(f[0], ";") {
			addr, err := parseAddress(a)
			if err != nil {
				return err
			}
			s.Stack = append(s.Stack, addr)
		}

		samples = append(samples, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// DecodeSizes reads a table of instruction sizes. Each line is an address
// followed by the size of the instruction at that address:
//
//	0x1000 4
//
// Each line becomes a sample with a single address. Blank lines and lines
// beginning with # are ignored.
func DecodeSizes(r io.Reader) ([]Sample, error) {
	var samples []Sample

	err := scanLines(r, func(l string) error {
		f := strings.Fields(l)
		if len(f) != 2 {
			return curated.Errorf("expected 2 fields, found %d", len(f))
		}

		addr, err := parseAddress(f[0])
		if err != nil {
			return err
		}

		size, err := strconv.ParseUint(f[1], 0, 64)
		if err != nil {
			return curated.Errorf("size: %v", err)
		}

		samples = append(samples, SizeSample(addr, size))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// scanLines calls decode for every line that isn't blank or a comment. errors
// from decode are wrapped with the line number.
func scanLines(r io.Reader, decode func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var n int
	for scanner.Scan() {
		n++

		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}

		if err := decode(l); err != nil {
			return curated.Errorf("profiling: line %d: %v", n, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("profiling: %v", err)
	}

	return nil
}

func parseAddress(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, curated.Errorf("empty address")
	}
	a, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf("address: %v", err)
	}
	return uint32(a), nil
}
