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
	"strings"
)

// Sample is a single observation of the program. The Stack is ordered from
// the outermost function to the innermost.
type Sample struct {
	Stack  []uint32
	Weight uint64
}

// SizeSample creates a sample for static size profiling. The stack has a
// single address and the weight is the size of the instruction.
func SizeSample(addr uint32, size uint64) Sample {
	return Sample{
		Stack:  []uint32{addr},
		Weight: size,
	}
}

func (s Sample) String() string {
	a := make([]string, len(s.Stack))
	for i, addr := range s.Stack {
		a[i] = fmt.Sprintf("%#x", addr)
	}
	return fmt.Sprintf("%s %d", strings.Join(a, ";"), s.Weight)
}

// TotalWeight returns the sum of the weights of all samples.
func TotalWeight(samples []Sample) uint64 {
	var w uint64
	for _, s := range samples {
		w += s.Weight
	}
	return w
}
