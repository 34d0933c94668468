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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// Memviz writes a graphviz representation of the tree's memory layout to the
// io.Writer. Useful for debugging the aggregation of small profiles. The
// output for large profiles is unlikely to be readable.
func (t *Tree) Memviz(w io.Writer) {
	memviz.Map(w, t)
}
