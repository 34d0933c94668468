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

// Package profiling aggregates samples of program execution into a weighted
// call tree.
//
// A Sample is a call stack, ordered from the outermost function to the
// innermost, and a weight. Timed profiling produces samples with full call
// stacks. Size profiling produces samples with a single address and the size
// of the instruction at that address as the weight.
//
// Aggregate() resolves every address with a Resolver (usually a
// symbols.Table) and builds a Tree with one node per distinct call path.
// Recursive calls are not collapsed: every stack frame is a node.
//
// The package also decodes samples from disk. See Load() for the supported
// formats.
package profiling
