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

// Package flame lays out a profiling.Tree as the boxes of a flame graph.
//
// Each node of the tree becomes a Box. The row of the box is the depth of the
// node and the horizontal extent is the node's share of the total weight,
// normalised to the range 0 to 1. Sibling boxes are packed left to right in
// order of descending weight, with no gaps between them.
//
// Every box carries a graph ID, which identifies the function rather than the
// call path. All boxes for the same function share the same ID, which means
// that the renderer can highlight every occurrence of a function by comparing
// a single value. IDs are kept by the Layout so that laying out the same
// profile again produces the same IDs.
//
// The category and colour of a box is decided by a Classifier. The default
// classifier only distinguishes between resolved and unresolved addresses.
// Rules loaded with LoadRules() can be used to categorise by file and name.
package flame
