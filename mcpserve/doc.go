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

// Package mcpserve answers questions about an aggregated profile over the
// Model Context Protocol. The server is a text interface on stdio and does
// not draw anything.
//
// The tools provided are:
//
//	summary         total weight, number of call tree nodes and functions
//	top_functions   the functions with the greatest self weight
//	call_tree       the call tree, indented by depth
//	search          functions whose name contains the text, with graph IDs
//
// The profile can be replaced while the server is running with Server.Set().
package mcpserve
