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

// Package flamegl draws the boxes of a flame graph with OpenGL.
//
// The renderer keeps all geometry on the GPU. Each box is two triangles and
// each vertex carries the graph ID and category of its box. Mapping the data
// domain to the screen is done by the vertex shader from a bounds uniform, so
// panning and zooming never touch the vertex buffers. Highlighting works the
// same way: the hovered and focused graph IDs are uniforms that the shader
// compares with the ID of each vertex.
//
// The GL interface abstracts the device. NewGL32() is the implementation for
// an OpenGL 3.2 core context. A nil device produces a renderer that does
// nothing, which allows the host to continue without a GPU.
package flamegl
