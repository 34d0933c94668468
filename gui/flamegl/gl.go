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

package flamegl

// ShaderType distinguishes between the vertex and fragment stages.
type ShaderType int

// List of valid ShaderType values.
const (
	VertexShader ShaderType = iota
	FragmentShader
)

func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return "unknown shader type"
}

// GL is the set of graphics operations used by the box renderer. NewGL32()
// returns an implementation for an OpenGL 3.2 core context.
//
// Handles are the OpenGL object names. Locations are attribute and uniform
// locations as returned by OpenGL, with -1 meaning that the name is not
// active in the program.
type GL interface {
	// CompileShader returns the handle of the compiled shader. If compilation
	// fails the compiler log is returned and the boolean is false.
	CompileShader(typ ShaderType, source string) (uint32, string, bool)

	// LinkProgram returns the handle of the linked program. If linking fails
	// the linker log is returned and the boolean is false.
	LinkProgram(vert uint32, frag uint32) (uint32, string, bool)

	DeleteShader(handle uint32)
	DeleteProgram(handle uint32)
	UseProgram(handle uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	GenVertexArray() uint32
	BindVertexArray(handle uint32)
	DeleteVertexArray(handle uint32)

	GenBuffer() uint32
	DeleteBuffer(handle uint32)

	// BufferFloats replaces the contents of the buffer and sets the attribute
	// to read size floats per vertex from it.
	BufferFloats(buffer uint32, attrib int32, size int32, data []float32)

	// BufferColors replaces the contents of the buffer and sets the attribute
	// to read one packed RGBA value per vertex from it, normalised to the
	// range 0 to 1.
	BufferColors(buffer uint32, attrib int32, data []uint32)

	Uniform1i(location int32, v int32)
	Uniform4f(location int32, x, y, z, w float32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()

	// DrawTriangles draws count vertices as a list of triangles.
	DrawTriangles(count int32)
}
