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

package flamegl_test

import (
	"github.com/jetsetilly/retroprof/gui/flamegl"
)

// fakeGL records the calls made by the renderer.
type fakeGL struct {
	// set to make shader compilation or program linking fail
	compileLog map[flamegl.ShaderType]string
	linkLog    string

	nextHandle uint32

	sources map[flamegl.ShaderType]string

	bufferFloats int
	bufferColors int
	floats       []float32
	colors       []uint32

	uniforms  map[int32][4]float32
	uniformsI map[int32]int32

	viewport [4]int32
	clears   int
	draws    int
	drawn    int32

	deletedShaders  int
	deletedPrograms int
	deletedBuffers  int
	deletedArrays   int
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		compileLog: make(map[flamegl.ShaderType]string),
		sources:    make(map[flamegl.ShaderType]string),
		uniforms:   make(map[int32][4]float32),
		uniformsI:  make(map[int32]int32),
	}
}

var fakeLocations = map[string]int32{
	"boxes":       0,
	"colors":      1,
	"bounds":      10,
	"hovered":     11,
	"focused":     12,
	"focus_color": 13,
}

func (f *fakeGL) handle() uint32 {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeGL) CompileShader(typ flamegl.ShaderType, source string) (uint32, string, bool) {
	f.sources[typ] = source
	if log, ok := f.compileLog[typ]; ok {
		return 0, log, false
	}
	return f.handle(), "", true
}

func (f *fakeGL) LinkProgram(vert uint32, frag uint32) (uint32, string, bool) {
	if f.linkLog != "" {
		return 0, f.linkLog, false
	}
	return f.handle(), "", true
}

func (f *fakeGL) DeleteShader(handle uint32)  { f.deletedShaders++ }
func (f *fakeGL) DeleteProgram(handle uint32) { f.deletedPrograms++ }
func (f *fakeGL) UseProgram(handle uint32)    {}

func (f *fakeGL) AttribLocation(program uint32, name string) int32 {
	if l, ok := fakeLocations[name]; ok {
		return l
	}
	return -1
}

func (f *fakeGL) UniformLocation(program uint32, name string) int32 {
	return f.AttribLocation(program, name)
}

func (f *fakeGL) GenVertexArray() uint32            { return f.handle() }
func (f *fakeGL) BindVertexArray(handle uint32)     {}
func (f *fakeGL) DeleteVertexArray(handle uint32)   { f.deletedArrays++ }
func (f *fakeGL) GenBuffer() uint32                 { return f.handle() }
func (f *fakeGL) DeleteBuffer(handle uint32)        { f.deletedBuffers++ }
func (f *fakeGL) Uniform1i(location int32, v int32) { f.uniformsI[location] = v }

func (f *fakeGL) BufferFloats(buffer uint32, attrib int32, size int32, data []float32) {
	f.bufferFloats++
	f.floats = append(f.floats[:0], data...)
}

func (f *fakeGL) BufferColors(buffer uint32, attrib int32, data []uint32) {
	f.bufferColors++
	f.colors = append(f.colors[:0], data...)
}

func (f *fakeGL) Uniform4f(location int32, x, y, z, w float32) {
	f.uniforms[location] = [4]float32{x, y, z, w}
}

func (f *fakeGL) Viewport(x, y, width, height int32) {
	f.viewport = [4]int32{x, y, width, height}
}

func (f *fakeGL) ClearColor(r, g, b, a float32) {}

func (f *fakeGL) Clear() { f.clears++ }

func (f *fakeGL) DrawTriangles(count int32) {
	f.draws++
	f.drawn = count
}
