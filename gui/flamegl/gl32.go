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

import (
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/logger"
)

type gl32 struct{}

// NewGL32 initialises the OpenGL 3.2 core bindings for the current context.
// An error means that there is no usable context.
func NewGL32() (GL, error) {
	if err := gl.Init(); err != nil {
		return nil, curated.Errorf("flamegl: %v", err)
	}

	// log GPU vendor information
	logger.Logf(logger.Allow, "flamegl", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "flamegl", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "flamegl", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	// the focus colour can be translucent
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return gl32{}, nil
}

func (gl32) CompileShader(typ ShaderType, source string) (uint32, string, bool) {
	var handle uint32
	switch typ {
	case VertexShader:
		handle = gl.CreateShader(gl.VERTEX_SHADER)
	case FragmentShader:
		handle = gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return 0, "unsupported shader type", false
	}

	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(handle, 1, csource, nil)
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(length int32, log *uint8) {
			gl.GetShaderInfoLog(handle, length, nil, log)
		})
		gl.DeleteShader(handle)
		return 0, log, false
	}

	return handle, "", true
}

func (gl32) LinkProgram(vert uint32, frag uint32) (uint32, string, bool) {
	handle := gl.CreateProgram()
	gl.AttachShader(handle, vert)
	gl.AttachShader(handle, frag)
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(length int32, log *uint8) {
			gl.GetProgramInfoLog(handle, length, nil, log)
		})
		gl.DeleteProgram(handle)
		return 0, log, false
	}

	return handle, "", true
}

// infoLog retrieves a shader or program log of the given length. The length
// includes the NULL character.
func infoLog(length int32, get func(int32, *uint8)) string {
	if length <= 0 {
		return "unknown"
	}
	log := strings.Repeat("\x00", int(length+1))
	get(length, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

func (gl32) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

func (gl32) DeleteProgram(handle uint32) {
	gl.DeleteProgram(handle)
}

func (gl32) UseProgram(handle uint32) {
	gl.UseProgram(handle)
}

func (gl32) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (gl32) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (gl32) GenVertexArray() uint32 {
	var handle uint32
	gl.GenVertexArrays(1, &handle)
	return handle
}

func (gl32) BindVertexArray(handle uint32) {
	gl.BindVertexArray(handle)
}

func (gl32) DeleteVertexArray(handle uint32) {
	gl.DeleteVertexArrays(1, &handle)
}

func (gl32) GenBuffer() uint32 {
	var handle uint32
	gl.GenBuffers(1, &handle)
	return handle
}

func (gl32) DeleteBuffer(handle uint32) {
	gl.DeleteBuffers(1, &handle)
}

func (gl32) BufferFloats(buffer uint32, attrib int32, size int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	if attrib < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(attrib))
	gl.VertexAttribPointerWithOffset(uint32(attrib), size, gl.FLOAT, false, 0, 0)
}

func (gl32) BufferColors(buffer uint32, attrib int32, data []uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	if attrib < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(attrib))
	gl.VertexAttribPointerWithOffset(uint32(attrib), 4, gl.UNSIGNED_BYTE, true, 0, 0)
}

func (gl32) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (gl32) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (gl32) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (gl32) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (gl32) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (gl32) DrawTriangles(count int32) {
	gl.DrawArrays(gl.TRIANGLES, 0, count)
}
