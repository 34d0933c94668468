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
	"github.com/jetsetilly/retroprof/assert"
	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/gui/flamegl/shaders"
	"github.com/jetsetilly/retroprof/logger"
)

// NoID is the value for the hovered and focused IDs when nothing is hovered
// or focused.
const NoID int32 = -1

// Size of the drawing surface in logical pixels.
type Size struct {
	Width  int
	Height int
}

// Options for a new renderer.
type Options struct {
	// device pixel scale of the drawing surface
	Scale float64

	// initial focus colour. a CSS rgb() or rgba() string
	FocusColor string

	// initial boxes
	Boxes []flame.Box
}

// State is a snapshot of the renderer state.
type State struct {
	Hovered     int32
	Focused     int32
	FocusColor  Color
	Bounds      flame.Bounds
	Size        Size
	Scale       float64
	VertexCount int
}

// BoxRenderer draws flame graph boxes on the GPU.
//
// The geometry is only rebuilt by SetBoxes(). Changing the visible window
// with SetBounds() or the highlighted function with SetHovered() and
// SetFocused() only changes uniform values, so the cost does not depend on
// the number of boxes. Every Set function redraws.
type BoxRenderer interface {
	SetBoxes(boxes []flame.Box)
	SetBounds(bounds flame.Bounds, size Size, scale float64)
	SetHovered(id int32)
	SetFocused(id int32)
	SetFocusColor(css string)
	Redraw()
	State() State
	Destroy()
}

// the number of vertices per box. two triangles
const verticesPerBox = 6

// the number of floats per vertex. x, y, graph ID and category
const floatsPerVertex = 4

// renderer is the implementation of BoxRenderer for a GL device.
type renderer struct {
	dev GL

	// the goroutine that created the renderer. checked in assertion builds
	goroutine uint64

	program     uint32
	vertexArray uint32
	boxBuffer   uint32
	colorBuffer uint32

	// attribute locations
	boxesAttrib  int32
	colorsAttrib int32

	// uniform locations
	boundsUniform     int32
	hoveredUniform    int32
	focusedUniform    int32
	focusColorUniform int32

	state State

	// reused between calls to SetBoxes()
	positions []float32
	colors    []uint32
}

// New creates a BoxRenderer for the device. If there is no device then the
// returned BoxRenderer does nothing. An error is returned if the shaders can
// not be built. The error includes the compiler or linker log.
//
// The renderer does not draw until it is told to. The initial bounds cover the
// full width of the graph on a 100x100 surface.
func New(dev GL, opts Options) (BoxRenderer, error) {
	if dev == nil {
		logger.Log(logger.Allow, "flamegl", "no GL device: rendering disabled")
		return &disabled{state: newState(opts.Scale)}, nil
	}

	program, err := buildProgram(dev)
	if err != nil {
		return nil, err
	}

	rnd := &renderer{
		dev:       dev,
		goroutine: assert.GetGoRoutineID(),
		program:   program,
		state:     newState(opts.Scale),
	}

	rnd.boxesAttrib = dev.AttribLocation(program, "boxes")
	rnd.colorsAttrib = dev.AttribLocation(program, "colors")
	rnd.boundsUniform = dev.UniformLocation(program, "bounds")
	rnd.hoveredUniform = dev.UniformLocation(program, "hovered")
	rnd.focusedUniform = dev.UniformLocation(program, "focused")
	rnd.focusColorUniform = dev.UniformLocation(program, "focus_color")

	rnd.vertexArray = dev.GenVertexArray()
	dev.BindVertexArray(rnd.vertexArray)
	rnd.boxBuffer = dev.GenBuffer()
	rnd.colorBuffer = dev.GenBuffer()

	dev.ClearColor(0, 0, 0, 0)
	dev.UseProgram(program)

	rnd.setBounds(rnd.state.Bounds, rnd.state.Size, rnd.state.Scale)
	rnd.setBoxes(opts.Boxes)
	if !rnd.setFocusColor(opts.FocusColor) {
		rnd.applyFocusColor(White)
	}
	dev.Uniform1i(rnd.hoveredUniform, NoID)
	dev.Uniform1i(rnd.focusedUniform, NoID)

	return rnd, nil
}

func newState(scale float64) State {
	if scale <= 0 {
		scale = 1
	}
	return State{
		Hovered:    NoID,
		Focused:    NoID,
		FocusColor: White,
		Bounds:     flame.FullBounds(),
		Size:       Size{Width: 100, Height: 100},
		Scale:      scale,
	}
}

func buildProgram(dev GL) (uint32, error) {
	vert, log, ok := dev.CompileShader(VertexShader, string(shaders.BoxVertexShader))
	if !ok {
		return 0, curated.Errorf("flamegl: vertex shader: %s", log)
	}

	frag, log, ok := dev.CompileShader(FragmentShader, string(shaders.BoxFragmentShader))
	if !ok {
		dev.DeleteShader(vert)
		return 0, curated.Errorf("flamegl: fragment shader: %s", log)
	}

	program, log, ok := dev.LinkProgram(vert, frag)

	// the shaders are not needed once the program has been linked
	dev.DeleteShader(vert)
	dev.DeleteShader(frag)

	if !ok {
		return 0, curated.Errorf("flamegl: program: %s", log)
	}

	return program, nil
}

func (rnd *renderer) setBoxes(boxes []flame.Box) {
	n := len(boxes) * verticesPerBox

	if cap(rnd.positions) < n*floatsPerVertex {
		rnd.positions = make([]float32, n*floatsPerVertex)
		rnd.colors = make([]uint32, n)
	}
	rnd.positions = rnd.positions[:n*floatsPerVertex]
	rnd.colors = rnd.colors[:n]

	var k, c int
	vertex := func(x float64, y int, b *flame.Box) {
		rnd.positions[k] = float32(x)
		rnd.positions[k+1] = float32(y)
		rnd.positions[k+2] = float32(b.GraphID)
		rnd.positions[k+3] = float32(b.Category)
		rnd.colors[c] = b.Color
		k += floatsPerVertex
		c++
	}

	// the geometry is shifted up by one row so that the root box sits
	// above the visible area
	for i := range boxes {
		b := &boxes[i]
		top := b.Y1 - flame.RowHeight
		bottom := b.Y2 - 1 - flame.RowHeight

		vertex(b.X1, top, b)
		vertex(b.X2, top, b)
		vertex(b.X1, bottom, b)

		vertex(b.X1, bottom, b)
		vertex(b.X2, top, b)
		vertex(b.X2, bottom, b)
	}

	rnd.dev.BufferFloats(rnd.boxBuffer, rnd.boxesAttrib, floatsPerVertex, rnd.positions)
	rnd.dev.BufferColors(rnd.colorBuffer, rnd.colorsAttrib, rnd.colors)
	rnd.state.VertexCount = n
}

func (rnd *renderer) setBounds(bounds flame.Bounds, size Size, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	rnd.state.Bounds = bounds
	rnd.state.Size = size
	rnd.state.Scale = scale

	rnd.dev.Viewport(0, 0, int32(float64(size.Width)*scale), int32(float64(size.Height)*scale))
	rnd.dev.Uniform4f(rnd.boundsUniform, float32(bounds.MinX), 0, float32(bounds.MaxX), float32(size.Height))
}

func (rnd *renderer) setFocusColor(css string) bool {
	c, ok := ParseColor(css)
	if !ok {
		return false
	}
	rnd.applyFocusColor(c)
	return true
}

func (rnd *renderer) applyFocusColor(c Color) {
	rnd.state.FocusColor = c
	rnd.dev.Uniform4f(rnd.focusColorUniform, c[0], c[1], c[2], c[3])
}

// SetBoxes implements the BoxRenderer interface.
func (rnd *renderer) SetBoxes(boxes []flame.Box) {
	assert.Goroutine(rnd.goroutine)
	rnd.setBoxes(boxes)
	rnd.Redraw()
}

// SetBounds implements the BoxRenderer interface.
func (rnd *renderer) SetBounds(bounds flame.Bounds, size Size, scale float64) {
	assert.Goroutine(rnd.goroutine)
	rnd.setBounds(bounds, size, scale)
	rnd.Redraw()
}

// SetHovered implements the BoxRenderer interface.
func (rnd *renderer) SetHovered(id int32) {
	assert.Goroutine(rnd.goroutine)
	rnd.state.Hovered = id
	rnd.dev.Uniform1i(rnd.hoveredUniform, id)
	rnd.Redraw()
}

// SetFocused implements the BoxRenderer interface.
func (rnd *renderer) SetFocused(id int32) {
	assert.Goroutine(rnd.goroutine)
	rnd.state.Focused = id
	rnd.dev.Uniform1i(rnd.focusedUniform, id)
	rnd.Redraw()
}

// SetFocusColor implements the BoxRenderer interface. A string that is not
// an rgb() or rgba() colour is ignored.
func (rnd *renderer) SetFocusColor(css string) {
	assert.Goroutine(rnd.goroutine)
	if !rnd.setFocusColor(css) {
		logger.Logf(logger.Allow, "flamegl", "ignoring focus colour: %s", css)
	}
	rnd.Redraw()
}

// Redraw implements the BoxRenderer interface.
func (rnd *renderer) Redraw() {
	assert.Goroutine(rnd.goroutine)
	if rnd.program == 0 {
		return
	}
	rnd.dev.Clear()
	rnd.dev.DrawTriangles(int32(rnd.state.VertexCount))
}

// State implements the BoxRenderer interface.
func (rnd *renderer) State() State {
	return rnd.state
}

// Destroy implements the BoxRenderer interface. The renderer must not be used
// after it has been destroyed.
func (rnd *renderer) Destroy() {
	assert.Goroutine(rnd.goroutine)
	if rnd.boxBuffer != 0 {
		rnd.dev.DeleteBuffer(rnd.boxBuffer)
		rnd.boxBuffer = 0
	}
	if rnd.colorBuffer != 0 {
		rnd.dev.DeleteBuffer(rnd.colorBuffer)
		rnd.colorBuffer = 0
	}
	if rnd.vertexArray != 0 {
		rnd.dev.DeleteVertexArray(rnd.vertexArray)
		rnd.vertexArray = 0
	}
	if rnd.program != 0 {
		rnd.dev.DeleteProgram(rnd.program)
		rnd.program = 0
	}
	rnd.positions = nil
	rnd.colors = nil
}
