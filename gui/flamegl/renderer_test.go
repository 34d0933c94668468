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
	"strings"
	"testing"

	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/gui/flamegl"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/symbols"
	"github.com/jetsetilly/retroprof/test"
)

func testBoxes() []flame.Box {
	tbl := symbols.NewTable([]symbols.Symbol{
		{Start: 0x100, End: 0x200, Name: "main"},
		{Start: 0x200, End: 0x300, Name: "foo"},
		{Start: 0x300, End: 0x400, Name: "bar"},
	})
	tr := profiling.Aggregate([]profiling.Sample{
		{Stack: []uint32{0x110, 0x210}, Weight: 2},
		{Stack: []uint32{0x110, 0x310}, Weight: 1},
	}, tbl)
	return flame.NewLayout(nil).Boxes(tr)
}

func newRenderer(t *testing.T, dev *fakeGL) flamegl.BoxRenderer {
	t.Helper()
	rnd, err := flamegl.New(dev, flamegl.Options{
		Scale:      2,
		FocusColor: "rgba(255,255,255,1)",
		Boxes:      testBoxes(),
	})
	test.DemandSuccess(t, err)
	return rnd
}

func TestNew(t *testing.T) {
	dev := newFakeGL()
	rnd := newRenderer(t, dev)

	test.ExpectSuccess(t, strings.HasPrefix(dev.sources[flamegl.VertexShader], "#version 150 core"))
	test.ExpectSuccess(t, strings.HasPrefix(dev.sources[flamegl.FragmentShader], "#version 150 core"))

	// shaders are deleted once the program is linked
	test.ExpectEquality(t, dev.deletedShaders, 2)

	// initial state. a 100x100 surface showing the full width of the graph
	st := rnd.State()
	test.ExpectEquality(t, st.Hovered, flamegl.NoID)
	test.ExpectEquality(t, st.Focused, flamegl.NoID)
	test.ExpectEquality(t, st.Bounds, flame.FullBounds())
	test.ExpectEquality(t, st.Size, flamegl.Size{Width: 100, Height: 100})
	test.ExpectEquality(t, dev.viewport, [4]int32{0, 0, 200, 200})
	test.ExpectEquality(t, dev.uniforms[fakeLocations["bounds"]], [4]float32{0, 0, 1, 100})
	test.ExpectEquality(t, dev.uniformsI[fakeLocations["hovered"]], int32(-1))
	test.ExpectEquality(t, dev.uniformsI[fakeLocations["focused"]], int32(-1))
	test.ExpectEquality(t, dev.uniforms[fakeLocations["focus_color"]], [4]float32{1, 1, 1, 1})

	// buffers are filled but nothing is drawn yet
	test.ExpectEquality(t, dev.bufferFloats, 1)
	test.ExpectEquality(t, dev.bufferColors, 1)
	test.ExpectEquality(t, dev.draws, 0)
	test.ExpectEquality(t, st.VertexCount, 4*6)
}

func TestSetBoxesGeometry(t *testing.T) {
	dev := newFakeGL()
	rnd := newRenderer(t, dev)

	boxes := testBoxes()
	rnd.SetBoxes(boxes)
	test.ExpectEquality(t, dev.bufferFloats, 2)
	test.ExpectEquality(t, dev.draws, 1)
	test.ExpectEquality(t, dev.drawn, int32(len(boxes)*6))

	// six vertices of four floats per box and one colour per vertex
	test.DemandEquality(t, len(dev.floats), len(boxes)*6*4)
	test.DemandEquality(t, len(dev.colors), len(boxes)*6)

	for i, b := range boxes {
		v := dev.floats[i*24 : (i+1)*24]
		top := float32(b.Y1 - flame.RowHeight)
		bottom := float32(b.Y2 - 1 - flame.RowHeight)

		// x and y of each vertex in order
		expected := [][2]float32{
			{float32(b.X1), top},
			{float32(b.X2), top},
			{float32(b.X1), bottom},
			{float32(b.X1), bottom},
			{float32(b.X2), top},
			{float32(b.X2), bottom},
		}
		for j, e := range expected {
			test.ExpectEquality(t, v[j*4], e[0], i, j)
			test.ExpectEquality(t, v[j*4+1], e[1], i, j)
			test.ExpectEquality(t, v[j*4+2], float32(b.GraphID), i, j)
			test.ExpectEquality(t, v[j*4+3], float32(b.Category), i, j)
			test.ExpectEquality(t, dev.colors[i*6+j], b.Color, i, j)
		}
	}

	// the root box is shifted above the visible area
	test.ExpectEquality(t, dev.floats[1], float32(-flame.RowHeight))

	// an empty box list
	rnd.SetBoxes(nil)
	test.ExpectEquality(t, len(dev.floats), 0)
	test.ExpectEquality(t, rnd.State().VertexCount, 0)
	test.ExpectEquality(t, dev.drawn, int32(0))
}

func TestSetBoundsDoesNotRebuild(t *testing.T) {
	dev := newFakeGL()
	rnd := newRenderer(t, dev)
	rnd.SetBoxes(testBoxes())

	floats := dev.bufferFloats
	colors := dev.bufferColors
	draws := dev.draws

	rnd.SetBounds(flame.Bounds{MinX: 0.25, MaxX: 0.5}, flamegl.Size{Width: 800, Height: 600}, 1.5)

	// geometry is untouched
	test.ExpectEquality(t, dev.bufferFloats, floats)
	test.ExpectEquality(t, dev.bufferColors, colors)

	// only the viewport and bounds uniform change. and the view is redrawn
	test.ExpectEquality(t, dev.viewport, [4]int32{0, 0, 1200, 900})
	test.ExpectEquality(t, dev.uniforms[fakeLocations["bounds"]], [4]float32{0.25, 0, 0.5, 600})
	test.ExpectEquality(t, dev.draws, draws+1)

	st := rnd.State()
	test.ExpectEquality(t, st.Bounds, flame.Bounds{MinX: 0.25, MaxX: 0.5})
	test.ExpectEquality(t, st.Scale, 1.5)

	// redraw is idempotent
	rnd.Redraw()
	rnd.Redraw()
	test.ExpectEquality(t, dev.draws, draws+3)
	test.ExpectEquality(t, dev.bufferFloats, floats)
	test.ExpectEquality(t, dev.drawn, int32(len(testBoxes())*6))
}

func TestHoveredAndFocused(t *testing.T) {
	dev := newFakeGL()
	rnd := newRenderer(t, dev)

	rnd.SetHovered(3)
	test.ExpectEquality(t, dev.uniformsI[fakeLocations["hovered"]], int32(3))
	test.ExpectEquality(t, rnd.State().Hovered, int32(3))
	test.ExpectEquality(t, dev.draws, 1)

	rnd.SetFocused(2)
	test.ExpectEquality(t, dev.uniformsI[fakeLocations["focused"]], int32(2))
	test.ExpectEquality(t, dev.draws, 2)

	rnd.SetHovered(flamegl.NoID)
	test.ExpectEquality(t, dev.uniformsI[fakeLocations["hovered"]], int32(-1))

	// no buffer work for highlighting
	test.ExpectEquality(t, dev.bufferFloats, 1)
}

func TestSetFocusColor(t *testing.T) {
	dev := newFakeGL()
	rnd := newRenderer(t, dev)

	rnd.SetFocusColor("rgb(255,0,0)")
	test.ExpectEquality(t, dev.uniforms[fakeLocations["focus_color"]], [4]float32{1, 0, 0, 1})
	test.ExpectEquality(t, rnd.State().FocusColor, flamegl.Color{1, 0, 0, 1})

	// malformed colour leaves the previous colour in place
	rnd.SetFocusColor("not-a-color")
	test.ExpectEquality(t, dev.uniforms[fakeLocations["focus_color"]], [4]float32{1, 0, 0, 1})
	test.ExpectEquality(t, rnd.State().FocusColor, flamegl.Color{1, 0, 0, 1})

	rnd.SetFocusColor("rgba(0, 255, 0, 0.5)")
	test.ExpectEquality(t, dev.uniforms[fakeLocations["focus_color"]], [4]float32{0, 1, 0, 0.5})
}

func TestInvalidInitialFocusColor(t *testing.T) {
	dev := newFakeGL()
	_, err := flamegl.New(dev, flamegl.Options{FocusColor: "#ff0000"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dev.uniforms[fakeLocations["focus_color"]], [4]float32{1, 1, 1, 1})
}

func TestBuildFailure(t *testing.T) {
	dev := newFakeGL()
	dev.compileLog[flamegl.FragmentShader] = "0:12(3): error: syntax error, unexpected '}'"
	rnd, err := flamegl.New(dev, flamegl.Options{})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, rnd == nil)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "fragment shader"))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "syntax error, unexpected '}'"))

	// the vertex shader that did compile is deleted
	test.ExpectEquality(t, dev.deletedShaders, 1)

	dev = newFakeGL()
	dev.linkLog = "error: vertex shader output `Frag_Color' not read by fragment shader"
	_, err = flamegl.New(dev, flamegl.Options{})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "Frag_Color"))
	test.ExpectEquality(t, dev.deletedShaders, 2)
}

func TestDisabled(t *testing.T) {
	rnd, err := flamegl.New(nil, flamegl.Options{Scale: 2, Boxes: testBoxes()})
	test.ExpectSuccess(t, err)
	test.DemandSuccess(t, rnd != nil)
	test.ExpectSuccess(t, flamegl.Disabled(rnd))

	// all operations are safe and the state is still tracked
	rnd.SetBoxes(testBoxes())
	rnd.SetBounds(flame.Bounds{MinX: 0.1, MaxX: 0.2}, flamegl.Size{Width: 10, Height: 10}, 1)
	rnd.SetHovered(1)
	rnd.SetFocused(2)
	rnd.SetFocusColor("rgb(0,0,255)")
	rnd.Redraw()

	st := rnd.State()
	test.ExpectEquality(t, st.Hovered, int32(1))
	test.ExpectEquality(t, st.Focused, int32(2))
	test.ExpectEquality(t, st.FocusColor, flamegl.Color{0, 0, 1, 1})
	test.ExpectEquality(t, st.Bounds.MaxX, 0.2)

	rnd.Destroy()

	dev := newFakeGL()
	test.ExpectFailure(t, flamegl.Disabled(newRenderer(t, dev)))
}

func TestDestroy(t *testing.T) {
	dev := newFakeGL()
	rnd := newRenderer(t, dev)
	rnd.Destroy()
	test.ExpectEquality(t, dev.deletedBuffers, 2)
	test.ExpectEquality(t, dev.deletedArrays, 1)
	test.ExpectEquality(t, dev.deletedPrograms, 1)

	// nothing is drawn after destruction and resources are not deleted twice
	rnd.Redraw()
	rnd.Destroy()
	test.ExpectEquality(t, dev.draws, 0)
	test.ExpectEquality(t, dev.deletedPrograms, 1)
}
