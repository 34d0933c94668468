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

package sdlflame

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/gui/flamegl"
	"github.com/jetsetilly/retroprof/logger"
	"github.com/jetsetilly/retroprof/profiling"
)

// the amount of zoom applied for each step of the mouse wheel
const zoomStep = 0.8

// the distance in pixels the pointer must travel for a button press to be a
// drag rather than a click
const dragThreshold = 3

// Controller translates pointer and keyboard input into BoxRenderer
// operations. Coordinates are in logical pixels with the origin at the top
// left of the view.
type Controller struct {
	rnd    flamegl.BoxRenderer
	layout *flame.Layout

	tree  *profiling.Tree
	boxes []flame.Box
	index *flame.Index

	bounds flame.Bounds
	size   flamegl.Size
	scale  float64

	hovered    flame.Box
	hasHovered bool

	// focus search
	search  string
	matches []int32
	match   int

	// drag state
	pressed   bool
	dragging  bool
	pressX    int
	lastDragX int
}

// NewController is the preferred method of initialisation for the Controller
// type. The layout is used for every profile that is loaded so that graph IDs
// are stable across reloads.
func NewController(rnd flamegl.BoxRenderer, layout *flame.Layout) *Controller {
	st := rnd.State()
	return &Controller{
		rnd:    rnd,
		layout: layout,
		index:  flame.NewIndex(nil),
		bounds: flame.FullBounds(),
		size:   st.Size,
		scale:  st.Scale,
	}
}

// Load a profile. The boxes are replaced and the hovered and focused
// functions, the search and the bounds are reset.
func (ctl *Controller) Load(t *profiling.Tree) {
	ctl.tree = t
	ctl.boxes = ctl.layout.Boxes(t)
	ctl.index = flame.NewIndex(ctl.boxes)

	ctl.hasHovered = false
	ctl.search = ""
	ctl.matches = nil
	ctl.match = 0
	ctl.pressed = false
	ctl.dragging = false
	ctl.bounds = flame.FullBounds()

	ctl.rnd.SetBoxes(ctl.boxes)
	ctl.rnd.SetHovered(flamegl.NoID)
	ctl.rnd.SetFocused(flamegl.NoID)
	ctl.rnd.SetBounds(ctl.bounds, ctl.size, ctl.scale)

	logger.Logf(logger.Allow, "sdlflame", "loaded %d boxes (total weight %d)", len(ctl.boxes), t.Total())
}

// Resize the view.
func (ctl *Controller) Resize(size flamegl.Size, scale float64) {
	ctl.size = size
	if scale > 0 {
		ctl.scale = scale
	}
	ctl.rnd.SetBounds(ctl.bounds, ctl.size, ctl.scale)
}

// Bounds returns the visible window.
func (ctl *Controller) Bounds() flame.Bounds {
	return ctl.bounds
}

// Boxes returns the boxes of the current profile.
func (ctl *Controller) Boxes() []flame.Box {
	return ctl.boxes
}

// BoxAt returns the box under the pixel coordinate.
func (ctl *Controller) BoxAt(px int, py int) (flame.Box, bool) {
	x := ctl.bounds.ToData(float64(px), float64(ctl.size.Width))

	// the root row is drawn above the top of the view
	depth := flame.DepthAt(py + flame.RowHeight)

	return ctl.index.At(x, depth)
}

// Hover updates the hovered function for the pointer position.
func (ctl *Controller) Hover(px int, py int) (flame.Box, bool) {
	if ctl.pressed {
		ctl.drag(px)
	}

	b, ok := ctl.BoxAt(px, py)
	if ok == ctl.hasHovered && b.GraphID == ctl.hovered.GraphID {
		ctl.hovered = b
		return b, ok
	}

	ctl.hovered = b
	ctl.hasHovered = ok
	if ok {
		ctl.rnd.SetHovered(b.GraphID)
	} else {
		ctl.rnd.SetHovered(flamegl.NoID)
	}

	return b, ok
}

// Hovered returns the box that was last hovered over.
func (ctl *Controller) Hovered() (flame.Box, bool) {
	return ctl.hovered, ctl.hasHovered
}

// Leave should be called when the pointer leaves the view.
func (ctl *Controller) Leave() {
	ctl.pressed = false
	ctl.dragging = false
	if ctl.hasHovered {
		ctl.hasHovered = false
		ctl.hovered = flame.Box{}
		ctl.rnd.SetHovered(flamegl.NoID)
	}
}

// Wheel zooms the view about the pointer. Positive steps zoom in.
func (ctl *Controller) Wheel(steps int, px int) {
	if steps == 0 {
		return
	}

	factor := 1.0
	for ; steps > 0; steps-- {
		factor *= zoomStep
	}
	for ; steps < 0; steps++ {
		factor /= zoomStep
	}

	anchor := ctl.bounds.ToData(float64(px), float64(ctl.size.Width))
	ctl.setBounds(ctl.bounds.Zoom(factor, anchor))
}

// Press should be called when the primary button is pressed.
func (ctl *Controller) Press(px int) {
	ctl.pressed = true
	ctl.dragging = false
	ctl.pressX = px
	ctl.lastDragX = px
}

func (ctl *Controller) drag(px int) {
	if !ctl.dragging {
		if abs(px-ctl.pressX) < dragThreshold {
			return
		}
		ctl.dragging = true
	}

	dx := px - ctl.lastDragX
	ctl.lastDragX = px
	if dx != 0 {
		ctl.setBounds(ctl.bounds.PanPixels(float64(dx), float64(ctl.size.Width)))
	}
}

// Release should be called when the primary button is released. If the
// pointer has not been dragged since the button was pressed then the release
// is a click, and the function under the pointer is focused. Clicking on
// empty space clears the focus.
func (ctl *Controller) Release(px int, py int) {
	if !ctl.pressed {
		return
	}
	ctl.pressed = false
	if ctl.dragging {
		ctl.dragging = false
		return
	}

	b, ok := ctl.BoxAt(px, py)
	if !ok {
		ctl.ClearFocus()
		return
	}

	ctl.search = ""
	ctl.matches = []int32{b.GraphID}
	ctl.match = 0
	ctl.rnd.SetFocused(b.GraphID)
}

// ZoomTo fits the box under the pointer to the view.
func (ctl *Controller) ZoomTo(px int, py int) {
	if b, ok := ctl.BoxAt(px, py); ok {
		ctl.setBounds(flame.BoxBounds(b))
	}
}

// ResetZoom shows the entire flame graph.
func (ctl *Controller) ResetZoom() {
	ctl.setBounds(flame.FullBounds())
}

func (ctl *Controller) setBounds(b flame.Bounds) {
	if b == ctl.bounds {
		return
	}
	ctl.bounds = b
	ctl.rnd.SetBounds(ctl.bounds, ctl.size, ctl.scale)
}

// Search focuses the first function whose name contains the text. An empty
// string clears the focus.
func (ctl *Controller) Search(text string) {
	ctl.search = text
	ctl.matches = ctl.layout.Search(text)
	ctl.match = 0
	ctl.applyMatch()
}

// Type adds text to the search.
func (ctl *Controller) Type(text string) {
	ctl.Search(ctl.search + text)
}

// Backspace removes the last character from the search.
func (ctl *Controller) Backspace() {
	if ctl.search == "" {
		return
	}
	r := []rune(ctl.search)
	ctl.Search(string(r[:len(r)-1]))
}

// NextMatch focuses the next function that matches the search.
func (ctl *Controller) NextMatch() {
	if len(ctl.matches) == 0 {
		return
	}
	ctl.match = (ctl.match + 1) % len(ctl.matches)
	ctl.applyMatch()
}

func (ctl *Controller) applyMatch() {
	if len(ctl.matches) == 0 {
		ctl.rnd.SetFocused(flamegl.NoID)
		return
	}
	ctl.rnd.SetFocused(ctl.matches[ctl.match])
}

// ClearFocus removes the focus and the search.
func (ctl *Controller) ClearFocus() {
	ctl.search = ""
	ctl.matches = nil
	ctl.match = 0
	ctl.rnd.SetFocused(flamegl.NoID)
}

// Status is a single line summary of the view. Suitable for a window title.
func (ctl *Controller) Status() string {
	if ctl.tree == nil {
		return "no profile"
	}

	s := strings.Builder{}
	if ctl.hasHovered {
		b := ctl.hovered
		n := ctl.tree.Nodes[b.Node]
		s.WriteString(fmt.Sprintf("%s: %d (%.2f%%) self %d", b.Loc, n.Inclusive,
			percent(n.Inclusive, ctl.tree.Total()), n.Exclusive))
	} else {
		s.WriteString(fmt.Sprintf("total %d", ctl.tree.Total()))
	}

	if ctl.search != "" {
		s.WriteString(fmt.Sprintf(" | search %q", ctl.search))
		if len(ctl.matches) == 0 {
			s.WriteString(" (no match)")
		} else {
			s.WriteString(fmt.Sprintf(" (%d of %d)", ctl.match+1, len(ctl.matches)))
		}
	} else if len(ctl.matches) > 0 {
		if sym := ctl.layout.Symbol(ctl.matches[ctl.match]); sym != nil {
			s.WriteString(fmt.Sprintf(" | focus %s", sym.Name))
		}
	}

	if ctl.bounds != flame.FullBounds() {
		s.WriteString(fmt.Sprintf(" | zoom %.1fx", 1/ctl.bounds.Width()))
	}

	return s.String()
}

func percent(v uint64, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(v) / float64(total) * 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
