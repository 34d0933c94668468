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
	"context"
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/gui/flamegl"
	"github.com/jetsetilly/retroprof/logger"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/version"
)

// how long to wait for an SDL event before checking the reload channel
const eventTimeout = 50

// Config for a new View.
type Config struct {
	// initial size of the window in logical pixels
	Width  int
	Height int

	// focus colour as a CSS rgb() or rgba() string
	FocusColor string

	// layout used for every profile that is loaded. if nil a layout with
	// the default classifier is used
	Layout *flame.Layout
}

// View is an SDL window showing a flame graph.
type View struct {
	window    *sdl.Window
	glContext sdl.GLContext

	rnd flamegl.BoxRenderer
	ctl *Controller

	reload chan *profiling.Tree

	// the name of the profile shown in the window title
	name string
}

// NewView creates the window. It must be called from the main thread and all
// other calls to the View must be made from the same thread.
//
// If an OpenGL 3.2 core context cannot be created then the window is still
// opened but nothing is drawn in it. The window title continues to show
// information about the profile.
func NewView(cfg Config) (*View, error) {
	// the SDL package calls LockOSThread() but we call it here too
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf("sdlflame: %v", err)
	}

	for _, a := range []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 3},
		{sdl.GL_CONTEXT_MINOR_VERSION, 2},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	} {
		err = sdl.GLSetAttribute(a.attr, a.value)
		if err != nil {
			sdl.Quit()
			return nil, curated.Errorf("sdlflame: %v", err)
		}
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdlflame", "sdl version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Layout == nil {
		cfg.Layout = flame.NewLayout(nil)
	}

	v := &View{
		reload: make(chan *profiling.Tree, 1),
	}

	v.window, err = sdl.CreateWindow(version.ApplicationName,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf("sdlflame: %v", err)
	}

	dev := v.createDevice()

	v.rnd, err = flamegl.New(dev, flamegl.Options{
		Scale:      v.scale(),
		FocusColor: cfg.FocusColor,
	})
	if err != nil {
		v.Destroy()
		return nil, err
	}

	v.ctl = NewController(v.rnd, cfg.Layout)
	v.ctl.Resize(v.size(), v.scale())

	return v, nil
}

// createDevice returns nil if there is no GL context. the renderer will be
// disabled in that case.
func (v *View) createDevice() flamegl.GL {
	var err error

	v.glContext, err = v.window.GLCreateContext()
	if err != nil {
		logger.Logf(logger.Allow, "sdlflame", "no GL context: %v", err)
		return nil
	}

	err = v.window.GLMakeCurrent(v.glContext)
	if err != nil {
		logger.Logf(logger.Allow, "sdlflame", "no GL context: %v", err)
		return nil
	}

	major, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	minor, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	logger.Logf(logger.Allow, "sdlflame", "using GL version %d.%d core", major, minor)

	err = sdl.GLSetSwapInterval(1)
	if err != nil {
		logger.Logf(logger.Allow, "sdlflame", "GLSetSwapInterval(1): %v", err)
	}

	dev, err := flamegl.NewGL32()
	if err != nil {
		logger.Log(logger.Allow, "sdlflame", err)
		return nil
	}

	return dev
}

// size of the window in logical pixels.
func (v *View) size() flamegl.Size {
	w, h := v.window.GetSize()
	return flamegl.Size{Width: int(w), Height: int(h)}
}

// scale is the ratio of drawable pixels to logical pixels.
func (v *View) scale() float64 {
	w, _ := v.window.GetSize()
	if w == 0 || v.glContext == nil {
		return 1
	}
	dw, _ := v.window.GLGetDrawableSize()
	return float64(dw) / float64(w)
}

// Renderer returns the BoxRenderer used by the view.
func (v *View) Renderer() flamegl.BoxRenderer {
	return v.rnd
}

// Controller returns the interaction controller used by the view.
func (v *View) Controller() *Controller {
	return v.ctl
}

// Post a new profile to the view. It is safe to call from any goroutine. The
// profile is loaded by Run() on the main thread. If an earlier profile has not
// yet been loaded it is replaced.
func (v *View) Post(t *profiling.Tree) {
	for {
		select {
		case v.reload <- t:
			return
		default:
			select {
			case <-v.reload:
			default:
			}
		}
	}
}

// SetName sets the profile name shown in the window title.
func (v *View) SetName(name string) {
	v.name = name
	v.updateTitle()
}

// Load replaces the profile. Must be called on the main thread.
func (v *View) Load(t *profiling.Tree) {
	v.ctl.Load(t)
	v.present()
}

// Run services events until the window is closed or the context is
// cancelled.
func (v *View) Run(ctx context.Context) error {
	v.window.Show()
	v.present()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-v.reload:
			v.Load(t)
		default:
		}

		ev := sdl.WaitEventTimeout(eventTimeout)
		if ev == nil {
			continue
		}

		for ; ev != nil; ev = sdl.PollEvent() {
			if quit := v.service(ev); quit {
				return nil
			}
		}

		v.present()
	}
}

// service a single event. returns true if the view should close.
func (v *View) service(ev sdl.Event) bool {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return true

	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			v.ctl.Resize(v.size(), v.scale())
		case sdl.WINDOWEVENT_LEAVE:
			v.ctl.Leave()
		case sdl.WINDOWEVENT_EXPOSED:
			v.rnd.Redraw()
		}

	case *sdl.MouseMotionEvent:
		v.ctl.Hover(int(ev.X), int(ev.Y))

	case *sdl.MouseWheelEvent:
		x, _, _ := sdl.GetMouseState()
		steps := int(ev.Y)
		if ev.Direction == sdl.MOUSEWHEEL_FLIPPED {
			steps = -steps
		}
		v.ctl.Wheel(steps, int(x))

	case *sdl.MouseButtonEvent:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			switch ev.Type {
			case sdl.MOUSEBUTTONDOWN:
				if ev.Clicks == 2 {
					v.ctl.ZoomTo(int(ev.X), int(ev.Y))
				} else {
					v.ctl.Press(int(ev.X))
				}
			case sdl.MOUSEBUTTONUP:
				v.ctl.Release(int(ev.X), int(ev.Y))
			}
		case sdl.BUTTON_RIGHT:
			if ev.Type == sdl.MOUSEBUTTONUP {
				v.ctl.ResetZoom()
			}
		}

	case *sdl.TextInputEvent:
		v.ctl.Type(ev.GetText())

	case *sdl.KeyboardEvent:
		if ev.Type != sdl.KEYDOWN {
			break
		}
		switch ev.Keysym.Sym {
		case sdl.K_ESCAPE:
			v.ctl.ClearFocus()
		case sdl.K_BACKSPACE:
			v.ctl.Backspace()
		case sdl.K_TAB, sdl.K_RETURN:
			v.ctl.NextMatch()
		case sdl.K_HOME:
			v.ctl.ResetZoom()
		}
	}

	return false
}

// present the drawn frame and update the window title.
func (v *View) present() {
	if !flamegl.Disabled(v.rnd) {
		v.window.GLSwap()
	}
	v.updateTitle()
}

func (v *View) updateTitle() {
	title := fmt.Sprintf("%s (%s)", version.ApplicationName, v.ctl.Status())
	if v.name != "" {
		title = fmt.Sprintf("%s - %s", title, v.name)
	}
	v.window.SetTitle(title)
}

// Destroy the view and release its resources.
func (v *View) Destroy() {
	if v.rnd != nil {
		v.rnd.Destroy()
		v.rnd = nil
	}
	if v.glContext != nil {
		sdl.GLDeleteContext(v.glContext)
		v.glContext = nil
	}
	if v.window != nil {
		err := v.window.Destroy()
		if err != nil {
			logger.Log(logger.Allow, "sdlflame", err)
		}
		v.window = nil
	}
	sdl.Quit()
}
