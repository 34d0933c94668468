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

// Package sdlflame is the host view for the flame graph. It opens an SDL
// window with an OpenGL 3.2 core context, creates a flamegl.BoxRenderer and
// translates window events into renderer operations.
//
// Interaction never re-aggregates or re-lays out the profile. Hovering,
// searching, zooming and panning only change the renderer's uniforms. Loading
// a new profile replaces the box set.
//
// The Controller type holds the interaction logic and is independent of SDL.
// The View type owns the window and feeds SDL events to the Controller. All
// calls to the View and Controller must be made on the thread that created
// the View. Profiles that are loaded on another goroutine should be passed to
// View.Post().
package sdlflame
