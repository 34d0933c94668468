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

//go:build assertions
// +build assertions

package assert

import "fmt"

// Enabled is true when the package has been built with the "assertions" tag
const Enabled = true

// Goroutine panics if the calling goroutine is not the one identified by id.
// The renderer is owned by a single goroutine and uses this to catch calls
// from anywhere else.
func Goroutine(id uint64) {
	if cur := GetGoRoutineID(); cur != id {
		panic(fmt.Sprintf("assert: called from goroutine %d, expected goroutine %d", cur, id))
	}
}

// That panics with the message if the condition is false.
func That(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assert: "+msg, args...))
	}
}

// NoError panics if the error is not nil.
func NoError(err error) {
	if err != nil {
		panic(fmt.Sprintf("assert: %v", err))
	}
}
