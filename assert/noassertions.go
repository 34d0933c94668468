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

//go:build !assertions
// +build !assertions

package assert

// Enabled is true when the package has been built with the "assertions" tag
const Enabled = false

// Goroutine does nothing unless built with the "assertions" tag.
func Goroutine(_ uint64) {
}

// That does nothing unless built with the "assertions" tag.
func That(_ bool, _ string, _ ...any) {
}

// NoError does nothing unless built with the "assertions" tag.
func NoError(_ error) {
}
