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

// Package assert contains checks for conditions that indicate a programming
// error rather than bad input. The checks panic when the program is built with
// the "assertions" build tag and are stubbed otherwise:
//
//	go build -tags=assertions
//
// Callers that need the result of an expensive check should test the Enabled
// constant first, so that the check is not performed at all in normal builds.
package assert
