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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is what identifies the
// error and packages export their patterns as constants so that callers can
// test for them. For example:
//
//	const ShaderCompile = "flamegl: shader compile: %s"
//
//	e := curated.Errorf(ShaderCompile, log)
//	if curated.Is(e, ShaderCompile) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. A chain is formed by passing an error as one of the values
// to Errorf():
//
//	f := curated.Errorf("retroprof: %v", e)
//	curated.Has(f, ShaderCompile) // true
//	curated.Is(f, ShaderCompile)  // false
//
// Curated errors also implement Unwrap() so the errors package in the
// standard library can see through them. Unwrap() returns every error value
// in the chain.
//
// The Error() function implementation for curated errors ensures that the
// error message is normalised. Specifically, that the message does not
// contain duplicate adjacent parts. This alleviates the problem of when and
// how to wrap errors. If two functions in a call chain both wrap with the
// pattern "symbols: %v" the message will read:
//
//	symbols: line 3: not enough fields
//
// and not:
//
//	symbols: symbols: line 3: not enough fields
package curated
