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

package profiling

import (
	"io"
	"math"

	"github.com/google/pprof/profile"

	"github.com/jetsetilly/retroprof/curated"
)

// FromPProf converts a pprof profile into samples. The value used for the
// weight is the profile's default sample type, or the last sample type if no
// default is specified.
//
// Location addresses are used for the stack. pprof stores the innermost
// location first so the order is reversed.
func FromPProf(p *profile.Profile) ([]Sample, error) {
	if len(p.SampleType) == 0 {
		return nil, curated.Errorf("profiling: pprof: no sample types")
	}

	idx := len(p.SampleType) - 1
	if p.DefaultSampleType != "" {
		idx = -1
		for i, st := range p.SampleType {
			if st.Type == p.DefaultSampleType {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, curated.Errorf("profiling: pprof: default sample type (%s) not found", p.DefaultSampleType)
		}
	}

	samples := make([]Sample, 0, len(p.Sample))
	for _, ps := range p.Sample {
		if idx >= len(ps.Value) {
			return nil, curated.Errorf("profiling: pprof: sample has %d values", len(ps.Value))
		}

		v := ps.Value[idx]
		if v < 0 {
			return nil, curated.Errorf("profiling: pprof: negative sample value (%d)", v)
		}

		s := Sample{
			Stack:  make([]uint32, len(ps.Location)),
			Weight: uint64(v),
		}

		for i, loc := range ps.Location {
			if loc.Address > math.MaxUint32 {
				return nil, curated.Errorf("profiling: pprof: address out of range (%#x)", loc.Address)
			}
			s.Stack[len(ps.Location)-1-i] = uint32(loc.Address)
		}

		samples = append(samples, s)
	}

	return samples, nil
}

// DecodePProf parses a pprof profile, compressed or not, and converts it into
// samples.
func DecodePProf(r io.Reader) ([]Sample, error) {
	p, err := profile.Parse(r)
	if err != nil {
		return nil, curated.Errorf("profiling: pprof: %v", err)
	}
	return FromPProf(p)
}
