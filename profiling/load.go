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
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/logger"
)

// Format of a samples file.
type Format string

// List of valid Format values.
const (
	FormatAuto   Format = "auto"
	FormatStacks Format = "stacks"
	FormatSizes  Format = "sizes"
	FormatPProf  Format = "pprof"
)

// Formats lists the formats that can be given to Load().
var Formats = []Format{FormatAuto, FormatStacks, FormatSizes, FormatPProf}

// FormatFromPath chooses a format based on the file extension. Files ending
// in .pprof or .pb.gz are pprof profiles, files ending in .sizes are size
// tables and anything else is assumed to be collapsed stacks.
func FormatFromPath(path string) Format {
	p := strings.ToLower(path)
	switch {
	case strings.HasSuffix(p, ".pb.gz"), strings.HasSuffix(p, ".pprof"):
		return FormatPProf
	case filepath.Ext(p) == ".sizes":
		return FormatSizes
	}
	return FormatStacks
}

// Decode samples from the io.Reader in the specified format. FormatAuto is
// not accepted because there is no path to choose a format by.
func Decode(r io.Reader, format Format) ([]Sample, error) {
	switch format {
	case FormatStacks:
		return DecodeStacks(r)
	case FormatSizes:
		return DecodeSizes(r)
	case FormatPProf:
		return DecodePProf(r)
	}
	return nil, curated.Errorf("profiling: unsupported format (%s)", format)
}

// Load samples from the file. If format is FormatAuto then the format is
// chosen by FormatFromPath().
func Load(path string, format Format) ([]Sample, error) {
	if format == FormatAuto || format == "" {
		format = FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("profiling: %v", err)
	}
	defer f.Close()

	samples, err := Decode(f, format)
	if err != nil {
		return nil, curated.Errorf("%s: %v", filepath.Base(path), err)
	}

	logger.Logf(logger.Allow, "profiling", "loaded %d samples from %s (%s)", len(samples), filepath.Base(path), format)

	return samples, nil
}
