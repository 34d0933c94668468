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

package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/logger"
)

// WarningBoilerPlate is written to the top of every prefs file.
const WarningBoilerPlate = "# *** do not edit this file by hand while retroprof is running ***"

// Disk represents preference values as stored on disk. Values are stored as a
// flat YAML mapping of key to value.
type Disk struct {
	crit sync.Mutex
	path string

	entries map[string]pref

	// values found in the prefs file for keys that have not been added to
	// this Disk. they are written back unchanged by Save()
	unknown map[string]string
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
		unknown: make(map[string]string),
	}, nil
}

// Path returns the location of the prefs file.
func (dsk *Disk) Path() string {
	return dsk.path
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s: %s\n", k, dsk.entries[k].String()))
	}
	return s.String()
}

// Add preference value to list of values to store/load from Disk. The key
// value is the label under which the preference is stored in the file.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.ContainsAny(key, " \t\n:") {
		return curated.Errorf("prefs: illegal character in key (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: key already added (%s)", key)
	}

	dsk.entries[key] = p

	// a value previously seen in the file is no longer unknown
	delete(dsk.unknown, key)

	return nil
}

// Reset all preference values to their zero value.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}
	return nil
}

// Load preference values from disk. A missing file is not an error and
// leaves the current values in place. Values on the command line stack (see
// PushCommandLineStack()) take precedence over the values in the file.
func (dsk *Disk) Load() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	data, err := os.ReadFile(dsk.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return curated.Errorf("prefs: %v", err)
	}

	values, err := decode(data)
	if err != nil {
		return curated.Errorf("prefs: %s: %v", dsk.path, err)
	}

	for k, v := range values {
		p, ok := dsk.entries[k]
		if !ok {
			dsk.unknown[k] = v
			continue
		}
		if err := p.Set(v); err != nil {
			return curated.Errorf("prefs: %s: %v", k, err)
		}
	}

	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", k, err)
			}
			logger.Logf(logger.Allow, "prefs", "%s set from command line: %v", k, v)
		}
	}

	return nil
}

// Save current preference values to disk. Values for keys that have not been
// added to the Disk but which were present in the file when it was loaded
// are preserved.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	values := make(map[string]string, len(dsk.entries)+len(dsk.unknown))
	for k, v := range dsk.unknown {
		values[k] = v
	}
	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	// yaml.v3 sorts map keys so the output is stable
	data, err := yaml.Marshal(values)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	var b bytes.Buffer
	b.WriteString(WarningBoilerPlate)
	b.WriteString("\n")
	b.Write(data)

	if err := os.WriteFile(dsk.path, b.Bytes(), 0o600); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// decode the prefs file into a map of strings. scalar values of any YAML type
// are accepted and converted to their string form.
func decode(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("value for %s is not a scalar", k)
		case nil:
			values[k] = ""
		default:
			values[k] = fmt.Sprintf("%v", v)
		}
	}
	return values, nil
}
