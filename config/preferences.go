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

// Package config holds the user preferences for the application. The
// preferences are stored on disk with the prefs package.
package config

import (
	"github.com/jetsetilly/retroprof/prefs"
	"github.com/jetsetilly/retroprof/resources"
)

// DefaultPrefsFile is the name of the preferences file in the resources
// directory.
const DefaultPrefsFile = "preferences.yaml"

// Preferences for the application.
type Preferences struct {
	dsk *prefs.Disk

	// colour of the focused function in the flame graph. a CSS rgb() or
	// rgba() string
	FocusColor prefs.String

	// path to a YAML file of category rules. empty for the default classifier
	Rules prefs.String

	// initial window size
	Width  prefs.Int
	Height prefs.Int

	// echo log entries to stderr
	LogEcho  prefs.Bool
	LogLevel prefs.String
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

const (
	focusColor = "rgba(255,255,255,1)"
	rules      = ""
	width      = 1024
	height     = 600
	logEcho    = false
	logLevel   = "info"
)

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If path is empty then the preferences file in the resources directory
// is used.
//
// The values are loaded from disk. Values on the prefs command line stack
// take precedence.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	err := p.SetDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path, err = resources.JoinPath(DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("flame.focuscolor", &p.FocusColor)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("flame.rules", &p.Rules)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("view.width", &p.Width)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("view.height", &p.Height)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("log.echo", &p.LogEcho)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("log.level", &p.LogLevel)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() error {
	for _, d := range []struct {
		p interface{ Set(prefs.Value) error }
		v prefs.Value
	}{
		{&p.FocusColor, focusColor},
		{&p.Rules, rules},
		{&p.Width, width},
		{&p.Height, height},
		{&p.LogEcho, logEcho},
		{&p.LogLevel, logLevel},
	} {
		if err := d.p.Set(d.v); err != nil {
			return err
		}
	}
	return nil
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Path returns the location of the preferences file.
func (p *Preferences) Path() string {
	return p.dsk.Path()
}
