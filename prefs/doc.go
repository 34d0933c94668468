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

// Package prefs holds typed preference values and the Disk type that stores
// them in a YAML file. Each value can carry a pre and post hook, which is how
// a change of preference reaches the component it configures:
//
//	var color prefs.String
//	color.SetHookPost(func(v prefs.Value) error {
//		rnd.SetFocusColor(v.(string))
//		return nil
//	})
//
// Values given on the command line (see PushCommandLineStack()) override the
// values loaded from the file.
package prefs
