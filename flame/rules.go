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

package flame

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/symbols"
)

// Rule assigns a category to the symbols that match it. A symbol matches if
// its file matches one of the Files patterns and its name matches one of the
// Names patterns. An empty list of patterns matches everything.
//
// Patterns use the syntax of path.Match(). File patterns that contain a slash
// are matched against the full path of the file. Other file patterns are
// matched against the base name.
type Rule struct {
	Category string   `yaml:"category"`
	Files    []string `yaml:"files"`
	Names    []string `yaml:"names"`

	category Category
}

// Rules is an ordered list of Rule. The first rule to match a symbol decides
// its category.
type Rules struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules decodes a YAML list of rules:
//
//	rules:
//	  - category: runtime
//	    files: ["crt0.s", "libc/*"]
//	  - category: library
//	    names: ["gfx_*", "snd_*"]
//
// Unknown categories and malformed patterns are errors.
func LoadRules(r io.Reader) (*Rules, error) {
	var rls Rules

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rls); err != nil && err != io.EOF {
		return nil, curated.Errorf("flame: rules: %v", err)
	}

	for i := range rls.Rules {
		rl := &rls.Rules[i]

		var err error
		rl.category, err = ParseCategory(rl.Category)
		if err != nil {
			return nil, curated.Errorf("flame: rules: rule %d: %v", i+1, err)
		}

		for _, pats := range [][]string{rl.Files, rl.Names} {
			for _, p := range pats {
				if _, err := path.Match(p, ""); err != nil {
					return nil, curated.Errorf("flame: rules: rule %d: %s: %v", i+1, p, err)
				}
			}
		}
	}

	return &rls, nil
}

// LoadRulesFile is like LoadRules but reads from the named file.
func LoadRulesFile(filename string) (*Rules, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("flame: rules: %v", err)
	}
	defer f.Close()
	return LoadRules(f)
}

// Classify implements the Classifier type. Unresolved symbols are always
// CategoryUnknown and symbols that match no rule are CategoryUser.
func (rls *Rules) Classify(sym *symbols.Symbol) Category {
	if sym == symbols.Unresolved {
		return CategoryUnknown
	}
	for i := range rls.Rules {
		if rls.Rules[i].match(sym) {
			return rls.Rules[i].category
		}
	}
	return CategoryUser
}

func (rl *Rule) match(sym *symbols.Symbol) bool {
	return matchFile(rl.Files, sym.File) && matchAny(rl.Names, sym.Name)
}

func matchFile(patterns []string, file string) bool {
	if len(patterns) == 0 {
		return true
	}
	file = filepath.ToSlash(file)
	base := path.Base(file)
	for _, p := range patterns {
		s := file
		if !strings.ContainsRune(p, '/') {
			s = base
		}
		if ok, _ := path.Match(p, s); ok {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, s string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := path.Match(p, s); ok {
			return true
		}
	}
	return false
}
