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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/logger"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/symbols"
	"github.com/jetsetilly/retroprof/watcher"
)

// inputs are the files that a profile is built from.
type inputs struct {
	symbols string
	samples string
	format  string
	rules   string
}

// name of the profile for display purposes.
func (in inputs) name() string {
	return filepath.Base(in.samples)
}

// load the symbol listing and the samples and aggregate them into a call
// tree. if there is no symbol listing then every address is unresolved.
func (in inputs) load() (*profiling.Tree, error) {
	if in.samples == "" {
		return nil, curated.Errorf("no samples file specified")
	}

	var entries []symbols.Symbol
	if in.symbols != "" {
		f, err := os.Open(in.symbols)
		if err != nil {
			return nil, curated.Errorf("symbols: %v", err)
		}
		defer f.Close()

		entries, err = symbols.ReadListing(f)
		if err != nil {
			return nil, curated.Errorf("%s: %v", filepath.Base(in.symbols), err)
		}
	} else {
		logger.Log(logger.Allow, "retroprof", "no symbols file: all addresses will be unresolved")
	}

	samples, err := profiling.Load(in.samples, profiling.Format(in.format))
	if err != nil {
		return nil, err
	}

	return profiling.Aggregate(samples, symbols.NewTable(entries)), nil
}

// layout returns a flame.Layout that classifies functions with the rules file,
// or with the default classifier if there is no rules file.
func (in inputs) layout() (*flame.Layout, error) {
	if in.rules == "" {
		return flame.NewLayout(nil), nil
	}

	rls, err := flame.LoadRulesFile(in.rules)
	if err != nil {
		return nil, err
	}

	return flame.NewLayout(rls.Classify), nil
}

// validFormat returns an error if the format is not one of profiling.Formats.
func validFormat(format string) error {
	for _, f := range profiling.Formats {
		if profiling.Format(format) == f {
			return nil
		}
	}
	return curated.Errorf("unsupported samples format (%s)", format)
}

// watch the symbols and samples files and call onLoad with a newly
// aggregated tree whenever either changes. returns when the context is
// cancelled. onLoad is called from the watching goroutine.
func (in inputs) watch(ctx context.Context, onLoad func(*profiling.Tree)) error {
	paths := []string{in.samples}
	if in.symbols != "" {
		paths = append(paths, in.symbols)
	}

	w, err := watcher.New(paths, watcher.DefaultDebounce)
	if err != nil {
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Changes():
				if !ok {
					return
				}
				t, err := in.load()
				if err != nil {
					logger.Log(logger.Allow, "retroprof", err)
					continue
				}
				onLoad(t)
			}
		}
	}()

	return nil
}
