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

// Package watcher reports changes to a set of files. Changes are debounced so
// that a file that is written several times in quick succession is reported
// once.
//
// The directories containing the files are watched, rather than the files
// themselves, so that files which are replaced by renaming a new file over
// the old one continue to be reported.
package watcher

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/logger"
)

// DefaultDebounce is a suitable debounce period for files written by a
// compiler or profiler.
const DefaultDebounce = 250 * time.Millisecond

// Watcher sends the path of a file on the Changes() channel when it has been
// written to or created.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration

	changes chan string

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts watching the files. The paths sent on the Changes() channel are
// the absolute form of the paths given here.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, curated.Errorf("watcher: no files to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, curated.Errorf("watcher: %v", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		debounce: debounce,
		changes:  make(chan string),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, curated.Errorf("watcher: %v", err)
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true

		err = fsw.Add(dir)
		if err != nil {
			fsw.Close()
			return nil, curated.Errorf("watcher: %s: %v", dir, err)
		}
		logger.Logf(logger.Allow, "watcher", "watching %s", dir)
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Changes returns the channel on which changed files are reported. The
// channel is closed when the Watcher is closed.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.changes)
	})
	if err != nil {
		return curated.Errorf("watcher: %v", err)
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.files[ev.Name] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			pending[ev.Name] = true

			// restart the debounce period on every event
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil

			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			for _, p := range changed {
				logger.Logf(logger.Allow, "watcher", "changed: %s", p)
				select {
				case w.changes <- p:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Log(logger.Allow, "watcher", err)
		}
	}
}
