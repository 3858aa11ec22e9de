// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package tui

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pion/logging"
)

// debounceWindow batches the event bursts an install produces into a
// single reload.
const debounceWindow = 250 * time.Millisecond

// watcher turns filesystem events under the packs directory into a
// debounced change signal.
type watcher struct {
	fsw *fsnotify.Watcher
	dir string
	ch  chan struct{}
	log logging.LeveledLogger

	stopCh chan struct{}
	doneCh chan struct{}
}

func watchPacks(dir string, factory logging.LoggerFactory) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		fsw:    fsw,
		dir:    dir,
		ch:     make(chan struct{}, 1),
		log:    factory.NewLogger("watch"),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.addPackDirs()

	go w.run()
	return w, nil
}

// addPackDirs registers the per-pack subdirectories; fsnotify does not
// watch recursively.
func (w *watcher) addPackDirs() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.log.Debugf("read %s: %v", w.dir, err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.fsw.Add(filepath.Join(w.dir, entry.Name())); err != nil {
			w.log.Debugf("watch %s: %v", entry.Name(), err)
		}
	}
}

// Changes signals at most once per debounce window after activity.
func (w *watcher) Changes() <-chan struct{} { return w.ch }

func (w *watcher) Close() error {
	close(w.stopCh)
	<-w.doneCh
	err := w.fsw.Close()
	close(w.ch)
	return err
}

func (w *watcher) run() {
	defer close(w.doneCh)

	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debugf("%s %s", event.Op, event.Name)

			// A freshly installed pack arrives as a new directory.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.log.Debugf("watch %s: %v", event.Name, err)
					}
				}
			}

			pending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounceWindow)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("watch error: %v", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.ch <- struct{}{}:
			default:
			}
		}
	}
}
