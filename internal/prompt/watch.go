// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// REGISTRY FILE
// =============================================================================

// registryFile is the TOML shape of a prompt registry file:
//
//	[prompts]
//	dictionary-to-csv = "You are a dictionary. ..."
type registryFile struct {
	Prompts map[string]string `toml:"prompts"`
}

// LoadFile reads a registry file and overlays its entries on the built-in
// defaults. A missing file is not an error: the defaults are returned.
func LoadFile(path string) (Registry, error) {
	reg := DefaultRegistry()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return reg, fmt.Errorf("read prompt registry: %w", err)
	}

	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return reg, fmt.Errorf("parse prompt registry: %w", err)
	}

	return reg.Merge(file.Prompts), nil
}

// =============================================================================
// REGISTRY WATCHER
// =============================================================================

// Watcher reloads the prompt registry when its file changes on disk.
// Events are debounced so editors that write in multiple steps trigger a
// single reload.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	reloads chan Registry
	done    chan struct{}
}

// NewWatcher creates a watcher for the given registry file. The file does not
// need to exist yet; its directory is watched so a later create is seen.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create registry watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch registry directory: %w", err)
	}

	w := &Watcher{
		path:     path,
		debounce: debounce,
		watcher:  fsw,
		reloads:  make(chan Registry, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Reloads returns the channel on which freshly loaded registries are
// delivered. The channel is closed when the watcher is closed.
func (w *Watcher) Reloads() <-chan Registry {
	return w.reloads
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.reloads)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			reg, err := LoadFile(w.path)
			if err != nil {
				// A half-written file parses on the next change.
				continue
			}
			// Latest registry wins if the consumer is slow.
			select {
			case w.reloads <- reg:
			default:
				select {
				case <-w.reloads:
				default:
				}
				select {
				case w.reloads <- reg:
				default:
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
