package content

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Defaults is the sample content compiled into the binary.
//
//go:embed defaults
var Defaults embed.FS

// DefaultFS returns Defaults rooted at the content directory.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(Defaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

const reloadDebounce = 250 * time.Millisecond

// Library serves the current catalog and swaps in a new one on Reload.
// Readers always see a complete snapshot.
type Library struct {
	mu       sync.RWMutex
	fsys     fs.FS
	catalog  *Catalog
	loadedAt time.Time
	onReload []func(error)
}

// NewLibrary loads fsys once and returns a library serving it.
func NewLibrary(fsys fs.FS) (*Library, error) {
	l := &Library{fsys: fsys}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Catalog returns the current snapshot. Callers must not modify it.
func (l *Library) Catalog() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

// LoadedAt is when the current snapshot was built.
func (l *Library) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedAt
}

// Reload re-reads the content tree. On failure the previous snapshot stays.
func (l *Library) Reload() error {
	c, err := Load(l.fsys)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.catalog = c
	l.loadedAt = time.Now()
	l.mu.Unlock()
	return nil
}

// OnReload registers fn to run after every watcher-triggered reload with
// the reload's outcome.
func (l *Library) OnReload(fn func(error)) {
	l.mu.Lock()
	l.onReload = append(l.onReload, fn)
	l.mu.Unlock()
}

func (l *Library) notify(err error) {
	l.mu.RLock()
	hooks := l.onReload
	l.mu.RUnlock()
	for _, fn := range hooks {
		fn(err)
	}
}

// Watch reloads the library whenever a file under dir changes, until ctx is
// done. Bursts of events are collapsed into one reload.
func (l *Library) Watch(ctx context.Context, dir string, log zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if event.Has(fsnotify.Create) {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					err := l.Reload()
					l.notify(err)
					if err != nil {
						log.Error().Err(err).Str("dir", dir).Msg("content reload failed")
						return
					}
					log.Info().Str("dir", dir).Msg("content reloaded")
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("content watcher error")
			}
		}
	}()
	return nil
}
