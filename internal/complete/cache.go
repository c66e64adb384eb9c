package complete

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/toba/gosh/internal/lookup"
)

// Cache memoizes the PATH executable enumeration between tab presses.
// Directory changes observed through fsnotify mark the cache dirty; the
// next request rescans. Completion tolerates staleness, so events only
// flip a flag instead of rebuilding eagerly.
type Cache struct {
	mu      sync.Mutex
	names   []string
	scanned bool
	dirty   bool
	watched map[string]bool
	watcher *fsnotify.Watcher
}

// NewCache returns a Cache and starts the directory watcher when the
// platform supports it. A failed watcher is not an error; the cache
// then degrades to rescanning on every request.
func NewCache() *Cache {
	c := &Cache{watched: make(map[string]bool)}
	if w, err := fsnotify.NewWatcher(); err == nil {
		c.watcher = w
		go c.watch()
	}
	return c
}

// Executables returns the cached PATH executable names, rescanning when
// the cache is dirty or a PATH directory is not yet watched.
func (c *Cache) Executables() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirs := lookup.Dirs()
	if !c.scanned || c.dirty || c.missingWatches(dirs) {
		c.names = lookup.Executables()
		c.scanned = true
		c.dirty = false
		c.rewatch(dirs)
	}
	return c.names
}

// Close releases the watcher.
func (c *Cache) Close() {
	if c.watcher != nil {
		c.watcher.Close() //nolint:errcheck // shutdown
	}
}

// watch flips the dirty flag on any event in a watched directory.
func (c *Cache) watch() {
	for {
		select {
		case _, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			c.mu.Lock()
			c.dirty = true
			c.mu.Unlock()
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// missingWatches reports whether a PATH directory is not yet watched,
// which also covers PATH edits mid-session.
func (c *Cache) missingWatches(dirs []string) bool {
	for _, dir := range dirs {
		if !c.watched[dir] {
			return true
		}
	}
	return false
}

// rewatch aligns the watch set with the current PATH directories.
// Directories that cannot be watched are skipped silently.
func (c *Cache) rewatch(dirs []string) {
	if c.watcher == nil {
		return
	}
	current := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		current[dir] = true
		if !c.watched[dir] {
			if err := c.watcher.Add(dir); err == nil {
				c.watched[dir] = true
			}
		}
	}
	for dir := range c.watched {
		if !current[dir] {
			c.watcher.Remove(dir) //nolint:errcheck // best-effort
			delete(c.watched, dir)
		}
	}
}
