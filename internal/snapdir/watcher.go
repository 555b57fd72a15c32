package snapdir

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const invalidatingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Write

// CachedLister caches the directory listing and drops the cache whenever the
// directory changes. If the watcher cannot be set up it passes every call
// through to the underlying DirLister.
type CachedLister struct {
	source *DirLister
	logger zerolog.Logger

	mu         sync.RWMutex
	names      []string
	valid      bool
	generation uint64

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	running   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewCachedLister wraps source with a watched cache.
func NewCachedLister(source *DirLister, logger zerolog.Logger) *CachedLister {
	c := &CachedLister{
		source:   source,
		logger:   logger.With().Str("component", "CachedLister").Str("dir", source.Dir()).Logger(),
		stopChan: make(chan struct{}),
	}

	if err := c.setupWatcher(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to watch snapshot directory, listing uncached")
	}
	return c
}

func (c *CachedLister) setupWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(c.source.Dir()); err != nil {
		watcher.Close()
		return err
	}
	c.watcher = watcher
	c.logger.Info().Msg("Watching snapshot directory for changes")
	return nil
}

// Watching reports whether the cache is active.
func (c *CachedLister) Watching() bool {
	return c.watcher != nil && c.running.Load()
}

// Start runs the event loop until ctx is done or Close is called. The cache
// is only used while the loop runs. Without a watcher it does nothing.
func (c *CachedLister) Start(ctx context.Context) {
	if c.watcher == nil {
		return
	}
	c.startOnce.Do(func() {
		c.running.Store(true)
		go c.watchLoop(ctx)
	})
}

// Close stops the watcher.
func (c *CachedLister) Close() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopChan)
		if c.watcher != nil {
			err = c.watcher.Close()
		}
	})
	return err
}

// ListFilenames serves the cached listing, reading the directory on a miss.
func (c *CachedLister) ListFilenames(ctx context.Context) ([]string, error) {
	if !c.Watching() {
		return c.source.ListFilenames(ctx)
	}

	c.mu.RLock()
	if c.valid {
		names := append([]string(nil), c.names...)
		c.mu.RUnlock()
		return names, nil
	}
	gen := c.generation
	c.mu.RUnlock()

	names, err := c.source.ListFilenames(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// A change that arrived while reading makes this listing stale.
	if c.generation == gen {
		c.names = names
		c.valid = true
	}
	c.mu.Unlock()

	return append([]string(nil), names...), nil
}

func (c *CachedLister) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.names = nil
	c.generation++
	c.mu.Unlock()
}

func (c *CachedLister) watchLoop(ctx context.Context) {
	defer func() {
		c.running.Store(false)
		c.invalidate()
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug().Msg("Directory watch stopped due to context cancellation")
			return

		case <-c.stopChan:
			c.logger.Debug().Msg("Directory watch stopped")
			return

		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&invalidatingOps != 0 {
				c.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Snapshot directory changed")
				c.invalidate()
			}

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			// Events may have been dropped.
			c.logger.Error().Err(err).Msg("File watcher error")
			c.invalidate()
		}
	}
}
