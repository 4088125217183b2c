package config

import (
	"sync"
)

// Owner is the single holder of the live configuration. Readers take value
// snapshots; only Update and Reset change it, and both persist the whole
// record before the new value becomes visible.
type Owner struct {
	mu    sync.RWMutex
	cfg   Configuration
	store *Store
}

// NewOwner wraps an already loaded configuration.
func NewOwner(cfg Configuration, store *Store) *Owner {
	return &Owner{cfg: cfg, store: store}
}

// Snapshot returns a copy of the live configuration.
func (o *Owner) Snapshot() Configuration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cfg
}

// Update applies fn to a copy of the configuration and persists it. On a
// persist failure the live configuration is left unchanged.
func (o *Owner) Update(fn func(*Configuration)) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	next := o.cfg
	fn(&next)
	if err := o.store.Save(next); err != nil {
		return err
	}
	o.cfg = next
	return nil
}

// Reset restores and persists the compiled-in defaults.
func (o *Owner) Reset() error {
	return o.Update(func(c *Configuration) { *c = Default() })
}
