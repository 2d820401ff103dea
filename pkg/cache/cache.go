// Package cache stores rendered artifacts, rasterized formulas and graph
// layouts between runs.
//
// All backends implement [Cache]: a byte store with per-entry TTL. Keys are
// built by a [Keyer] so that every input affecting an artifact (scene
// content, output format, frame, formula options) lands in the key:
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(sceneData), cache.ArtifactKeyOpts{Format: "png"})
//	data, hit, err := c.Get(ctx, key)
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for several preview servers
//   - [NullCache]: caching disabled
//
// Implementations are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLArtifact applies to rendered images and exports. Artifacts are keyed
	// by content hash, so they only expire to reclaim space.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLFormula applies to rasterized formulas, which are slow to produce.
	TTLFormula = 30 * 24 * time.Hour
	// TTLLayout applies to Graphviz layouts.
	TTLLayout = 7 * 24 * time.Hour
)
