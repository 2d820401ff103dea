// Package store keeps named scene documents for the preview server and the
// CLI.
//
// Two backends implement [Store]:
//   - [DirStore]: a directory of .toml and .json scene files
//   - [MongoStore]: a MongoDB collection, for servers that share scenes
//
// Scene names double as file stems and URL segments, so every backend
// checks them with [errors.ValidateSceneName] before use.
package store

import (
	"context"

	"github.com/matzehuels/drawkit/pkg/scene"
)

// Store reads and writes scenes by name.
type Store interface {
	// List returns the stored scene names in sorted order.
	List(ctx context.Context) ([]string, error)
	// Get returns the named scene, or a NOT_FOUND error.
	Get(ctx context.Context, name string) (*scene.Scene, error)
	// Put stores s under s.Name, replacing any previous version.
	Put(ctx context.Context, s *scene.Scene) error
	// Delete removes the named scene. Deleting a missing scene is not an
	// error.
	Delete(ctx context.Context, name string) error
	Close() error
}
