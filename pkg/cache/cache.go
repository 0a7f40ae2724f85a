// Package cache stores generated scenes and rendered artifacts.
//
// Drawings are deterministic in their parameters and seed, so everything
// the pipeline produces can be cached under a key derived from its inputs.
// Three backends are provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the server
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] so that deployments can namespace them with
// [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	DrawingTTL  = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// DrawingKeyOpts identifies a generated scene.
type DrawingKeyOpts struct {
	Width    int     `json:"w"`
	Height   int     `json:"h"`
	CellSize float64 `json:"cs"`
	Seed     uint64  `json:"seed"`
	Spectrum string  `json:"spectrum"`
	MaxPaths int     `json:"max_paths,omitempty"`
}

// ArtifactKeyOpts identifies one rendering of a scene.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Style     string  `json:"style"`
	GridLines bool    `json:"grid_lines,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DrawingKey is the key of the scene generated from opts.
	DrawingKey(opts DrawingKeyOpts) string
	// ArtifactKey is the key of a scene, identified by its content hash,
	// rendered with opts.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DrawingKey(opts DrawingKeyOpts) string {
	return hashKey("drawing", opts)
}

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
