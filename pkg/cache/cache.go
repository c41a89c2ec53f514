// Package cache provides pluggable caching for computed layouts and
// rendered artifacts.
//
// Laying out a key set is cheap, but rendering it (SVG serialization) and
// serving it over HTTP is repetitive: the same octave range, container
// size, and harmonic context produce byte-identical output. The cache
// backends here let the server and CLI skip that work:
//   - NullCache: caching disabled (the default)
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for multi-instance server deployments
//
// Keys are derived by a Keyer from the inputs that affect the output, so
// any change in geometry, dimensions, or harmonic context misses cleanly.
package cache

import (
	"context"
	"time"
)

// TTLs for the cacheable stages.
const (
	// TTLLayout bounds how long a computed layout stays cached.
	TTLLayout = 24 * time.Hour

	// TTLArtifact bounds how long a rendered artifact stays cached.
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs that determine a layout's geometry and
// attributes. Two requests with equal opts produce identical layouts.
type LayoutKeyOpts struct {
	StartOctave int     `json:"start_octave"`
	EndOctave   int     `json:"end_octave"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	KeyWidth    float64 `json:"key_width,omitempty"`
	Tonic       string  `json:"tonic"`
	Mode        string  `json:"mode"`
	Chord       string  `json:"chord"`
}

// ArtifactKeyOpts are the inputs that determine a rendered artifact
// beyond the layout itself.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the cacheable stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact derived from
	// the layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple deployments or API
// versions can share one backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
