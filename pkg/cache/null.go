package cache

import (
	"context"
	"time"
)

// NullCache stands in when caching is turned off. It stores nothing and
// remembers why it was chosen, so the runner can skip scene encoding and
// the CLI can say what disabled the cache.
type NullCache struct {
	Reason string
}

// NewNullCache returns a disabled cache. reason is shown to users, e.g.
// "--no-cache" or "backend none".
func NewNullCache(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

// Clear reports zero entries.
func (*NullCache) Clear(context.Context) (int, error) { return 0, nil }

func (*NullCache) Close() error { return nil }

// Disabled reports whether c caches nothing, and why. A nil cache counts
// as disabled.
func Disabled(c Cache) (reason string, off bool) {
	switch c := c.(type) {
	case nil:
		return "no cache configured", true
	case *NullCache:
		if c == nil || c.Reason == "" {
			return "disabled", true
		}
		return c.Reason, true
	}
	return "", false
}

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
