package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/getmockd/mockroute/pkg/value"
)

// DefaultCacheSize bounds a Cache created by NewCache.
const DefaultCacheSize = 64

// IdentityFunc returns a key that changes whenever src's content changes.
type IdentityFunc func(src any) (string, error)

// Cache keeps loaded manifests keyed by source identity, so the same
// manifest string, file or object is only parsed once.
//
// Concurrent misses on the same source may both load it; the first stored
// manifest wins and later ones are discarded.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Manifest
	order   []string

	// MaxEntries bounds the cache. The oldest entry is evicted first.
	// Zero means unbounded.
	MaxEntries int
	// Identity keys sources. Defaults to SourceIdentity.
	Identity IdentityFunc

	opts []Option
}

// NewCache returns a cache that loads manifests with opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		entries:    make(map[string]*Manifest),
		MaxEntries: DefaultCacheSize,
		Identity:   SourceIdentity,
		opts:       opts,
	}
}

// Get returns the manifest for src, loading it on a miss. src accepts
// everything Load does.
func (c *Cache) Get(src any) (*Manifest, error) {
	identity := c.Identity
	if identity == nil {
		identity = SourceIdentity
	}
	key, err := identity(src)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	m, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	loaded, err := Load(src, c.opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.entries[key]; ok {
		return m, nil
	}
	if c.entries == nil {
		c.entries = make(map[string]*Manifest)
	}
	c.entries[key] = loaded
	c.order = append(c.order, key)
	for c.MaxEntries > 0 && len(c.order) > c.MaxEntries {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	return loaded, nil
}

// Len returns the number of cached manifests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every cached manifest.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]*Manifest)
	c.order = nil
	c.mu.Unlock()
}

// SourceIdentity hashes the raw content of src. Files are keyed by their
// extension and bytes, so editing a file yields a new identity. Decoded
// documents are keyed by their JSON encoding.
func SourceIdentity(src any) (string, error) {
	h := sha256.New()
	switch s := src.(type) {
	case nil:
		h.Write([]byte("nil"))
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed != "" && isFile(trimmed) {
			data, err := os.ReadFile(trimmed)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrManifestParse, err)
			}
			h.Write([]byte("file:" + strings.ToLower(filepath.Ext(trimmed)) + ":"))
			h.Write(data)
			break
		}
		h.Write([]byte("raw:"))
		h.Write([]byte(trimmed))
	case []byte:
		h.Write([]byte("raw:"))
		h.Write([]byte(strings.TrimSpace(string(s))))
	default:
		v, err := toDocument(src)
		if err != nil {
			return "", err
		}
		data, err := v.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidManifestType, err)
		}
		h.Write([]byte("doc:"))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func toDocument(src any) (value.Value, error) {
	switch s := src.(type) {
	case value.Value:
		return s, nil
	case *value.Object:
		return value.MapOf(s), nil
	case map[string]any:
		v, err := value.FromAny(s)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %v", ErrInvalidManifestType, err)
		}
		return v, nil
	default:
		return value.Value{}, fmt.Errorf("%w: unsupported source type %T", ErrInvalidManifestType, src)
	}
}
