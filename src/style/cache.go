package style

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultCacheDir = ".bonousus/cache"
	engineVersion   = "0.1.0"
)

// Cache provides content-addressed finding caching across runs. The
// core never requires it; a run without a cache produces identical
// findings, just slower.
type Cache struct {
	Dir     string
	Enabled bool
}

// ResolveCacheDir picks the cache location: explicit config dir, or the
// default under the project root.
func ResolveCacheDir(rootDir, configured string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(rootDir, defaultCacheDir)
}

type cacheEntry struct {
	Findings []Finding `json:"findings"`
}

// Key computes a cache key from file content and the resolved rule
// configuration, so any config change invalidates prior results.
func (c *Cache) Key(content []byte, cfgHash string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(cfgHash))
	h.Write([]byte(engineVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached findings. Returns nil, false on cache miss.
func (c *Cache) Get(key string) ([]Finding, bool) {
	if c == nil || !c.Enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return entry.Findings, true
}

// Put stores findings, including empty (clean) results.
func (c *Cache) Put(key string, findings []Finding) error {
	if c == nil || !c.Enabled {
		return nil
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.Marshal(cacheEntry{Findings: findings})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Clear removes the entire cache directory.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.Dir)
}

// path uses a 2-char prefix subdirectory to avoid huge flat directories.
func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key[:2], key+".json")
}
