// Package cache is a content-addressed store for scraped results. Entries are
// keyed by an MD5 hash of the target's identifying string and never expire on
// disk; a go-cache layer in front keeps hot entries off the filesystem.
package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryTTL = time.Hour

type Store struct {
	dir    string
	mem    *gocache.Cache
	logger *slog.Logger
}

// NewStore creates the cache directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		mem:    gocache.New(memoryTTL, 2*memoryTTL),
		logger: logger,
	}, nil
}

// Key derives the cache filename for a target string. The hash is not
// collision-proof; acceptable here because values are idempotent content.
func Key(target string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(target))) + ".json"
}

// Get unmarshals the cached entry for target into out and reports whether an
// entry existed.
func (s *Store) Get(target string, out any) bool {
	key := Key(target)

	if raw, found := s.mem.Get(key); found {
		if data, ok := raw.([]byte); ok && json.Unmarshal(data, out) == nil {
			return true
		}
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error("failed to decode cache entry", "key", key, "error", err)
		return false
	}
	s.mem.Set(key, data, gocache.DefaultExpiration)
	s.logger.Info("cache hit", "target", target)
	return true
}

// Put stores value for target in both layers. Write failures are logged, not
// returned; a cold cache is never a reason to fail a request.
func (s *Store) Put(target string, value any) {
	key := Key(target)

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode cache entry", "key", key, "error", err)
		return
	}
	s.mem.Set(key, data, gocache.DefaultExpiration)
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		s.logger.Error("failed to write cache entry", "key", key, "error", err)
	}
}
