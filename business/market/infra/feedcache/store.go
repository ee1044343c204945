// Package feedcache persists fetched feeds as JSON files on disk so
// repeated runs can skip the network entirely.
package feedcache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/logger"
)

// Store is a per-feed JSON cache under a single directory. Feeds listed
// in refresh are always treated as missing so they get refetched.
type Store struct {
	dir     string
	enabled bool
	refresh map[string]bool
	log     logger.LoggerInterface
}

// NewStore creates a store rooted at dir. refresh names feeds that must
// bypass the cache this run.
func NewStore(dir string, enabled bool, refresh []string, log logger.LoggerInterface) *Store {
	refreshSet := make(map[string]bool, len(refresh))
	for _, name := range refresh {
		refreshSet[name] = true
	}
	return &Store{
		dir:     dir,
		enabled: enabled,
		refresh: refreshSet,
		log:     log,
	}
}

// Load reads the cached feed into v. It returns false (and no error) when
// the cache is disabled, the feed is marked for refresh, or no file exists.
func (s *Store) Load(ctx context.Context, feed string, v any) (bool, error) {
	if !s.enabled || s.refresh[feed] {
		return false, nil
	}

	data, err := os.ReadFile(s.path(feed))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperror.New(apperror.CodeCacheReadFailed,
			apperror.WithContext(feed),
			apperror.WithCause(err),
		)
	}

	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt cache file is treated as a miss; the fetch will rewrite it.
		s.log.Warn(ctx, "discarding corrupt feed cache", "feed", feed, "error", err)
		return false, nil
	}

	s.log.Debug(ctx, "feed served from disk cache", "feed", feed)
	return true, nil
}

// Save writes the feed to disk. It is a no-op when the cache is disabled.
func (s *Store) Save(ctx context.Context, feed string, v any) error {
	if !s.enabled {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperror.New(apperror.CodeCacheWriteFailed,
			apperror.WithContext(feed),
			apperror.WithCause(err),
		)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return apperror.New(apperror.CodeCacheWriteFailed,
			apperror.WithContext(feed),
			apperror.WithCause(err),
		)
	}

	if err := os.WriteFile(s.path(feed), data, 0o644); err != nil {
		return apperror.New(apperror.CodeCacheWriteFailed,
			apperror.WithContext(feed),
			apperror.WithCause(err),
		)
	}

	s.log.Debug(ctx, "feed cached to disk", "feed", feed)
	return nil
}

func (s *Store) path(feed string) string {
	return filepath.Join(s.dir, feed+".json")
}
