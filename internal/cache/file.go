package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File permission constants for cache operations.
const (
	cacheDirPerm  = 0o750 // Directory permissions: rwxr-x---
	cacheFilePerm = 0o600 // File permissions: rw-------
)

// Minimum key length for creating subdirectory structure.
const minKeyLengthForSubdir = 4

// FileCache persists stamps as JSON files under a base directory so
// consecutive runs share them.
type FileCache struct {
	baseDir string
}

// NewFileCache creates a file-backed stamp cache rooted at baseDir,
// creating the directory if needed.
func NewFileCache(baseDir string) (*FileCache, error) {
	if err := os.MkdirAll(baseDir, cacheDirPerm); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	return &FileCache{
		baseDir: baseDir,
	}, nil
}

// Get retrieves a stamp. Expired entries are removed and report a miss.
func (f *FileCache) Get(_ context.Context, key string) (Stamp, bool) {
	path := f.keyToPath(key)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Stamp{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Stamp{}, false
	}

	if e.expired() {
		_ = os.Remove(path)
		return Stamp{}, false
	}

	return e.Stamp, true
}

// Set stores a stamp with the given TTL. Write failures are silent; a
// missing stamp only costs a re-check on the next run.
func (f *FileCache) Set(_ context.Context, key string, stamp Stamp, ttl time.Duration) {
	path := f.keyToPath(key)

	if err := os.MkdirAll(filepath.Dir(path), cacheDirPerm); err != nil {
		return
	}

	data, err := json.Marshal(entry{
		Stamp:     stamp,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return
	}

	// Write atomically using temp file
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, cacheFilePerm); err != nil {
		return
	}

	_ = os.Rename(tempFile, path)
}

// Delete removes a stamp.
func (f *FileCache) Delete(_ context.Context, key string) {
	_ = os.Remove(f.keyToPath(key))
}

// Clear removes all stamps.
func (f *FileCache) Clear(_ context.Context) {
	_ = os.RemoveAll(f.baseDir)
	_ = os.MkdirAll(f.baseDir, cacheDirPerm)
}

// keyToPath converts a cache key to a file path. Keys shard into a
// 2-level directory structure to keep any single directory small.
func (f *FileCache) keyToPath(key string) string {
	safeKey := sanitizeKey(key)

	if len(safeKey) >= minKeyLengthForSubdir {
		subDir := filepath.Join(f.baseDir, safeKey[:2], safeKey[2:4])
		return filepath.Join(subDir, safeKey+".json")
	}

	return filepath.Join(f.baseDir, safeKey+".json")
}

// sanitizeKey makes a key safe for use as a filename. Keys produced by
// Key are plain hex, but arbitrary strings are tolerated.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(key)
}

// Stats reports the number of stored stamps, how many of them have
// expired, and their total size in bytes.
func (f *FileCache) Stats() (total int, expired int, size int64) {
	_ = filepath.WalkDir(f.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		total++
		size += info.Size()

		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil
		}

		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil
		}

		if e.expired() {
			expired++
		}

		return nil
	})

	return total, expired, size
}

// Cleanup removes expired and unreadable stamps.
func (f *FileCache) Cleanup() {
	_ = filepath.WalkDir(f.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil
		}

		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			_ = os.Remove(path)
			return nil
		}

		if e.expired() {
			_ = os.Remove(path)
		}

		return nil
	})
}

var _ Cache = (*FileCache)(nil)
