package fileset

import (
	"fmt"
	pathlib "path"
	"strings"
	"sync"
)

// MemoryResolver keeps manifests in memory for tests that exercise the
// pipeline without touching the filesystem.
type MemoryResolver struct {
	mu    sync.RWMutex
	files map[string][]byte // path -> content
}

// NewMemoryResolver creates a MemoryResolver over the given files, keyed by
// slash-separated relative paths.
func NewMemoryResolver(files map[string][]byte) *MemoryResolver {
	if files == nil {
		files = make(map[string][]byte)
	}
	return &MemoryResolver{files: files}
}

// Resolve matches patterns against the in-memory paths. Patterns use
// path.Match syntax; a leading "**/" additionally matches at any depth.
func (m *MemoryResolver) Resolve(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matched := false
		for path := range m.files {
			if !matchPattern(pattern, path) {
				continue
			}
			matched = true
			if !seen[path] {
				results = append(results, path)
				seen[path] = true
			}
		}
		if !matched {
			return nil, NoMatchError{Patterns: []string{pattern}}
		}
	}

	return results, nil
}

// matchPattern reports whether path matches pattern, trying every path suffix
// when the pattern starts with "**/".
func matchPattern(pattern, path string) bool {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if ok, _ := pathlib.Match(rest, path); ok {
			return true
		}
		for i, r := range path {
			if r != '/' {
				continue
			}
			if ok, _ := pathlib.Match(rest, path[i+1:]); ok {
				return true
			}
		}
		return false
	}
	ok, _ := pathlib.Match(pattern, path)
	return ok
}

// ReadFile returns the content of an in-memory manifest.
func (m *MemoryResolver) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if content, ok := m.files[path]; ok {
		return content, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

// AddFile adds a manifest to the resolver.
func (m *MemoryResolver) AddFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = content
}

// RemoveFile removes a manifest from the resolver.
func (m *MemoryResolver) RemoveFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, path)
}

// FileCount returns the number of manifests held.
func (m *MemoryResolver) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.files)
}
