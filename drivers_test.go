package sniffkit

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

func init() {
	// Register test drivers
	RegisterDriver("local", newTestDriver)
	RegisterDriver("s3", newTestDriver)
	RegisterDriver("memory", newTestDriver)
}

func newTestDriver(cfg *Config) (Source, error) {
	if cfg.Driver == "local" && cfg.LocalBasePath == "" {
		return nil, fmt.Errorf("local base path is required")
	}
	return newTestSource(nil), nil
}

// testSource is a flat map-backed Source for testing
type testSource struct {
	mu    sync.RWMutex
	files map[string][]byte
	reads int
}

func newTestSource(files map[string]string) *testSource {
	s := &testSource{files: make(map[string][]byte)}
	for p, content := range files {
		s.files[strings.TrimPrefix(p, "/")] = []byte(content)
	}
	return s
}

func (s *testSource) ReadAll(ctx context.Context, p string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[strings.TrimPrefix(p, "/")]
	if !ok {
		return nil, NewPathError("read", p, ErrNotExist)
	}
	s.reads++
	return append([]byte(nil), data...), nil
}

func (s *testSource) FileExists(ctx context.Context, p string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[strings.TrimPrefix(p, "/")]
	return ok, nil
}

func (s *testSource) Stat(ctx context.Context, p string) (*FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p = strings.TrimPrefix(p, "/")
	if data, ok := s.files[p]; ok {
		return &FileInfo{Name: path.Base(p), Path: p, Size: int64(len(data)), ModTime: time.Time{}}, nil
	}
	if s.isDir(p) {
		return &FileInfo{Name: path.Base(p), Path: p, IsDir: true}, nil
	}
	return nil, NewPathError("stat", p, ErrNotExist)
}

func (s *testSource) isDir(p string) bool {
	if p == "" || p == "." {
		return true
	}
	for name := range s.files {
		if strings.HasPrefix(name, p+"/") {
			return true
		}
	}
	return false
}

// ListContents returns the immediate children of dir; recursive listings
// are produced by ListWithSelector walking the directories.
func (s *testSource) ListContents(ctx context.Context, dir string, recursive bool) ([]FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir = strings.Trim(dir, "/")
	if dir == "." {
		dir = ""
	}
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	seen := make(map[string]FileInfo)
	for name, data := range s.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if i := strings.Index(rest, "/"); i >= 0 && !recursive {
			child := prefix + rest[:i]
			seen[child] = FileInfo{Name: rest[:i], Path: child, IsDir: true}
			continue
		}
		seen[name] = FileInfo{Name: path.Base(name), Path: name, Size: int64(len(data))}
	}

	out := make([]FileInfo, 0, len(seen))
	for _, fi := range seen {
		out = append(out, fi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

var _ Source = (*testSource)(nil)
