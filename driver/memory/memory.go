package memory

import (
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/sniffkit"
	"github.com/gobwas/glob"
)

// memoryFile represents a file stored in memory
type memoryFile struct {
	content []byte
	modTime time.Time
}

// watchEntry represents a single watch subscription
type watchEntry struct {
	matcher glob.Glob
	token   *sniffkit.CallbackChangeToken
}

// Adapter is an in-memory sniffkit.Source. Corpora are loaded with Write
// and read back through the Source methods. Useful for tests and for
// classifying content that never touches disk.
type Adapter struct {
	mu      sync.RWMutex
	files   map[string]*memoryFile
	dirs    map[string]time.Time
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64 // Current total size

	// Watch support
	watchMu sync.RWMutex
	watches []*watchEntry
}

// Config holds configuration for the memory adapter
type Config struct {
	// MaxSize is the maximum total storage size in bytes (0 = unlimited)
	MaxSize int64
}

// New creates a new in-memory source
func New(cfg ...Config) *Adapter {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}

	return &Adapter{
		files:   make(map[string]*memoryFile),
		dirs:    map[string]time.Time{"": time.Now()},
		maxSize: maxSize,
	}
}

// Write stores data at path, replacing any existing file. Parent
// directories are created implicitly.
func (a *Adapter) Write(path string, data []byte) error {
	path = normalizePath(path)
	if path == "" || !isValidPath(path) {
		return sniffkit.NewPathError("write", path, sniffkit.ErrNotAllowed)
	}

	a.mu.Lock()
	if _, isDir := a.dirs[path]; isDir {
		a.mu.Unlock()
		return sniffkit.NewPathError("write", path, sniffkit.ErrIsDir)
	}

	newSize := a.size + int64(len(data))
	if existing, exists := a.files[path]; exists {
		newSize -= int64(len(existing.content))
	}
	if a.maxSize > 0 && newSize > a.maxSize {
		a.mu.Unlock()
		return sniffkit.NewPathError("write", path, sniffkit.ErrTooLarge)
	}

	a.ensureParentDirs(path)
	a.files[path] = &memoryFile{
		content: bytes.Clone(data),
		modTime: time.Now(),
	}
	a.size = newSize
	a.mu.Unlock()

	// Notify watchers of the change
	go a.notifyWatchers(path)

	return nil
}

// WriteString is Write for string content.
func (a *Adapter) WriteString(path, content string) error {
	return a.Write(path, []byte(content))
}

// Remove deletes the file at path.
func (a *Adapter) Remove(path string) error {
	path = normalizePath(path)

	a.mu.Lock()
	file, exists := a.files[path]
	if !exists {
		a.mu.Unlock()
		return sniffkit.NewPathError("remove", path, sniffkit.ErrNotExist)
	}
	a.size -= int64(len(file.content))
	delete(a.files, path)
	a.mu.Unlock()

	// Notify watchers of the deletion
	go a.notifyWatchers(path)

	return nil
}

// ReadAll implements sniffkit.Source. The returned slice is a copy.
func (a *Adapter) ReadAll(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	file, exists := a.files[path]
	if !exists {
		if _, isDir := a.dirs[path]; isDir {
			return nil, sniffkit.NewPathError("read", path, sniffkit.ErrIsDir)
		}
		return nil, sniffkit.NewPathError("read", path, sniffkit.ErrNotExist)
	}

	return bytes.Clone(file.content), nil
}

// FileExists implements sniffkit.Source
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, fileExists := a.files[path]
	return fileExists, nil
}

// Stat implements sniffkit.Source
func (a *Adapter) Stat(ctx context.Context, path string) (*sniffkit.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	if file, exists := a.files[path]; exists {
		return &sniffkit.FileInfo{
			Name:    filepath.Base(path),
			Path:    path,
			Size:    int64(len(file.content)),
			ModTime: file.modTime,
		}, nil
	}

	if modTime, exists := a.dirs[path]; exists {
		return &sniffkit.FileInfo{
			Name:    filepath.Base(path),
			Path:    path,
			ModTime: modTime,
			IsDir:   true,
		}, nil
	}

	return nil, sniffkit.NewPathError("stat", path, sniffkit.ErrNotExist)
}

// ListContents implements sniffkit.Source. Entries are sorted by path.
func (a *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]sniffkit.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, exists := a.dirs[path]; !exists {
		if _, isFile := a.files[path]; isFile {
			return nil, sniffkit.NewPathError("listcontents", path, sniffkit.ErrNotDir)
		}
		return nil, sniffkit.NewPathError("listcontents", path, sniffkit.ErrNotExist)
	}

	prefix := ""
	if path != "" {
		prefix = path + "/"
	}

	// childOf reports whether p belongs in the listing
	childOf := func(p string) bool {
		if p == path || !strings.HasPrefix(p, prefix) {
			return false
		}
		return recursive || !strings.Contains(strings.TrimPrefix(p, prefix), "/")
	}

	var files []sniffkit.FileInfo
	for filePath, file := range a.files {
		if childOf(filePath) {
			files = append(files, sniffkit.FileInfo{
				Name:    filepath.Base(filePath),
				Path:    filePath,
				Size:    int64(len(file.content)),
				ModTime: file.modTime,
			})
		}
	}
	for dirPath, modTime := range a.dirs {
		if childOf(dirPath) {
			files = append(files, sniffkit.FileInfo{
				Name:    filepath.Base(dirPath),
				Path:    dirPath,
				ModTime: modTime,
				IsDir:   true,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// Clear removes all files and directories
func (a *Adapter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.files = make(map[string]*memoryFile)
	a.dirs = map[string]time.Time{"": time.Now()}
	a.size = 0
}

// Size returns the current total size of all stored files
func (a *Adapter) Size() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}

// FileCount returns the number of files stored
func (a *Adapter) FileCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.files)
}

// ensureParentDirs creates all parent directories for a given path
// Must be called with lock held
func (a *Adapter) ensureParentDirs(path string) {
	dir := filepath.Dir(path)
	for dir != "" && dir != "." && dir != "/" {
		if _, exists := a.dirs[dir]; !exists {
			a.dirs[dir] = time.Now()
		}
		dir = filepath.Dir(dir)
	}
}

// normalizePath normalizes a file path
func normalizePath(path string) string {
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")
	if path == "" || path == "." {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// isValidPath checks if a path is valid (no directory traversal)
func isValidPath(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// ============================================================================
// Watcher Implementation
// ============================================================================

// Watch implements sniffkit.CanWatch. Supports glob patterns like
// "**/*.html", "*.js", "site/*".
func (a *Adapter) Watch(ctx context.Context, filter string) (sniffkit.ChangeToken, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	matcher, err := glob.Compile(filter, '/')
	if err != nil {
		return nil, sniffkit.NewPathError("watch", filter, err)
	}

	token := sniffkit.NewCallbackChangeToken()

	a.watchMu.Lock()
	a.watches = append(a.watches, &watchEntry{
		matcher: matcher,
		token:   token,
	})
	a.watchMu.Unlock()

	// Clean up when context is cancelled
	go func() {
		<-ctx.Done()
		a.removeWatch(token)
	}()

	return token, nil
}

// notifyWatchers signals all watchers whose filter matches the given path
func (a *Adapter) notifyWatchers(path string) {
	a.watchMu.RLock()
	defer a.watchMu.RUnlock()

	for _, entry := range a.watches {
		if entry.matcher.Match(path) {
			entry.token.SignalChange()
		}
	}
}

// removeWatch removes a watch entry by token
func (a *Adapter) removeWatch(token *sniffkit.CallbackChangeToken) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	for i, entry := range a.watches {
		if entry.token == token {
			// Remove by swapping with last element
			a.watches[i] = a.watches[len(a.watches)-1]
			a.watches = a.watches[:len(a.watches)-1]
			return
		}
	}
}

// Ensure Adapter implements interfaces
var (
	_ sniffkit.Source   = (*Adapter)(nil)
	_ sniffkit.CanWatch = (*Adapter)(nil)
)
