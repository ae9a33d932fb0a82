package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobeaver/sniffkit"
)

// Adapter is a sniffkit.Source rooted at a local directory. Paths passed to
// its methods are relative to the root and may not escape it.
type Adapter struct {
	root string
}

// New creates a local source rooted at root. The directory must exist.
func New(root string) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, sniffkit.WrapPathErr("open", root, mapOSError(err))
	}
	if !info.IsDir() {
		return nil, sniffkit.NewPathError("open", root, sniffkit.ErrNotDir)
	}

	return &Adapter{
		root: absRoot,
	}, nil
}

// Root returns the absolute root directory.
func (a *Adapter) Root() string {
	return a.root
}

// resolve maps a source path onto the local filesystem.
func (a *Adapter) resolve(op, path string) (string, error) {
	fullPath := filepath.Join(a.root, filepath.Clean(filepath.FromSlash(path)))

	// Check if the path is under the root
	if !isPathUnderRoot(a.root, fullPath) {
		return "", sniffkit.NewPathError(op, path, sniffkit.ErrNotAllowed)
	}
	return fullPath, nil
}

// ReadAll implements sniffkit.Source
func (a *Adapter) ReadAll(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("read", path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if isDirError(fullPath) {
			return nil, sniffkit.NewPathError("read", path, sniffkit.ErrIsDir)
		}
		return nil, sniffkit.NewPathError("read", path, mapOSError(err))
	}
	return data, nil
}

// FileExists implements sniffkit.Source
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("fileexists", path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, sniffkit.NewPathError("fileexists", path, mapOSError(err))
	}

	return !info.IsDir(), nil
}

// Stat implements sniffkit.Source
func (a *Adapter) Stat(ctx context.Context, path string) (*sniffkit.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("stat", path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, sniffkit.NewPathError("stat", path, mapOSError(err))
	}

	rel, _ := filepath.Rel(a.root, fullPath)
	return fileInfo(filepath.ToSlash(rel), info), nil
}

// ListContents implements sniffkit.Source. Entries are sorted by path and
// carry slash-separated paths relative to the root.
func (a *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]sniffkit.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("listcontents", path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, sniffkit.NewPathError("listcontents", path, mapOSError(err))
	}
	if !info.IsDir() {
		return nil, sniffkit.NewPathError("listcontents", path, sniffkit.ErrNotDir)
	}

	var files []sniffkit.FileInfo

	if recursive {
		err = filepath.WalkDir(fullPath, func(walkPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// Skip the root directory itself
			if walkPath == fullPath {
				return nil
			}

			// Check context cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}

			relPath, err := filepath.Rel(a.root, walkPath)
			if err != nil {
				return err
			}

			files = append(files, *fileInfo(filepath.ToSlash(relPath), info))
			return nil
		})
		if err != nil {
			return nil, sniffkit.NewPathError("listcontents", path, err)
		}
	} else {
		// Read only the immediate directory contents
		entries, err := os.ReadDir(fullPath)
		if err != nil {
			return nil, sniffkit.NewPathError("listcontents", path, mapOSError(err))
		}

		files = make([]sniffkit.FileInfo, 0, len(entries))
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			relPath, err := filepath.Rel(a.root, filepath.Join(fullPath, entry.Name()))
			if err != nil {
				continue
			}

			files = append(files, *fileInfo(filepath.ToSlash(relPath), info))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func fileInfo(relPath string, info os.FileInfo) *sniffkit.FileInfo {
	if relPath == "." {
		relPath = ""
	}
	return &sniffkit.FileInfo{
		Name:    info.Name(),
		Path:    relPath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}

// isPathUnderRoot checks if a path is under a given root directory
func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return !filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDirError(fullPath string) bool {
	info, err := os.Stat(fullPath)
	return err == nil && info.IsDir()
}

// mapOSError translates os errors to sniffkit sentinels
func mapOSError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sniffkit.ErrNotExist
	case errors.Is(err, fs.ErrPermission):
		return sniffkit.ErrPermission
	default:
		return err
	}
}

// Ensure Adapter implements interfaces
var (
	_ sniffkit.Source   = (*Adapter)(nil)
	_ sniffkit.CanWatch = (*Adapter)(nil)
)
