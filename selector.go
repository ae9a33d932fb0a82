package sniffkit

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ============================================================================
// FileSelector Interface
// ============================================================================

// FileSelector filters files while a Source is walked.
//
// Example usage:
//
//	// Only HTML pages under 1MB
//	sel := sniffkit.And(
//	    sniffkit.MustGlob("**/*.html"),
//	    sniffkit.MaxSize(1<<20),
//	)
//	files, err := sniffkit.ListWithSelector(ctx, src, "/", sel, true)
type FileSelector interface {
	// Match returns true if the file should be included in results.
	Match(file *FileInfo) bool

	// TraverseDescendants returns true if directory descendants should be traversed.
	// Only called for directories (file.IsDir == true).
	TraverseDescendants(file *FileInfo) bool
}

// ============================================================================
// ListWithSelector
// ============================================================================

// ListWithSelector lists files matching the given selector.
// Set recursive to true for deep traversal.
func ListWithSelector(ctx context.Context, src Source, path string, selector FileSelector, recursive bool) ([]FileInfo, error) {
	if selector == nil {
		selector = All()
	}

	var results []FileInfo
	if err := listRecursive(ctx, src, path, selector, recursive, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func listRecursive(ctx context.Context, src Source, path string, selector FileSelector, recursive bool, results *[]FileInfo) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	files, err := src.ListContents(ctx, path, false)
	if err != nil {
		return err
	}

	for i := range files {
		file := &files[i]
		if file.IsDir {
			if recursive && selector.TraverseDescendants(file) {
				if err := listRecursive(ctx, src, file.Path, selector, recursive, results); err != nil {
					return err
				}
			}
			continue
		}
		if selector.Match(file) {
			*results = append(*results, *file)
		}
	}

	return nil
}

// ============================================================================
// Built-in Selectors
// ============================================================================

// AllSelector matches all files and traverses all directories.
type AllSelector struct{}

func (s AllSelector) Match(file *FileInfo) bool               { return true }
func (s AllSelector) TraverseDescendants(file *FileInfo) bool { return true }

// All returns a selector that matches all files.
func All() FileSelector {
	return AllSelector{}
}

type globSelector struct {
	pattern  string
	matcher  glob.Glob
	wantPath bool
}

// Glob creates a selector from a glob pattern. '*' stops at '/', '**' does
// not. Patterns containing a '/' are matched against the slash-separated
// path, others against the file name only.
//
// Examples:
//
//	Glob("*.js")             // any .js file, at any depth
//	Glob("site/**/*.html")   // HTML below site/
//	Glob("{*.htm,*.html}")   // alternatives
func Glob(pattern string) (FileSelector, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	return &globSelector{
		pattern:  pattern,
		matcher:  g,
		wantPath: strings.Contains(pattern, "/"),
	}, nil
}

// MustGlob is like Glob but panics on an invalid pattern.
func MustGlob(pattern string) FileSelector {
	s, err := Glob(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *globSelector) Match(file *FileInfo) bool {
	if s.wantPath {
		p := strings.TrimPrefix(filepath.ToSlash(file.Path), "/")
		return s.matcher.Match(p)
	}
	return s.matcher.Match(file.Name)
}

func (s *globSelector) TraverseDescendants(file *FileInfo) bool {
	return true
}

type maxSizeSelector struct {
	limit int64
}

// MaxSize matches files no larger than limit bytes.
func MaxSize(limit int64) FileSelector {
	return &maxSizeSelector{limit: limit}
}

func (s *maxSizeSelector) Match(file *FileInfo) bool               { return file.Size <= s.limit }
func (s *maxSizeSelector) TraverseDescendants(file *FileInfo) bool { return true }

// ============================================================================
// Composable Selectors (And, Or, Not)
// ============================================================================

type andSelector struct {
	selectors []FileSelector
}

// And matches only if ALL selectors match.
func And(selectors ...FileSelector) FileSelector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.Match(file) {
			return false
		}
	}
	return true
}

func (s *andSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.TraverseDescendants(file) {
			return false
		}
	}
	return true
}

type orSelector struct {
	selectors []FileSelector
}

// Or matches if ANY selector matches.
func Or(selectors ...FileSelector) FileSelector {
	return &orSelector{selectors: selectors}
}

func (s *orSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.Match(file) {
			return true
		}
	}
	return false
}

func (s *orSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(file) {
			return true
		}
	}
	return false
}

type notSelector struct {
	selector FileSelector
}

// Not inverts a selector's match result.
func Not(selector FileSelector) FileSelector {
	return &notSelector{selector: selector}
}

func (s *notSelector) Match(file *FileInfo) bool {
	return !s.selector.Match(file)
}

func (s *notSelector) TraverseDescendants(file *FileInfo) bool {
	return true
}

// ============================================================================
// FuncSelector
// ============================================================================

type funcSelector struct {
	matchFn func(*FileInfo) bool
}

// FuncSelector creates a selector from a custom function.
//
// Example:
//
//	FuncSelector(func(f *sniffkit.FileInfo) bool {
//	    return !strings.HasPrefix(f.Name, ".")
//	})
func FuncSelector(fn func(*FileInfo) bool) FileSelector {
	return &funcSelector{matchFn: fn}
}

func (s *funcSelector) Match(file *FileInfo) bool               { return s.matchFn(file) }
func (s *funcSelector) TraverseDescendants(file *FileInfo) bool { return true }
