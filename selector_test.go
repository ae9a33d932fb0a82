package sniffkit

import (
	"context"
	"sort"
	"testing"
)

func corpusSource() *testSource {
	return newTestSource(map[string]string{
		"index.html":          "<!DOCTYPE html>",
		"notes.txt":           "plain",
		"site/about.htm":      "<!html>",
		"site/app.js":         "var a",
		"site/deep/page.html": "<!DOCTYPE html><p>longer page</p>",
		".DS_Store":           "\x00\x00",
	})
}

func paths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListWithSelector(t *testing.T) {
	ctx := context.Background()
	src := corpusSource()

	tests := []struct {
		name      string
		selector  FileSelector
		recursive bool
		want      []string
	}{
		{
			name:      "all recursive",
			selector:  nil,
			recursive: true,
			want:      []string{".DS_Store", "index.html", "notes.txt", "site/about.htm", "site/app.js", "site/deep/page.html"},
		},
		{
			name:      "top level only",
			selector:  All(),
			recursive: false,
			want:      []string{".DS_Store", "index.html", "notes.txt"},
		},
		{
			name:      "name glob",
			selector:  MustGlob("*.html"),
			recursive: true,
			want:      []string{"index.html", "site/deep/page.html"},
		},
		{
			name:      "alternatives",
			selector:  MustGlob("{*.htm,*.html}"),
			recursive: true,
			want:      []string{"index.html", "site/about.htm", "site/deep/page.html"},
		},
		{
			name:      "path glob",
			selector:  MustGlob("site/*"),
			recursive: true,
			want:      []string{"site/about.htm", "site/app.js"},
		},
		{
			name:      "and max size",
			selector:  And(MustGlob("*.html"), MaxSize(20)),
			recursive: true,
			want:      []string{"index.html"},
		},
		{
			name:      "or",
			selector:  Or(MustGlob("*.js"), MustGlob("*.txt")),
			recursive: true,
			want:      []string{"notes.txt", "site/app.js"},
		},
		{
			name:      "not",
			selector:  Not(MustGlob(".*")),
			recursive: false,
			want:      []string{"index.html", "notes.txt"},
		},
		{
			name:      "func",
			selector:  FuncSelector(func(f *FileInfo) bool { return f.Size == 5 }),
			recursive: true,
			want:      []string{"notes.txt", "site/app.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := ListWithSelector(ctx, src, "", tt.selector, tt.recursive)
			if err != nil {
				t.Fatalf("ListWithSelector() error = %v", err)
			}
			if got := paths(files); !equalStrings(got, tt.want) {
				t.Errorf("ListWithSelector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListWithSelector_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ListWithSelector(ctx, corpusSource(), "", All(), true); err == nil {
		t.Error("ListWithSelector() on cancelled context returned nil error")
	}
}

func TestGlob_Invalid(t *testing.T) {
	if _, err := Glob("[unterminated"); err == nil {
		t.Error("Glob() with invalid pattern returned nil error")
	}
}
