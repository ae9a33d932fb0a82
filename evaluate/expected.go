package evaluate

import (
	"path"
	"strings"

	"github.com/gobeaver/sniffkit"
)

// Mapping assigns ground-truth labels to files by extension. Extensions
// include the leading dot. A file with no extension is looked up by its
// whole name, so ".DS_Store" can be listed as if it were an extension.
// Anything unlisted is expected to be PlainText.
type Mapping struct {
	Binary     []string `json:"binary" yaml:"binary"`
	HTML       []string `json:"html" yaml:"html"`
	JavaScript []string `json:"javascript" yaml:"javascript"`
}

// DefaultMapping is the mapping used when a Runner has none.
var DefaultMapping = Mapping{
	Binary:     []string{".pyc", ".DS_Store"},
	HTML:       []string{".html", ".htm"},
	JavaScript: []string{".js"},
}

// Expected returns the label a file named name should receive.
func (m Mapping) Expected(name string) sniffkit.Label {
	ext := extension(name)

	switch {
	case contains(m.Binary, ext):
		return sniffkit.Binary
	case contains(m.HTML, ext):
		return sniffkit.HTML
	case contains(m.JavaScript, ext):
		return sniffkit.JavaScript
	default:
		return sniffkit.PlainText
	}
}

// ExpectedLabel returns the expected label for name under DefaultMapping.
func ExpectedLabel(name string) sniffkit.Label {
	return DefaultMapping.Expected(name)
}

func extension(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := path.Ext(base); ext != "" {
		return ext
	}
	return base
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
