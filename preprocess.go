package sniffkit

import (
	"bytes"
	"regexp"
)

var (
	scriptOpen = []byte("<script>")

	// scriptRegion is greedy and lets the dot match newlines, so a single
	// match runs from the first <script> to the last </script>. Markup sitting
	// between two separate script blocks is collapsed along with them.
	scriptRegion = regexp.MustCompile(`(?s)<script>.*</script>`)

	emptyScript = []byte("<script></script>")
)

// IsBinary reports whether data contains a zero byte.
//
// Text encodings that legitimately embed NULs, such as UTF-16, are reported
// as binary.
func IsBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}

// StripScripts returns a copy of data with the contents of the script region
// replaced by an empty <script></script> pair. Only the literal lowercase tag
// matches. When there is nothing to strip, data itself is returned; callers
// must treat the result as read-only.
func StripScripts(data []byte) []byte {
	if !bytes.Contains(data, scriptOpen) {
		return data
	}
	return scriptRegion.ReplaceAll(data, emptyScript)
}
