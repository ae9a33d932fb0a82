package sniffkit

import (
	"fmt"
	"strings"
)

// Label is a content classification verdict.
type Label int

const (
	// PlainText is anything that is neither HTML nor JavaScript, including
	// the empty input.
	PlainText Label = iota
	// Binary is any input containing a zero byte.
	Binary
	// HTML is an HTML document.
	HTML
	// JavaScript is a JavaScript source file.
	JavaScript
)

// Labels lists every label in report order.
var Labels = []Label{Binary, HTML, JavaScript, PlainText}

// Common MIME types for each label
const (
	MIMETypeOctetStream    = "application/octet-stream"
	MIMETypeTextHTML       = "text/html"
	MIMETypeTextJavaScript = "text/javascript"
	MIMETypeTextPlain      = "text/plain"
)

// String returns the display name used in CLI output and reports.
func (l Label) String() string {
	switch l {
	case Binary:
		return "binary"
	case HTML:
		return "HTML"
	case JavaScript:
		return "Javascript"
	case PlainText:
		return "Plain Text"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// MIMEType returns a MIME type suitable for a Content-Type header.
func (l Label) MIMEType() string {
	switch l {
	case Binary:
		return MIMETypeOctetStream
	case HTML:
		return MIMETypeTextHTML
	case JavaScript:
		return MIMETypeTextJavaScript
	default:
		return MIMETypeTextPlain
	}
}

// ParseLabel parses a display name or one of its lowercase aliases.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "bin":
		return Binary, nil
	case "html":
		return HTML, nil
	case "javascript", "js":
		return JavaScript, nil
	case "plain text", "plaintext", "text", "txt":
		return PlainText, nil
	}
	return PlainText, fmt.Errorf("%w: unknown label %q", ErrInvalidLabel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
