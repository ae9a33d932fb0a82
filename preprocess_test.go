package sniffkit

import (
	"bytes"
	"testing"
)

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"text", []byte("hello"), false},
		{"leading null", []byte{0, 'a'}, true},
		{"trailing null", []byte{'a', 0}, true},
		{"high bytes", []byte{0xFF, 0xFE, 0x80}, false},
		{"utf16 text", []byte{'h', 0, 'i', 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinary(tt.data); got != tt.want {
				t.Errorf("IsBinary(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestStripScripts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no script",
			in:   "<p>hello</p>",
			want: "<p>hello</p>",
		},
		{
			name: "single region",
			in:   "<p>a</p><script>var x = {};</script><p>b</p>",
			want: "<p>a</p><script></script><p>b</p>",
		},
		{
			name: "greedy across blocks",
			in:   "<script>a()</script><p>keep?</p><script>b()</script>",
			want: "<script></script>",
		},
		{
			name: "spans newlines",
			in:   "<body>\n<script>\nfunction f() {}\n</script>\n</body>",
			want: "<body>\n<script></script>\n</body>",
		},
		{
			name: "tag with attributes does not match",
			in:   `<script type="text/javascript">var x;</script>`,
			want: `<script type="text/javascript">var x;</script>`,
		},
		{
			name: "uppercase tag does not match",
			in:   "<SCRIPT>var x;</SCRIPT>",
			want: "<SCRIPT>var x;</SCRIPT>",
		},
		{
			name: "open without close",
			in:   "<script>var x;",
			want: "<script>var x;",
		},
		{
			name: "already empty",
			in:   "<script></script>",
			want: "<script></script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripScripts([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("StripScripts(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripScripts_LeavesInputIntact(t *testing.T) {
	in := []byte("<div><script>alert(1)</script></div>")
	original := bytes.Clone(in)

	out := StripScripts(in)

	if !bytes.Equal(in, original) {
		t.Errorf("StripScripts() modified input: %q", in)
	}
	if bytes.Equal(out, in) {
		t.Errorf("StripScripts() = %q, expected the script body to be removed", out)
	}
}
