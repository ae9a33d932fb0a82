package evaluate

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gobeaver/sniffkit"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	return NewReport("test", []FileResult{
		{Path: "a.html", Expected: sniffkit.HTML, Got: sniffkit.HTML, Scores: sniffkit.Scores{HTML: 1.5}, Correct: true},
		{Path: "b.js", Expected: sniffkit.JavaScript, Got: sniffkit.PlainText, Scores: sniffkit.Scores{Text: 1}},
		{Path: "c.txt", Expected: sniffkit.PlainText, Err: errors.New("boom"), Error: "boom"},
	})
}

func TestCategoryStats_Accuracy(t *testing.T) {
	tests := []struct {
		stats CategoryStats
		want  float64
	}{
		{CategoryStats{Correct: 0, Total: 0}, 0},
		{CategoryStats{Correct: 1, Total: 2}, 50},
		{CategoryStats{Correct: 3, Total: 3}, 100},
		{CategoryStats{Correct: 0, Total: 4}, 0},
	}
	for _, tt := range tests {
		if got := tt.stats.Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%d/%d) = %v, want %v", tt.stats.Correct, tt.stats.Total, got, tt.want)
		}
	}
}

func TestNewReport(t *testing.T) {
	r := sampleReport()

	if r.Errors != 1 {
		t.Errorf("Errors = %d, want 1", r.Errors)
	}
	if len(r.Categories) != len(sniffkit.Labels) {
		t.Fatalf("len(Categories) = %d, want %d", len(r.Categories), len(sniffkit.Labels))
	}
	for i, l := range sniffkit.Labels {
		if r.Categories[i].Label != l {
			t.Errorf("Categories[%d].Label = %v, want %v", i, r.Categories[i].Label, l)
		}
	}
	if got := r.Category(sniffkit.PlainText); got.Total != 0 {
		t.Errorf("errored file counted in total: %+v", got)
	}
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"a.html (HTML) is HTML\nHTML Hypothesis: 1.5\nJS Hypothesis: 0\nText Hypothesis: 0\nCorrectly identified\n",
		"b.js (Javascript) is Plain Text\n",
		incorrectLine,
		"c.txt (Plain Text) could not be read: boom\n",
		"Correct Binary Identification: 0/0 = 0.00%\n",
		"Correct HTML Identification: 1/1 = 100.00%\n",
		"Correct JS Identification: 0/1 = 0.00%\n",
		"Correct Text Identification: 0/0 = 0.00%\n",
		"Unreadable files: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() output missing %q\n%s", want, out)
		}
	}
}

func TestReport_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(decoded.Files) != 3 || decoded.Files[1].Expected != sniffkit.JavaScript {
		t.Errorf("decoded files = %+v", decoded.Files)
	}
	if !strings.Contains(buf.String(), `"expected": "Javascript"`) {
		t.Errorf("labels not rendered by name:\n%s", buf.String())
	}
	if decoded.Files[2].Error != "boom" {
		t.Errorf("Error = %q, want boom", decoded.Files[2].Error)
	}
}

func TestReport_WriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	var decoded Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if got := decoded.Category(sniffkit.HTML); got.Correct != 1 || got.Total != 1 {
		t.Errorf("decoded HTML stats = %+v", got)
	}
	if !strings.Contains(buf.String(), "got: Plain Text") {
		t.Errorf("labels not rendered by name:\n%s", buf.String())
	}
}

func TestReport_Write(t *testing.T) {
	r := sampleReport()
	for _, format := range []string{"", "text", "json", "yaml"} {
		var buf bytes.Buffer
		if err := r.Write(&buf, format); err != nil {
			t.Errorf("Write(%q) error = %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%q) produced no output", format)
		}
	}
	if err := r.Write(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("Write(xml) returned nil error")
	}
}
