package evaluate

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gobeaver/sniffkit"
	"gopkg.in/yaml.v3"
)

// CategoryStats counts verdicts for one expected label.
type CategoryStats struct {
	Label   sniffkit.Label `json:"label" yaml:"label"`
	Correct int            `json:"correct" yaml:"correct"`
	Total   int            `json:"total" yaml:"total"`
}

// Accuracy returns the percentage of correct verdicts, or 0 for an empty
// category.
func (c CategoryStats) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total) * 100
}

// Report is the result of one harness run.
type Report struct {
	Root       string          `json:"root" yaml:"root"`
	Files      []FileResult    `json:"files" yaml:"files"`
	Categories []CategoryStats `json:"categories" yaml:"categories"`
	Errors     int             `json:"errors" yaml:"errors"`
}

// NewReport aggregates results into per-category statistics. Results with
// an Err are counted in Errors only. Categories follow sniffkit.Labels.
func NewReport(root string, results []FileResult) *Report {
	r := &Report{
		Root:       root,
		Files:      results,
		Categories: make([]CategoryStats, len(sniffkit.Labels)),
	}
	index := make(map[sniffkit.Label]int, len(sniffkit.Labels))
	for i, l := range sniffkit.Labels {
		r.Categories[i].Label = l
		index[l] = i
	}

	for _, res := range results {
		if res.Err != nil || res.Error != "" {
			r.Errors++
			continue
		}
		c := &r.Categories[index[res.Expected]]
		c.Total++
		if res.Correct {
			c.Correct++
		}
	}
	return r
}

// Category returns the statistics for label.
func (r *Report) Category(label sniffkit.Label) CategoryStats {
	for _, c := range r.Categories {
		if c.Label == label {
			return c
		}
	}
	return CategoryStats{Label: label}
}

// Overall sums every category.
func (r *Report) Overall() CategoryStats {
	var total CategoryStats
	for _, c := range r.Categories {
		total.Correct += c.Correct
		total.Total += c.Total
	}
	return total
}

// summaryNames are the category names used in the text summary.
var summaryNames = map[sniffkit.Label]string{
	sniffkit.Binary:     "Binary",
	sniffkit.HTML:       "HTML",
	sniffkit.JavaScript: "JS",
	sniffkit.PlainText:  "Text",
}

const (
	correctLine   = "Correctly identified"
	incorrectLine = "^^^^^^^^^^^^^^ INCORRECT ^^^^^^^^^^^^^^^^^"
	separatorLine = "----------------------------------------------------"
)

// WriteText renders the per-file transcript followed by the per-category
// summary.
func (r *Report) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}

	for _, f := range r.Files {
		if f.Error != "" {
			ew.printf("%s (%s) could not be read: %s\n", f.Path, f.Expected, f.Error)
			ew.printf("%s\n", separatorLine)
			continue
		}
		ew.printf("%s (%s) is %s\n", f.Path, f.Expected, f.Got)
		ew.printf("HTML Hypothesis: %s\n", formatScore(f.Scores.HTML))
		ew.printf("JS Hypothesis: %s\n", formatScore(f.Scores.JavaScript))
		ew.printf("Text Hypothesis: %s\n", formatScore(f.Scores.Text))
		if f.Correct {
			ew.printf("%s\n", correctLine)
		} else {
			ew.printf("%s\n", incorrectLine)
		}
		ew.printf("%s\n", separatorLine)
	}

	for _, c := range r.Categories {
		ew.printf("Correct %s Identification: %d/%d = %.2f%%\n",
			summaryNames[c.Label], c.Correct, c.Total, c.Accuracy())
	}
	if r.Errors > 0 {
		ew.printf("Unreadable files: %d\n", r.Errors)
	}
	return ew.err
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML renders the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders the report in format: "text" (or empty), "json" or "yaml".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return r.WriteText(w)
	case "json":
		return r.WriteJSON(w)
	case "yaml":
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("evaluate: unknown report format %q", format)
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
