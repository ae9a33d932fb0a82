package evaluate

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/gobeaver/sniffkit"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the concurrency used when Runner.Workers is not positive.
const DefaultWorkers = 4

// FileResult is the outcome for a single corpus file.
type FileResult struct {
	Path     string          `json:"path" yaml:"path"`
	Expected sniffkit.Label  `json:"expected" yaml:"expected"`
	Got      sniffkit.Label  `json:"got" yaml:"got"`
	Scores   sniffkit.Scores `json:"scores" yaml:"scores"`
	Stage    sniffkit.Stage  `json:"stage,omitempty" yaml:"stage,omitempty"`
	Correct  bool            `json:"correct" yaml:"correct"`

	// Checksum is the hex xxHash-64 of the file content, identifying the
	// exact bytes a verdict was given for.
	Checksum string `json:"checksum,omitempty" yaml:"checksum,omitempty"`

	// Err is set when the file could not be loaded. Such files are not
	// part of any category total.
	Err   error  `json:"-" yaml:"-"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Runner classifies every file below a root of a labelled corpus and
// compares the verdicts with the labels implied by file extensions.
type Runner struct {
	// Source the corpus is read from. Required.
	Source sniffkit.Source

	// Classifier defaults to a plain sniffkit.Classifier.
	Classifier sniffkit.Sniffer

	// Workers bounds concurrent classifications.
	Workers int

	// Include and Exclude are glob patterns. A file is evaluated when it
	// matches any Include pattern (or Include is empty) and no Exclude
	// pattern. See sniffkit.Glob for matching rules.
	Include []string
	Exclude []string

	// MaxFileSize is passed to sniffkit.LoadFile. 0 disables the limit.
	MaxFileSize int64

	// Mapping defaults to DefaultMapping.
	Mapping *Mapping

	// Logger receives a debug event per file. Nil disables logging.
	Logger *zerolog.Logger
}

// Run walks root recursively and evaluates every selected file. Load
// failures are recorded on the FileResult and do not stop the run; only
// an invalid pattern, a listing failure or cancellation returns an error.
func (r *Runner) Run(ctx context.Context, root string) (*Report, error) {
	if r.Source == nil {
		return nil, fmt.Errorf("evaluate: runner has no source")
	}

	selector, err := r.selector()
	if err != nil {
		return nil, err
	}

	files, err := sniffkit.ListWithSelector(ctx, r.Source, root, selector, true)
	if err != nil {
		return nil, fmt.Errorf("evaluate: list %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	classifier := r.Classifier
	if classifier == nil {
		classifier = sniffkit.NewClassifier()
	}
	mapping := DefaultMapping
	if r.Mapping != nil {
		mapping = *r.Mapping
	}
	logger := zerolog.Nop()
	if r.Logger != nil {
		logger = *r.Logger
	}
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range files {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.evaluate(gctx, classifier, mapping, files[i])

			res := &results[i]
			if res.Err != nil {
				logger.Warn().Err(res.Err).Str("path", res.Path).Msg("unreadable file")
				return nil
			}
			logger.Debug().
				Str("path", res.Path).
				Stringer("expected", res.Expected).
				Stringer("label", res.Got).
				Float64("html", res.Scores.HTML).
				Float64("javascript", res.Scores.JavaScript).
				Float64("text", res.Scores.Text).
				Bool("correct", res.Correct).
				Msg("classified")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewReport(root, results), nil
}

func (r *Runner) evaluate(ctx context.Context, s sniffkit.Sniffer, m Mapping, file sniffkit.FileInfo) FileResult {
	res := FileResult{
		Path:     file.Path,
		Expected: m.Expected(file.Name),
	}

	data, err := sniffkit.LoadFile(ctx, r.Source, file.Path, r.MaxFileSize)
	if err == nil {
		res.Checksum, err = sniffkit.CalculateChecksum(bytes.NewReader(data))
	}
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		return res
	}

	out := s.Classify(data)

	res.Got = out.Label
	res.Scores = out.Scores
	res.Stage = out.Stage
	res.Correct = out.Label == res.Expected
	return res
}

func (r *Runner) selector() (sniffkit.FileSelector, error) {
	include, err := globs(r.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := globs(r.Exclude)
	if err != nil {
		return nil, err
	}

	var parts []sniffkit.FileSelector
	if len(include) > 0 {
		parts = append(parts, sniffkit.Or(include...))
	}
	if len(exclude) > 0 {
		parts = append(parts, sniffkit.Not(sniffkit.Or(exclude...)))
	}
	if len(parts) == 0 {
		return sniffkit.All(), nil
	}
	return sniffkit.And(parts...), nil
}

func globs(patterns []string) ([]sniffkit.FileSelector, error) {
	out := make([]sniffkit.FileSelector, 0, len(patterns))
	for _, p := range patterns {
		sel, err := sniffkit.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("evaluate: invalid pattern %q: %w", p, err)
		}
		out = append(out, sel)
	}
	return out, nil
}
