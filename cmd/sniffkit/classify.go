package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gobeaver/sniffkit"
	"github.com/gobeaver/sniffkit/driver/local"
	"github.com/spf13/cobra"
)

type classifyOutput struct {
	Path   string           `json:"path"`
	Result *sniffkit.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func newClassifyCmd(c *cli) *cobra.Command {
	var (
		showScores bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Classify one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			load, err := c.fileLoader()
			if err != nil {
				return err
			}

			var outputs []classifyOutput
			failed := 0
			for _, path := range args {
				res, err := load(ctx, path)
				if err != nil {
					c.logger.Error().Err(err).Str("path", path).Msg("cannot classify file")
					failed++
					outputs = append(outputs, classifyOutput{Path: path, Error: err.Error()})
					continue
				}
				c.logger.Debug().
					Str("path", path).
					Stringer("label", res.Label).
					Float64("html", res.Scores.HTML).
					Float64("javascript", res.Scores.JavaScript).
					Float64("text", res.Scores.Text).
					Msg("classified")

				if asJSON {
					res := res
					outputs = append(outputs, classifyOutput{Path: path, Result: &res})
					continue
				}
				printResult(cmd.OutOrStdout(), path, res, len(args) > 1, showScores)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(outputs); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) could not be classified", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showScores, "scores", false, "Print the hypothesis scores")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}

// fileLoader returns a function classifying one argument. With the local
// driver arguments are filesystem paths; otherwise they are keys of the
// configured source.
func (c *cli) fileLoader() (func(ctx context.Context, path string) (sniffkit.Result, error), error) {
	if c.cfg.Driver == "local" {
		classifier := sniffkit.NewSniffer(c.cfg)
		maxSize := c.cfg.MaxFileSize
		return func(ctx context.Context, path string) (sniffkit.Result, error) {
			src, err := local.New(filepath.Dir(path))
			if err != nil {
				return sniffkit.Result{}, err
			}
			return sniffkit.ClassifyFile(ctx, classifier, src, filepath.Base(path), maxSize)
		}, nil
	}

	svc, err := sniffkit.New(c.cfg)
	if err != nil {
		return nil, err
	}
	return svc.ClassifyFile, nil
}

func printResult(w io.Writer, path string, res sniffkit.Result, withPath, showScores bool) {
	if withPath {
		fmt.Fprintf(w, "%s: ", path)
	}
	fmt.Fprintf(w, "Content type: %s\n", res.Label)
	if showScores {
		fmt.Fprintf(w, "HTML Hypothesis: %v\n", res.Scores.HTML)
		fmt.Fprintf(w, "JS Hypothesis: %v\n", res.Scores.JavaScript)
		fmt.Fprintf(w, "Text Hypothesis: %v\n", res.Scores.Text)
	}
}
