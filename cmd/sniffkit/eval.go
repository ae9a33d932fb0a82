package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gobeaver/sniffkit"
	"github.com/gobeaver/sniffkit/evaluate"
	"github.com/spf13/cobra"
)

func newEvalCmd(c *cli) *cobra.Command {
	var (
		format  string
		workers int
		include []string
		exclude []string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "eval [dir]",
		Short: "Evaluate accuracy over a corpus labelled by file extension",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg := *c.cfg
			if cmd.Flags().Changed("format") {
				cfg.ReportFormat = format
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			root := ""
			if len(args) > 0 {
				if cfg.Driver == "local" {
					cfg.LocalBasePath = args[0]
				} else {
					root = args[0]
				}
			}

			svc, err := sniffkit.New(&cfg)
			if err != nil {
				return err
			}

			runner := &evaluate.Runner{
				Source:      svc.Source(),
				Classifier:  svc.Sniffer(),
				Workers:     cfg.Workers,
				Include:     include,
				Exclude:     exclude,
				MaxFileSize: cfg.MaxFileSize,
				Logger:      &c.logger,
			}

			run := func() error {
				report, err := runner.Run(ctx, root)
				if err != nil {
					return err
				}
				c.logger.Info().
					Int("files", len(report.Files)).
					Int("errors", report.Errors).
					Msg("evaluation finished")
				return report.Write(cmd.OutOrStdout(), cfg.ReportFormat)
			}

			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			watcher, ok := svc.Source().(sniffkit.CanWatch)
			if !ok {
				return fmt.Errorf("driver %s does not support watching", cfg.Driver)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.logger.Info().Str("driver", cfg.Driver).Msg("watching for changes")
			cancel := sniffkit.OnChange(
				func() (sniffkit.ChangeToken, error) {
					return watcher.Watch(ctx, "**")
				},
				func() {
					if err := run(); err != nil {
						c.logger.Error().Err(err).Msg("re-run failed")
					}
				},
			)
			defer cancel()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Report format (text, json, yaml)")
	cmd.Flags().IntVar(&workers, "workers", evaluate.DefaultWorkers, "Concurrent classifications")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Glob patterns of files to evaluate")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns of files to skip")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run when the corpus changes")
	return cmd
}
