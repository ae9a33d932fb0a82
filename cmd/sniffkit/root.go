package main

import (
	"fmt"
	"time"

	"github.com/gobeaver/sniffkit"
	_ "github.com/gobeaver/sniffkit/driver/memory"
	_ "github.com/gobeaver/sniffkit/driver/s3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cli holds state shared by the subcommands once flags are parsed.
type cli struct {
	cfg     *sniffkit.Config
	logger  zerolog.Logger
	verbose bool
	driver  string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "sniffkit",
		Short:         "Classify content as binary, HTML, JavaScript or plain text",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Verbose (debug) logging")
	root.PersistentFlags().StringVar(&c.driver, "driver", "", "Source driver (local, s3, memory); overrides SNIFFKIT_DRIVER")

	root.AddCommand(newClassifyCmd(c), newEvalCmd(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := sniffkit.GetConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.driver != "" {
		cfg.Driver = c.driver
	}
	c.cfg = cfg

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if c.verbose {
		level = zerolog.DebugLevel
	}
	c.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}
