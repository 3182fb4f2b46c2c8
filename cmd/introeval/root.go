package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/introeval/pkg/logger"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "introeval",
		Short:         "Score self-introduction transcripts against the 100-point rubric",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout stays machine-readable.
			if err := logger.Init(logger.WithFormat(opts.logFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(opts.logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", logger.FormatText, "log format: text or json")

	cmd.AddCommand(newScoreCmd(), newRubricCmd())
	return cmd
}
