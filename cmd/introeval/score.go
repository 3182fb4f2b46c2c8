package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/introeval/internal/app"
	"github.com/okian/introeval/internal/domain/scoring"
	"github.com/okian/introeval/pkg/logger"
)

type scoreOptions struct {
	file     string
	duration int
	pretty   bool
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score [transcript...]",
		Short: "Evaluate one transcript and print the JSON report",
		Long: "Evaluate one transcript and print the JSON report.\n\n" +
			"The transcript is read from --file (use - for stdin) or taken from the\n" +
			"remaining arguments joined by spaces.",
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readTranscript(cmd.InOrStdin(), opts.file, args)
			if err != nil {
				return err
			}

			svc := service.New(service.WithLogger(logger.Get().Named("cli")))
			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}
			defer svc.Stop()

			report, err := svc.Evaluate(cmd.Context(), transcript, opts.duration)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if opts.pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the transcript from a file (- for stdin)")
	cmd.Flags().IntVarP(&opts.duration, "duration", "d", scoring.DefaultDurationSec, "speaking time in seconds")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON report")
	return cmd
}

// readTranscript resolves the transcript source: --file wins over arguments.
func readTranscript(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(b), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return "", errors.New("no transcript given: pass text, --file path or --file -")
	}
}
