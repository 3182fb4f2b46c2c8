package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/introeval/internal/domain/scoring"
)

func newRubricCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rubric",
		Short: "Print the rubric sections and category maxima",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range scoring.Sections() {
				fmt.Fprintf(tw, "%s\t%d\n", s.Name, s.Max)
				for _, c := range s.Categories {
					fmt.Fprintf(tw, "  %s\t%d\n", c, scoring.MaxFor(c))
				}
			}
			fmt.Fprintf(tw, "total\t%d\n", scoring.MaxScore)
			return tw.Flush()
		},
	}
}
