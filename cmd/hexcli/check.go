package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crosswarped.com/hexword/pkg/automaton"
)

func newCheckCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "check PATTERN STRING...",
		Short: "Report whether each string is a live prefix or a full match of PATTERN",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := automaton.Compile(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "STRING\tPARTIAL\tFULL\n")
			for _, s := range args[1:] {
				fmt.Fprintf(tw, "%q\t%t\t%t\n", s, m.PartiallyMatches(s), m.Matches(s))
				if !trace {
					continue
				}
				for i, snap := range m.Trace(s) {
					fmt.Fprintf(tw, "  %d %q\tdead=%t\tmatch=%t\n", i, snap.Rune, snap.Dead, snap.Match)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "Show the matcher state after every letter")
	return cmd
}
