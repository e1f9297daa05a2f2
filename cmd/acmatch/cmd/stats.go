package cmd

import (
	"fmt"
	"time"

	"github.com/sansecio/acmatch/ahocorasick"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "stats -k <keywords>",
		Short: "Build the automaton and show its shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := f.logger(cmd)
			cfg, err := f.loadConfig(cmd, l)
			if err != nil {
				return err
			}
			start := time.Now()
			a, err := f.build(l, cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatStats(a.Kind(), a.Stats(), time.Since(start)))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func formatStats(kind ahocorasick.MatchKind, s ahocorasick.Stats, elapsed time.Duration) string {
	return fmt.Sprintf(`kind:             %s
keywords:         %d
longest keyword:  %d
nodes:            %d (%d hash, %d range)
max depth:        %d
hash slots:       %d
range slots:      %d (%d filled from failure links)
build time:       %s
`, kind, s.Keywords, s.MaxKeywordLen, s.Nodes, s.HashNodes, s.RangeNodes, s.MaxDepth,
		s.HashSlots, s.RangeSlots, s.FilledSlots, elapsed.Round(time.Microsecond))
}
