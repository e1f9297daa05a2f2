package cmd

import (
	"errors"
	"fmt"

	"github.com/sansecio/acmatch/cmd/internal"
	"github.com/spf13/cobra"
)

var errInvalidKeywords = errors.New("keyword list has problems")

func newCheckCmd() *cobra.Command {
	var (
		f      buildFlags
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "check -k <keywords>",
		Short: "Validate a keyword list",
		Long: "Parses the keyword list, reports duplicates and keywords the match kind\n" +
			"rejects, and optionally lists the keywords starting with a prefix.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := f.logger(cmd)
			cfg, err := f.loadConfig(cmd, l)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if cmd.Flags().Changed("prefix") {
				list, _, err := internal.LoadKeywords(f.keywords, cfg.Match.CaseInsensitive)
				if err != nil {
					return err
				}
				for _, e := range list.Prefixed(prefix) {
					fmt.Fprintf(w, "%d\t%s\t%s\n", e.Line, e.Pattern, e.Value)
				}
				return nil
			}

			cfg.Match.SkipInvalid = true
			a, warnings, err := internal.LoadAutomaton(cfg, f.keywords)
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				fmt.Fprintln(w, warning)
			}
			fmt.Fprintf(w, "%d keywords, %d problems\n", a.Stats().Keywords, len(warnings))
			if len(warnings) > 0 {
				return errInvalidKeywords
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&prefix, "prefix", "", "List the keywords starting with this prefix")
	return cmd
}
