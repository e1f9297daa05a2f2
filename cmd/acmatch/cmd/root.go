package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sansecio/acmatch/ahocorasick"
	"github.com/sansecio/acmatch/cmd/internal"
	"github.com/sansecio/acmatch/config"
	"github.com/sansecio/acmatch/internal/logger"
	"github.com/spf13/cobra"
)

// buildFlags are shared by every command that compiles a keyword list.
type buildFlags struct {
	keywords   string
	configPath string
	kind       string
	ignoreCase bool
	verbose    bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.keywords, "keywords", "k", "", "Keyword list file")
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	fs.StringVarP(&f.kind, "kind", "m", "", "Match kind: all, leftmost-longest, leftmost-shortest, whole-word, whole-word-longest, exact")
	fs.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "Case insensitive")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Debug logging")
	cmd.MarkFlagRequired("keywords")
}

func (f *buildFlags) logger(cmd *cobra.Command) *log.Logger {
	return logger.NewWithConfig(cmd.ErrOrStderr(), "acmatch", logger.Level(f.verbose), false)
}

// loadConfig reads the config file and applies the flags the user set.
func (f *buildFlags) loadConfig(cmd *cobra.Command, l *log.Logger) (*config.Config, error) {
	cfg, warnings, err := internal.LoadConfig(f.configPath)
	for _, w := range warnings {
		l.Warn(w)
	}
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("kind") {
		if cfg.Match.Kind, err = config.ParseKind(f.kind); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("ignore-case") {
		cfg.Match.CaseInsensitive = f.ignoreCase
	}
	return cfg, nil
}

func (f *buildFlags) build(l *log.Logger, cfg *config.Config) (*ahocorasick.Automaton[string], error) {
	a, warnings, err := internal.LoadAutomaton(cfg, f.keywords)
	for _, w := range warnings {
		l.Warn(w)
	}
	if err != nil {
		return nil, err
	}
	s := a.Stats()
	l.Debug("automaton built", "kind", a.Kind(), "keywords", s.Keywords, "nodes", s.Nodes)
	return a, nil
}

// NewRootCmd creates the acmatch command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "acmatch",
		Short:         "acmatch: multi-keyword text scanner",
		Long:          "Scans text for every keyword of a keyword list at once using an Aho-Corasick automaton.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newScanCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && ExitCode(err) < 0 {
		fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}
