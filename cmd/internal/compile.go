package internal

import (
	"errors"
	"fmt"

	"github.com/sansecio/acmatch/ahocorasick"
	"github.com/sansecio/acmatch/config"
	"github.com/sansecio/acmatch/keywords"
)

// LoadConfig reads the config file at path, or returns the defaults when path
// is empty.
func LoadConfig(path string) (*config.Config, []string, error) {
	if path == "" {
		return config.DefaultConfig(), nil, nil
	}
	return config.Load(path)
}

// LoadKeywords parses a keyword list file.
func LoadKeywords(path string, fold bool) (*keywords.List, []string, error) {
	if path == "" {
		return nil, nil, errors.New("no keyword file given")
	}
	p, err := keywords.New(fold)
	if err != nil {
		return nil, nil, err
	}
	l, err := p.ParseFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing keywords: %w", err)
	}
	return l, p.Warnings(), nil
}

// LoadAutomaton parses the keyword file and builds an automaton with the
// options from cfg. The returned warnings cover both steps.
func LoadAutomaton(cfg *config.Config, keywordFile string) (*ahocorasick.Automaton[string], []string, error) {
	list, warnings, err := LoadKeywords(keywordFile, cfg.Match.CaseInsensitive)
	if err != nil {
		return nil, nil, err
	}
	a, err := ahocorasick.Build(list.Keywords(), cfg.Options())
	if err != nil {
		return nil, warnings, fmt.Errorf("building automaton: %w", err)
	}
	return a, append(warnings, a.Warnings()...), nil
}
