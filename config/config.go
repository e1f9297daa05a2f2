// Package config loads matcher settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sansecio/acmatch/ahocorasick"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Config is the on-disk configuration.
type Config struct {
	Match     MatchConfig     `toml:"match"`
	Threshold ThresholdConfig `toml:"threshold"`
	Words     WordsConfig     `toml:"words"`
	Output    OutputConfig    `toml:"output"`
}

type MatchConfig struct {
	Kind            ahocorasick.MatchKind `toml:"kind"`
	CaseInsensitive bool                  `toml:"case_insensitive"`
	SkipInvalid     bool                  `toml:"skip_invalid"`
}

// ThresholdConfig holds the parameters of ahocorasick.RangeNodeThreshold.
type ThresholdConfig struct {
	Exponent       float64 `toml:"exponent"`
	LinearFactor   float64 `toml:"linear_factor"`
	MaxValue       float64 `toml:"max_value"`
	ConstantFactor float64 `toml:"constant_factor"`
}

// WordsConfig adjusts the default word characters. Every character of Add
// becomes a word character, every character of Remove a separator.
type WordsConfig struct {
	Add    string `toml:"add"`
	Remove string `toml:"remove"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	th := ahocorasick.DefaultThreshold()
	return &Config{
		Match: MatchConfig{Kind: ahocorasick.LeftmostLongest},
		Threshold: ThresholdConfig{
			Exponent:       th.Exponent,
			LinearFactor:   th.LinearFactor,
			MaxValue:       th.MaxValue,
			ConstantFactor: th.ConstantFactor,
		},
		Output: OutputConfig{Format: FormatText},
	}
}

// Load reads path over the defaults. Keys the config does not know are
// returned as warnings.
func Load(path string) (*Config, []string, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	if err := cfg.Validate(); err != nil {
		return nil, warnings, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, warnings, nil
}

// Save writes cfg to path as TOML.
func Save(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	return f.Close()
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatMsgpack:
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, c.Output.Format)
	}
	if c.Threshold.ConstantFactor <= 0 {
		return fmt.Errorf("threshold constant_factor must be positive, got %v", c.Threshold.ConstantFactor)
	}
	return nil
}

// WordChars builds the word table: the default one with the configured
// additions and removals applied.
func (c *Config) WordChars() *ahocorasick.WordChars {
	w := ahocorasick.DefaultWordChars()
	for _, u := range ahocorasick.Units(c.Words.Add) {
		w.Toggle(u, true)
	}
	for _, u := range ahocorasick.Units(c.Words.Remove) {
		w.Toggle(u, false)
	}
	return w
}

// Options converts the configuration for ahocorasick.Build.
func (c *Config) Options() ahocorasick.Options {
	return ahocorasick.Options{
		Kind:            c.Match.Kind,
		CaseInsensitive: c.Match.CaseInsensitive,
		Threshold: ahocorasick.RangeNodeThreshold{
			Exponent:       c.Threshold.Exponent,
			LinearFactor:   c.Threshold.LinearFactor,
			MaxValue:       c.Threshold.MaxValue,
			ConstantFactor: c.Threshold.ConstantFactor,
		},
		WordChars:           c.WordChars(),
		SkipInvalidKeywords: c.Match.SkipInvalid,
	}
}

// ParseKind resolves a match kind name as used in config files and flags.
func ParseKind(s string) (ahocorasick.MatchKind, error) {
	return ahocorasick.ParseMatchKind(s)
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(s)
	switch f {
	case FormatText, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}
