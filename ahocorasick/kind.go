package ahocorasick

import (
	"fmt"
	"strings"
)

// MatchKind selects how overlapping candidates are reported.
type MatchKind int

const (
	// All reports every occurrence of every keyword, overlaps included.
	All MatchKind = iota
	// LeftmostLongest reports non-overlapping matches, preferring the
	// leftmost start and then the longest keyword.
	LeftmostLongest
	// LeftmostShortest reports non-overlapping matches, preferring the
	// leftmost start and then the shortest keyword.
	LeftmostShortest
	// WholeWordLongest reports leftmost-longest matches that start and end
	// on word boundaries. Keywords are trimmed of non-word units at both
	// ends and may contain non-word units inside.
	WholeWordLongest
	// WholeWord is WholeWordLongest restricted to single-word keywords.
	WholeWord
	// Exact reports a match only when the whole input equals a keyword.
	Exact
)

var kindNames = [...]string{
	All:              "all",
	LeftmostLongest:  "leftmost-longest",
	LeftmostShortest: "leftmost-shortest",
	WholeWordLongest: "whole-word-longest",
	WholeWord:        "whole-word",
	Exact:            "exact",
}

func (k MatchKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseMatchKind resolves a kind by name, case-insensitively.
func ParseMatchKind(s string) (MatchKind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return MatchKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown match kind %q", s)
}

func (k MatchKind) usesFailLinks() bool {
	return k == All || k == LeftmostLongest || k == LeftmostShortest
}

func (k MatchKind) wholeWord() bool {
	return k == WholeWord || k == WholeWordLongest
}

// MarshalText and UnmarshalText let kinds appear by name in config files.
func (k MatchKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MatchKind) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
