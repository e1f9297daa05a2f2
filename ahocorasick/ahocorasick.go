// Package ahocorasick implements a multi-pattern matcher over 16-bit code
// units. An Automaton is built once from a keyword set and is safe for
// concurrent scans afterwards.
package ahocorasick

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
)

// Keyword is a pattern of code units paired with the value reported for it.
type Keyword[V any] struct {
	Pattern []uint16
	Value   V
}

// NewKeyword builds a keyword from a Go string.
func NewKeyword[V any](pattern string, value V) Keyword[V] {
	return Keyword[V]{Pattern: Units(pattern), Value: value}
}

// Options configures Build. The zero value matches all occurrences, case
// sensitively, with the default threshold and word characters.
type Options struct {
	Kind MatchKind

	// CaseInsensitive folds keywords and input to lowercase unit by unit.
	CaseInsensitive bool

	// Threshold picks hash or range nodes. Nil means DefaultThreshold.
	Threshold Thresholder

	// WordChars is used by the whole-word kinds. Nil means DefaultWordChars.
	WordChars *WordChars

	// SkipInvalidKeywords skips keywords the discipline rejects, recording a
	// warning, instead of failing the build.
	SkipInvalidKeywords bool

	// DisablePrefilter turns off the start-unit prefilter.
	DisablePrefilter bool
}

// Listener receives matches as [start, end) code unit offsets. Returning
// false stops the scan.
type Listener[V any] interface {
	OnMatch(start, end int, value V) bool
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[V any] func(start, end int, value V) bool

func (f ListenerFunc[V]) OnMatch(start, end int, value V) bool {
	return f(start, end, value)
}

// Match is a reported occurrence.
type Match[V any] struct {
	Start int
	End   int
	Value V
}

// Stats describes the shape of a built automaton.
type Stats struct {
	Keywords      int
	MaxKeywordLen int
	MaxDepth      int
	Nodes         int
	HashNodes     int
	RangeNodes    int
	HashSlots     int
	RangeSlots    int
	// FilledSlots counts empty range slots that were pointed at their
	// failure transition.
	FilledSlots int
}

// Automaton is an immutable keyword matcher.
type Automaton[V any] struct {
	kind      MatchKind
	nodes     []node
	values    []V
	lower     *foldTable
	words     *WordChars
	prefilter *startUnits
	stats     Stats
	warnings  []string
}

// Build compiles keywords into an automaton. Empty keywords are ignored and a
// repeated pattern keeps the last value.
func Build[V any](keywords []Keyword[V], opts Options) (*Automaton[V], error) {
	threshold := opts.Threshold
	if threshold == nil {
		threshold = DefaultThreshold()
	}
	words := opts.WordChars
	if words == nil {
		words = DefaultWordChars()
	} else {
		words = words.Clone()
	}

	a := &Automaton[V]{kind: opts.Kind, words: words}
	if opts.CaseInsensitive {
		a.lower = lowerTable()
	}

	b := newBuilder(opts.Kind, threshold, words)
	var errs []error
	for i, kw := range keywords {
		pattern := kw.Pattern
		if a.lower != nil {
			pattern = foldUnits(pattern)
		}
		if opts.Kind.wholeWord() {
			pattern = words.Trim(pattern)
		}
		if len(pattern) == 0 {
			continue
		}
		if opts.Kind == WholeWord && slices.ContainsFunc(pattern, func(c uint16) bool { return !words.IsWord(c) }) {
			err := &KeywordError{Index: i, Keyword: String(kw.Pattern), Err: ErrNonWordCharacter}
			if opts.SkipInvalidKeywords {
				a.warnings = append(a.warnings, err.Error())
				continue
			}
			errs = append(errs, err)
			continue
		}

		end, err := b.insert(pattern)
		if err != nil {
			return nil, &KeywordError{Index: i, Keyword: String(kw.Pattern), Err: err}
		}
		m := &b.trie[end].match
		if m.length > 0 {
			a.values[m.value] = kw.Value
			continue
		}
		m.length = int32(len(pattern))
		m.value = int32(len(a.values))
		a.values = append(a.values, kw.Value)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	nodes, stats, err := b.compile()
	if err != nil {
		return nil, fmt.Errorf("compiling automaton: %w", err)
	}
	stats.Keywords = len(a.values)
	a.nodes = nodes
	a.stats = stats
	if !opts.DisablePrefilter && opts.Kind.usesFailLinks() {
		a.prefilter = b.prefixes.build()
	}
	return a, nil
}

// BuildStrings builds a set automaton whose values are the keywords as given.
func BuildStrings(keywords []string, opts Options) (*Automaton[string], error) {
	kws := make([]Keyword[string], len(keywords))
	for i, k := range keywords {
		kws[i] = NewKeyword(k, k)
	}
	return Build(kws, opts)
}

// Kind returns the matching discipline.
func (a *Automaton[V]) Kind() MatchKind {
	return a.kind
}

// CaseInsensitive reports whether keywords and input are folded.
func (a *Automaton[V]) CaseInsensitive() bool {
	return a.lower != nil
}

// WordChars returns a copy of the word table the automaton was built with, so
// callers can trim their own keyword echoes the same way.
func (a *Automaton[V]) WordChars() *WordChars {
	return a.words.Clone()
}

// Warnings returns the keywords skipped during Build.
func (a *Automaton[V]) Warnings() []string {
	return slices.Clone(a.warnings)
}

// Stats returns the shape of the automaton. Keywords counts the distinct
// patterns accepted by Build, including those LeftmostShortest never reaches.
func (a *Automaton[V]) Stats() Stats {
	return a.stats
}

// Patterns returns the keywords reachable in the automaton, folded and
// trimmed as they were inserted, in code unit order. Under LeftmostShortest a
// keyword extending a shorter one can never match and is left out.
func (a *Automaton[V]) Patterns() [][]uint16 {
	return patterns(a.nodes)
}

// Scan reports the matches in haystack to l.
func (a *Automaton[V]) Scan(haystack []uint16, l Listener[V]) {
	in := memoryInput(haystack)
	a.scan(&in, l)
}

// ScanString scans s with offsets in UTF-16 code units.
func (a *Automaton[V]) ScanString(s string, l Listener[V]) {
	a.Scan(Units(s), l)
}

// ScanUnits scans a stream of code units. Offsets are counted from the start
// of the stream. Read errors other than io.EOF are returned.
func (a *Automaton[V]) ScanUnits(r UnitReader, l Listener[V]) error {
	in := streamInput(r, a.stats.MaxKeywordLen)
	a.scan(&in, l)
	return in.err
}

// ScanReader scans UTF-8 text from r.
func (a *Automaton[V]) ScanReader(r io.Reader, l Listener[V]) error {
	return a.ScanUnits(NewUTF8Reader(r), l)
}

// Matches returns an iterator over the matches in haystack.
func (a *Automaton[V]) Matches(haystack []uint16) iter.Seq[Match[V]] {
	return func(yield func(Match[V]) bool) {
		a.Scan(haystack, ListenerFunc[V](func(start, end int, value V) bool {
			return yield(Match[V]{Start: start, End: end, Value: value})
		}))
	}
}

// FindAll collects every match in haystack.
func (a *Automaton[V]) FindAll(haystack []uint16) []Match[V] {
	return slices.Collect(a.Matches(haystack))
}

// Contains reports whether haystack has at least one match.
func (a *Automaton[V]) Contains(haystack []uint16) bool {
	for range a.Matches(haystack) {
		return true
	}
	return false
}

func (a *Automaton[V]) scan(in *input, l Listener[V]) {
	switch a.kind {
	case All:
		a.scanAll(in, l)
	case LeftmostLongest, LeftmostShortest:
		a.scanLeftmost(in, l)
	case WholeWord, WholeWordLongest:
		a.scanWholeWord(in, l)
	case Exact:
		a.scanExact(in, l)
	}
}
