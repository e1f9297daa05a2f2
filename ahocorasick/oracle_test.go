package ahocorasick

import (
	"cmp"
	"io"
	"math/rand/v2"
	"slices"
)

// Brute-force reference implementations used by the property tests.

type oracleKeyword struct {
	pattern []uint16
	value   string
}

// oracleKeywords prepares keywords the way Build does: folded, trimmed for the
// whole-word kinds, empty ones dropped and duplicates collapsed.
func oracleKeywords(keywords []string, kind MatchKind, fold bool, words *WordChars) []oracleKeyword {
	index := map[string]int{}
	var out []oracleKeyword
	for _, k := range keywords {
		p := Units(k)
		if fold {
			p = foldUnits(p)
		}
		if kind.wholeWord() {
			p = words.Trim(p)
		}
		if len(p) == 0 {
			continue
		}
		if kind == WholeWord && slices.ContainsFunc(p, func(c uint16) bool { return !words.IsWord(c) }) {
			continue
		}
		key := String(p)
		if i, ok := index[key]; ok {
			out[i].value = k
			continue
		}
		index[key] = len(out)
		out = append(out, oracleKeyword{pattern: p, value: k})
	}
	return out
}

func oracleFold(h []uint16, fold bool) []uint16 {
	if !fold {
		return h
	}
	return foldUnits(h)
}

// oracleAll checks every substring against every keyword. Results are
// ordered by end, then by start.
func oracleAll(kws []oracleKeyword, h []uint16) []Match[string] {
	var out []Match[string]
	for end := 1; end <= len(h); end++ {
		for start := 0; start < end; start++ {
			for _, k := range kws {
				if slices.Equal(h[start:end], k.pattern) {
					out = append(out, Match[string]{Start: start, End: end, Value: k.value})
				}
			}
		}
	}
	return out
}

// oracleGreedy repeatedly takes the leftmost occurrence, preferring the
// longest or the shortest one at that start, and skips what it overlaps.
func oracleGreedy(occ []Match[string], longest bool) []Match[string] {
	sorted := slices.Clone(occ)
	slices.SortStableFunc(sorted, func(a, b Match[string]) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if longest {
			return cmp.Compare(b.End, a.End)
		}
		return cmp.Compare(a.End, b.End)
	})
	var out []Match[string]
	pos := 0
	for _, m := range sorted {
		if m.Start >= pos {
			out = append(out, m)
			pos = m.End
		}
	}
	return out
}

func oracleWholeWord(kws []oracleKeyword, h []uint16, words *WordChars) []Match[string] {
	var bounded []Match[string]
	for _, m := range oracleAll(kws, h) {
		if m.Start > 0 && words.IsWord(h[m.Start-1]) {
			continue
		}
		if m.End < len(h) && words.IsWord(h[m.End]) {
			continue
		}
		bounded = append(bounded, m)
	}
	return oracleGreedy(bounded, true)
}

func oracleExact(kws []oracleKeyword, h []uint16) []Match[string] {
	for _, k := range kws {
		if slices.Equal(k.pattern, h) {
			return []Match[string]{{Start: 0, End: len(h), Value: k.value}}
		}
	}
	return nil
}

// oracle computes the expected matches for any kind.
func oracle(keywords []string, h []uint16, kind MatchKind, fold bool, words *WordChars) []Match[string] {
	if words == nil {
		words = DefaultWordChars()
	}
	kws := oracleKeywords(keywords, kind, fold, words)
	fh := oracleFold(h, fold)
	switch kind {
	case LeftmostLongest:
		return oracleGreedy(oracleAll(kws, fh), true)
	case LeftmostShortest:
		return oracleGreedy(oracleAll(kws, fh), false)
	case WholeWord, WholeWordLongest:
		return oracleWholeWord(kws, fh, words)
	case Exact:
		return oracleExact(kws, fh)
	default:
		return oracleAll(kws, fh)
	}
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func randomUnits(r *rand.Rand, alphabet string, n int) []uint16 {
	a := Units(alphabet)
	out := make([]uint16, n)
	for i := range out {
		out[i] = a[r.IntN(len(a))]
	}
	return out
}

func randomKeywords(r *rand.Rand, alphabet string, count, maxLen int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = String(randomUnits(r, alphabet, 1+r.IntN(maxLen)))
	}
	return out
}

// chunkReader hands out at most size units per read.
type chunkReader struct {
	units []uint16
	size  int
}

func (c *chunkReader) ReadUnits(p []uint16) (int, error) {
	if len(c.units) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), c.size)], c.units)
	c.units = c.units[n:]
	return n, nil
}
