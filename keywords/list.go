package keywords

import (
	"cmp"
	"slices"

	"github.com/sansecio/acmatch/ahocorasick"
	"github.com/tchap/go-patricia/v2/patricia"
)

// List is an ordered keyword set. A repeated pattern keeps its first position
// and takes the last value.
type List struct {
	trie    *patricia.Trie
	entries []Entry
	fold    bool
}

// NewList creates an empty list. With fold set, patterns are compared after
// ahocorasick.FoldString.
func NewList(fold bool) *List {
	return &List{trie: patricia.NewTrie(), fold: fold}
}

func (l *List) key(pattern string) patricia.Prefix {
	if l.fold {
		pattern = ahocorasick.FoldString(pattern)
	}
	return patricia.Prefix(pattern)
}

// Add appends e. When the pattern is already present the stored entry's value
// is replaced and the previous entry is returned with ok set.
func (l *List) Add(e Entry) (prev Entry, ok bool) {
	k := l.key(e.Pattern)
	if item := l.trie.Get(k); item != nil {
		i := item.(int)
		prev = l.entries[i]
		l.entries[i].Value = e.Value
		return prev, true
	}
	l.trie.Insert(k, len(l.entries))
	l.entries = append(l.entries, e)
	return Entry{}, false
}

func (l *List) Len() int {
	return len(l.entries)
}

// Entries returns the entries in the order they were first added.
func (l *List) Entries() []Entry {
	return l.entries
}

// Lookup returns the entry stored for pattern.
func (l *List) Lookup(pattern string) (Entry, bool) {
	item := l.trie.Get(l.key(pattern))
	if item == nil {
		return Entry{}, false
	}
	return l.entries[item.(int)], true
}

// Prefixed returns the entries whose pattern starts with prefix, sorted by
// pattern.
func (l *List) Prefixed(prefix string) []Entry {
	var out []Entry
	l.trie.VisitSubtree(l.key(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, l.entries[item.(int)])
		return nil
	})
	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.Pattern, b.Pattern) })
	return out
}

// Keywords converts the list for ahocorasick.Build.
func (l *List) Keywords() []ahocorasick.Keyword[string] {
	out := make([]ahocorasick.Keyword[string], len(l.entries))
	for i, e := range l.entries {
		out[i] = ahocorasick.NewKeyword(e.Pattern, e.Value)
	}
	return out
}
