package keywords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, fold bool, input string) (*List, *Parser) {
	t.Helper()
	p, err := New(fold)
	require.NoError(t, err)
	l, err := p.Parse(input)
	require.NoError(t, err)
	return l, p
}

func TestParse(t *testing.T) {
	l, p := mustParse(t, false, `# animals
cat
catalog => book

new   york => city
"as if" => "phrase"
"tab\there, # = \"ok\""
`)
	assert.Empty(t, p.Warnings())
	assert.Equal(t, []Entry{
		{Pattern: "cat", Value: "cat", Line: 2},
		{Pattern: "catalog", Value: "book", Line: 3},
		{Pattern: "new york", Value: "city", Line: 5},
		{Pattern: "as if", Value: "phrase", Line: 6},
		{Pattern: "tab\there, # = \"ok\"", Value: "tab\there, # = \"ok\"", Line: 7},
	}, l.Entries())
}

func TestParse_NoTrailingNewline(t *testing.T) {
	l, _ := mustParse(t, false, "one\ntwo => 2")
	require.Equal(t, 2, l.Len())
	assert.Equal(t, "2", l.Entries()[1].Value)
}

func TestParse_Empty(t *testing.T) {
	l, p := mustParse(t, false, "")
	assert.Zero(t, l.Len())
	assert.Empty(t, p.Warnings())

	l, _ = mustParse(t, false, "# only comments\n\n# here\n")
	assert.Zero(t, l.Len())
}

func TestParse_Duplicates(t *testing.T) {
	l, p := mustParse(t, false, "key => 1\nother\nkey => 3\n")
	require.Equal(t, 2, l.Len())
	e, ok := l.Lookup("key")
	require.True(t, ok)
	assert.Equal(t, "3", e.Value)
	assert.Equal(t, 1, e.Line)
	require.Len(t, p.Warnings(), 1)
	assert.Contains(t, p.Warnings()[0], "line 3: duplicate keyword")
}

func TestParse_FoldedDuplicates(t *testing.T) {
	l, p := mustParse(t, true, "Key => 1\nKEY => 2\n")
	assert.Equal(t, 1, l.Len())
	assert.Len(t, p.Warnings(), 1)

	l, _ = mustParse(t, false, "Key => 1\nKEY => 2\n")
	assert.Equal(t, 2, l.Len())
}

func TestParse_EmptyQuotedKeyword(t *testing.T) {
	l, p := mustParse(t, false, "\"\" => nothing\nreal\n")
	assert.Equal(t, 1, l.Len())
	require.Len(t, p.Warnings(), 1)
	assert.Contains(t, p.Warnings()[0], "empty keyword")
}

func TestParse_Errors(t *testing.T) {
	p, err := New(false)
	require.NoError(t, err)
	for _, input := range []string{
		"a=b\n",
		"\"unterminated\n",
		"=> value\n",
		"key =>\n",
	} {
		_, err := p.Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta => b\n"), 0o644))

	p, err := New(false)
	require.NoError(t, err)
	l, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList_Prefixed(t *testing.T) {
	l, _ := mustParse(t, false, "catalog\ncat\ndog\ncatnip\n")
	var got []string
	for _, e := range l.Prefixed("cat") {
		got = append(got, e.Pattern)
	}
	assert.Equal(t, []string{"cat", "catalog", "catnip"}, got)
	assert.Empty(t, l.Prefixed("bird"))
	assert.Len(t, l.Prefixed(""), 4)
}

func TestList_Keywords(t *testing.T) {
	l, _ := mustParse(t, false, "he\nshe => pronoun\n")
	kws := l.Keywords()
	require.Len(t, kws, 2)
	assert.Equal(t, "pronoun", kws[1].Value)
	assert.Equal(t, []uint16{'s', 'h', 'e'}, kws[1].Pattern)
}

func TestList_FoldsLikeTheAutomaton(t *testing.T) {
	l := NewList(true)
	_, dup := l.Add(Entry{Pattern: "i", Value: "1"})
	require.False(t, dup)
	_, dup = l.Add(Entry{Pattern: "\u0130", Value: "2"})
	assert.True(t, dup, "dotted capital I folds to i unit by unit")

	_, dup = l.Add(Entry{Pattern: "\U00010400", Value: "3"})
	require.False(t, dup)
	_, dup = l.Add(Entry{Pattern: "\U00010428", Value: "4"})
	assert.False(t, dup, "surrogate pairs are not folded")
	assert.Equal(t, 3, l.Len())
}
