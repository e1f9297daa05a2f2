// Package keywords reads keyword list files.
//
// A keyword list has one entry per line. An entry is either a quoted string
// with Go escapes or a run of bare words, optionally followed by "=>" and a
// value written the same way. Without a value the keyword reports itself.
// Bare words may not contain quotes, '#' or '='. Lines starting with '#' are
// comments.
package keywords

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Entry is one keyword from a list file.
type Entry struct {
	Pattern string
	Value   string
	Line    int
}

// Parser parses keyword lists.
type Parser struct {
	parser   *participle.Parser[file]
	fold     bool
	warnings []string
}

var keywordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\\n]|\\.)*"`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Word", Pattern: `[^\s"#=]+`},
})

// New creates a keyword list parser. With fold set, keywords differing only
// in case count as duplicates.
func New(fold bool) (*Parser, error) {
	p, err := participle.Build[file](
		participle.Lexer(keywordLexer),
		participle.Elide("Whitespace", "Comment"),
	)
	if err != nil {
		return nil, fmt.Errorf("building parser: %w", err)
	}
	return &Parser{parser: p, fold: fold}, nil
}

// Parse parses a keyword list from a string.
func (p *Parser) Parse(input string) (*List, error) {
	return p.parse("", input)
}

// ParseFile parses a keyword list from a file.
func (p *Parser) ParseFile(filename string) (*List, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return p.parse(filename, string(content))
}

// Warnings returns the warnings generated during the last parse.
func (p *Parser) Warnings() []string {
	return p.warnings
}

func (p *Parser) parse(filename, input string) (*List, error) {
	p.warnings = nil
	if !strings.HasSuffix(input, "\n") {
		input += "\n"
	}
	f, err := p.parser.ParseString(filename, input)
	if err != nil {
		return nil, err
	}

	l := NewList(p.fold)
	for _, line := range f.Lines {
		if line.Entry == nil {
			continue
		}
		e, err := convertEntry(line.Entry)
		if err != nil {
			return nil, err
		}
		if e.Pattern == "" {
			p.warnings = append(p.warnings, fmt.Sprintf("line %d: empty keyword ignored", e.Line))
			continue
		}
		if prev, ok := l.Add(e); ok {
			p.warnings = append(p.warnings, fmt.Sprintf("line %d: duplicate keyword %q (first on line %d), last value wins", e.Line, e.Pattern, prev.Line))
		}
	}
	return l, nil
}

func convertEntry(g *entryGrammar) (Entry, error) {
	e := Entry{Line: g.Pos.Line}
	var err error
	if e.Pattern, err = convertText(g.Pattern); err != nil {
		return Entry{}, fmt.Errorf("%s: %w", g.Pos, err)
	}
	if g.Value == nil {
		e.Value = e.Pattern
		return e, nil
	}
	if e.Value, err = convertText(g.Value); err != nil {
		return Entry{}, fmt.Errorf("%s: %w", g.Pos, err)
	}
	return e, nil
}

func convertText(t *textGrammar) (string, error) {
	if t.Quoted == nil {
		return strings.Join(t.Words, " "), nil
	}
	s, err := strconv.Unquote(*t.Quoted)
	if err != nil {
		return "", fmt.Errorf("invalid string %s: %w", *t.Quoted, err)
	}
	return s, nil
}
