package keywords

import "github.com/alecthomas/participle/v2/lexer"

// Grammar structs for the keyword list format. Every entry sits on its own
// line:
//
//	# comment
//	plain keyword
//	"quoted, with # and =" => value

type file struct {
	Lines []*lineGrammar `parser:"@@*"`
}

type lineGrammar struct {
	Entry *entryGrammar `parser:"@@? Newline"`
}

type entryGrammar struct {
	Pos lexer.Position

	Pattern *textGrammar `parser:"@@"`
	Value   *textGrammar `parser:"( Arrow @@ )?"`
}

// textGrammar is a quoted string or a run of bare words. Bare words are joined
// by single spaces.
type textGrammar struct {
	Quoted *string  `parser:"( @String"`
	Words  []string `parser:"| @Word+ )"`
}
