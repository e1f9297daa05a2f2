package ahocorasick

import (
	"sync"
	"unicode"
)

// foldTable maps every code unit to its lowercase form. Units whose lowercase
// form does not fit in a single unit, and surrogate halves, map to themselves.
type foldTable [1 << 16]uint16

var lowerTable = sync.OnceValue(func() *foldTable {
	var t foldTable
	for i := range t {
		t[i] = uint16(i)
		r := unicode.ToLower(rune(i))
		if r <= 0xFFFF {
			t[i] = uint16(r)
		}
	}
	return &t
})

// foldUnits returns a lowercase copy of units.
func foldUnits(units []uint16) []uint16 {
	t := lowerTable()
	out := make([]uint16, len(units))
	for i, c := range units {
		out[i] = t[c]
	}
	return out
}

// FoldString lowercases s the way a case-insensitive automaton folds its
// keywords and input, so two strings that fold to the same result match the
// same text.
func FoldString(s string) string {
	return String(foldUnits(Units(s)))
}
