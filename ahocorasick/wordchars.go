package ahocorasick

import "unicode"

// WordChars is a membership table over all 65536 code units. The whole-word
// disciplines use it to trim keywords and to locate word boundaries.
type WordChars struct {
	table [1 << 16]bool
}

// DefaultWordChars treats letters, digits, '-' and '_' as word characters.
func DefaultWordChars() *WordChars {
	w := &WordChars{}
	for i := range w.table {
		r := rune(i)
		w.table[i] = unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	w.table['-'] = true
	w.table['_'] = true
	return w
}

// NewWordChars treats exactly the given units as word characters.
func NewWordChars(units ...uint16) *WordChars {
	w := &WordChars{}
	for _, c := range units {
		w.table[c] = true
	}
	return w
}

// Toggle sets the membership of c and returns w.
func (w *WordChars) Toggle(c uint16, word bool) *WordChars {
	w.table[c] = word
	return w
}

func (w *WordChars) IsWord(c uint16) bool {
	return w.table[c]
}

// Clone returns an independent copy of w.
func (w *WordChars) Clone() *WordChars {
	c := *w
	return &c
}

// Trim strips leading and trailing non-word units. A keyword without any word
// unit trims to an empty slice.
func (w *WordChars) Trim(units []uint16) []uint16 {
	start, end := 0, len(units)
	for start < end && !w.table[units[start]] {
		start++
	}
	for end > start && !w.table[units[end-1]] {
		end--
	}
	return units[start:end]
}

// TrimString is Trim for Go strings, with offsets in code units.
func (w *WordChars) TrimString(s string) string {
	return String(w.Trim(Units(s)))
}
