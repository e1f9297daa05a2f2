package ahocorasick

import (
	"errors"
	"fmt"
)

var (
	// ErrNonWordCharacter is returned by the WholeWord discipline for a
	// keyword that still contains a non-word unit after trimming.
	ErrNonWordCharacter = errors.New("keyword contains a non-word character")

	// ErrCapacityExceeded signals a hash node that found no free slot. It
	// indicates a bug in the node store, not a problem with the input.
	ErrCapacityExceeded = errors.New("hash node capacity exceeded")
)

// KeywordError ties a build error to the keyword that caused it.
type KeywordError struct {
	Index   int
	Keyword string
	Err     error
}

func (e *KeywordError) Error() string {
	return fmt.Sprintf("keyword %d %q: %v", e.Index, e.Keyword, e.Err)
}

func (e *KeywordError) Unwrap() error {
	return e.Err
}
