package ahocorasick

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"unicode/utf16"
)

// Units converts s to UTF-16 code units. Invalid UTF-8 becomes U+FFFD.
func Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// String converts code units back to a Go string. Unpaired surrogates become
// U+FFFD.
func String(units []uint16) string {
	return string(utf16.Decode(units))
}

// UnitReader is a stream of 16-bit code units. It follows the io.Reader
// contract: it may return n > 0 together with an error, and io.EOF marks the
// end of the stream.
type UnitReader interface {
	ReadUnits(p []uint16) (n int, err error)
}

type utf8Units struct {
	r       *bufio.Reader
	low     uint16
	pending bool
}

// NewUTF8Reader decodes UTF-8 from r into code units. Characters outside the
// basic multilingual plane become surrogate pairs.
func NewUTF8Reader(r io.Reader) UnitReader {
	return &utf8Units{r: bufio.NewReader(r)}
}

func (u *utf8Units) ReadUnits(p []uint16) (int, error) {
	n := 0
	for n < len(p) {
		if u.pending {
			p[n] = u.low
			u.pending = false
			n++
			continue
		}
		if n > 0 && u.r.Buffered() == 0 {
			return n, nil
		}
		r, _, err := u.r.ReadRune()
		if err != nil {
			return n, err
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			p[n] = uint16(hi)
			u.low = uint16(lo)
			u.pending = true
		} else {
			p[n] = uint16(r)
		}
		n++
	}
	return n, nil
}

type utf16Units struct {
	r     *bufio.Reader
	order binary.ByteOrder
}

// NewUTF16Reader reads raw UTF-16 code units in the given byte order. A
// trailing odd byte is dropped.
func NewUTF16Reader(r io.Reader, order binary.ByteOrder) UnitReader {
	return &utf16Units{r: bufio.NewReader(r), order: order}
}

func (u *utf16Units) ReadUnits(p []uint16) (int, error) {
	var pair [2]byte
	n := 0
	for n < len(p) {
		if n > 0 && u.r.Buffered() < 2 {
			return n, nil
		}
		if _, err := io.ReadFull(u.r, pair[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = io.EOF
			}
			return n, err
		}
		p[n] = u.order.Uint16(pair[:])
		n++
	}
	return n, nil
}

type unitSlice struct {
	units []uint16
}

// NewUnitReader streams an in-memory slice, mainly useful for tests.
func NewUnitReader(units []uint16) UnitReader {
	return &unitSlice{units: units}
}

func (s *unitSlice) ReadUnits(p []uint16) (int, error) {
	if len(s.units) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.units)
	s.units = s.units[n:]
	return n, nil
}

const (
	minBufferUnits = 4096
	maxEmptyReads  = 100
)

// input serves code units by absolute position, either from a haystack held
// in memory or from a refillable window over a UnitReader. Access is
// sequential except for whole-word rewinds, which never go before keep.
type input struct {
	buf  []uint16
	base int
	src  UnitReader
	err  error
	done bool

	// pinned makes refills retain units from keep onwards; otherwise
	// everything before the requested position is discarded.
	pinned bool
	keep   int
}

func memoryInput(haystack []uint16) input {
	return input{buf: haystack, done: true}
}

func streamInput(src UnitReader, maxKeywordLen int) input {
	size := max(minBufferUnits, 2*maxKeywordLen)
	return input{buf: make([]uint16, 0, size), src: src}
}

func (in *input) inMemory() bool {
	return in.src == nil
}

func (in *input) at(i int) (uint16, bool) {
	if j := i - in.base; j < len(in.buf) {
		return in.buf[j], true
	}
	return in.refill(i)
}

func (in *input) refill(i int) (uint16, bool) {
	empty := 0
	for !in.done {
		if j := i - in.base; j < len(in.buf) {
			return in.buf[j], true
		}
		from := i
		if in.pinned {
			from = min(in.keep, i)
		}
		if drop := min(from-in.base, len(in.buf)); drop > 0 {
			n := copy(in.buf, in.buf[drop:])
			in.buf = in.buf[:n]
			in.base += drop
		}
		if len(in.buf) == cap(in.buf) {
			grown := make([]uint16, len(in.buf), 2*cap(in.buf))
			copy(grown, in.buf)
			in.buf = grown
		}
		n, err := in.src.ReadUnits(in.buf[len(in.buf):cap(in.buf)])
		in.buf = in.buf[:len(in.buf)+n]
		switch {
		case err != nil:
			in.done = true
			if !errors.Is(err, io.EOF) {
				in.err = err
			}
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				in.done = true
				in.err = io.ErrNoProgress
			}
		default:
			empty = 0
		}
	}
	if j := i - in.base; j >= 0 && j < len(in.buf) {
		return in.buf[j], true
	}
	return 0, false
}
