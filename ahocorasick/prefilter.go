package ahocorasick

import "slices"

// startUnits is a prefilter for keyword sets whose first units fall into a
// set of at most three distinct (folded) code units.
type startUnits struct {
	units [3]uint16
	count int
}

func (s *startUnits) nextCandidate(haystack []uint16, at int, fold *foldTable) int {
	want := s.units[:s.count]
	if fold == nil {
		for i, c := range haystack[at:] {
			if slices.Contains(want, c) {
				return at + i
			}
		}
		return noneCandidate
	}
	for i, c := range haystack[at:] {
		if slices.Contains(want, fold[c]) {
			return at + i
		}
	}
	return noneCandidate
}

type startUnitsBuilder struct {
	units []uint16
	// overflow is set once more than three distinct units were seen.
	overflow bool
}

func (b *startUnitsBuilder) add(pattern []uint16) {
	if b.overflow || len(pattern) == 0 {
		return
	}
	c := pattern[0]
	if slices.Contains(b.units, c) {
		return
	}
	if len(b.units) == 3 {
		b.overflow = true
		b.units = nil
		return
	}
	b.units = append(b.units, c)
}

func (b *startUnitsBuilder) build() *startUnits {
	if b.overflow || len(b.units) == 0 {
		return nil
	}
	s := &startUnits{count: len(b.units)}
	copy(s.units[:], b.units)
	return s
}

const (
	minSkips     int = 40
	minAvgFactor int = 2
)

// prefilterState tracks whether jumping ahead still pays off during one scan.
// After minSkips jumps the prefilter retires itself unless it skipped at least
// minAvgFactor*maxMatchLen units per jump on average.
type prefilterState struct {
	skips       int
	skipped     int
	maxMatchLen int
	inert       bool
}

func (p *prefilterState) IsEffective() bool {
	if p.inert {
		return false
	}
	if p.skips < minSkips {
		return true
	}
	minAvg := minAvgFactor * p.maxMatchLen
	if p.skipped >= minAvg*p.skips {
		return true
	}
	p.inert = true
	return false
}

func (p *prefilterState) updateSkipped(skipped int) {
	p.skips += 1
	p.skipped += skipped
}

const noneCandidate = -1

// prefilterScan couples a prefilter with the haystack of one in-memory scan.
type prefilterScan struct {
	pf       *startUnits
	state    prefilterState
	haystack []uint16
	fold     *foldTable
}

// next returns the first candidate position at or after at, or noneCandidate.
func (p *prefilterScan) next(at int) int {
	cand := p.pf.nextCandidate(p.haystack, at, p.fold)
	if cand < 0 {
		p.state.updateSkipped(len(p.haystack) - at)
	} else {
		p.state.updateSkipped(cand - at)
	}
	return cand
}
