package ahocorasick

func (a *Automaton[V]) fold(c uint16) uint16 {
	if a.lower != nil {
		return a.lower[c]
	}
	return c
}

// step consumes c from id, following failure links on a miss.
func (a *Automaton[V]) step(id nodeID, c uint16) nodeID {
	for {
		n := &a.nodes[id]
		if next, ok := n.get(c); ok {
			return next
		}
		if id == rootID {
			return rootID
		}
		id = n.fail
	}
}

// prefilterFor returns the prefilter for one scan, or nil when the input is
// streamed or no prefilter applies.
func (a *Automaton[V]) prefilterFor(in *input) *prefilterScan {
	if a.prefilter == nil || !in.inMemory() {
		return nil
	}
	return &prefilterScan{
		pf:       a.prefilter,
		state:    prefilterState{maxMatchLen: a.stats.MaxKeywordLen},
		haystack: in.buf,
		fold:     a.lower,
	}
}

func (a *Automaton[V]) scanAll(in *input, l Listener[V]) {
	pre := a.prefilterFor(in)
	cur := rootID
	for idx := 0; ; {
		if pre != nil && cur == rootID && pre.state.IsEffective() {
			cand := pre.next(idx)
			if cand == noneCandidate {
				return
			}
			idx = cand
		}
		c, ok := in.at(idx)
		if !ok {
			return
		}
		cur = a.step(cur, a.fold(c))
		idx++
		for id := a.nodes[cur].out; id != noNode; id = a.nodes[id].next {
			m := a.nodes[id].match
			if !l.OnMatch(idx-int(m.length), idx, a.values[m.value]) {
				return
			}
		}
	}
}

// scanLeftmost runs the plain automaton and feeds every candidate into the
// pending queue. A future match ending after idx starts no earlier than
// idx-depth(cur), so queued matches before that bound are final.
func (a *Automaton[V]) scanLeftmost(in *input, l Listener[V]) {
	longest := a.kind == LeftmostLongest
	q := matchQueue{longest: longest}
	pos := 0
	emit := func(p pending) bool {
		pos = p.end
		return l.OnMatch(p.start, p.end, a.values[p.value])
	}

	pre := a.prefilterFor(in)
	cur := rootID
	for idx := 0; ; {
		if pre != nil && cur == rootID && pre.state.IsEffective() {
			cand := pre.next(idx)
			if cand == noneCandidate {
				break
			}
			idx = cand
		}
		c, ok := in.at(idx)
		if !ok {
			break
		}
		cur = a.step(cur, a.fold(c))
		idx++
		for id := a.nodes[cur].out; id != noNode; id = a.nodes[id].next {
			m := a.nodes[id].match
			start := idx - int(m.length)
			if start < pos {
				continue
			}
			if q.push(start, idx, m.value) {
				break
			}
		}
		if !q.flush(idx-int(a.nodes[cur].depth), !longest, emit) {
			return
		}
	}
	q.flushAll(emit)
}
