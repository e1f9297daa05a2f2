package ahocorasick

// scanWholeWord tries to match at every word start. The walk keeps taking
// transitions, across non-word units too, until one is missing or the input
// ends. The match to report is then the current node's own match when the
// walk stopped on a boundary, or otherwise the node's fail match. After a
// match the scan resumes at its end; after a failed attempt it resumes at the
// next word start.
func (a *Automaton[V]) scanWholeWord(in *input, l Listener[V]) {
	in.pinned = true
	idx := 0
	for {
		var ok bool
		if idx, ok = a.skip(in, idx, false); !ok {
			return
		}
		start := idx

		cur := rootID
		boundary := true
		for {
			c, ok := in.at(idx)
			if !ok {
				break
			}
			c = a.fold(c)
			if next, ok := a.nodes[cur].get(c); ok {
				cur = next
				idx++
				continue
			}
			boundary = !a.words.IsWord(c)
			break
		}

		n := &a.nodes[cur]
		switch {
		case boundary && n.match.length > 0:
			if !l.OnMatch(idx-int(n.match.length), idx, a.values[n.match.value]) {
				return
			}
			continue
		case n.failMatch.length > 0:
			end := idx - int(n.failMatch.offset)
			if !l.OnMatch(end-int(n.failMatch.length), end, a.values[n.failMatch.value]) {
				return
			}
			idx = end
			continue
		}
		if idx, ok = a.skip(in, start, true); !ok {
			return
		}
	}
}

// skip advances from idx past units whose word membership equals word and
// returns the first position that differs. Stream input before the current
// position is released as it goes; an attempt that fails rewinds only to the
// last position skip stopped at.
func (a *Automaton[V]) skip(in *input, idx int, word bool) (int, bool) {
	for {
		in.keep = idx
		c, ok := in.at(idx)
		if !ok {
			return idx, false
		}
		if a.words.IsWord(a.fold(c)) != word {
			return idx, true
		}
		idx++
	}
}

// scanExact matches the whole input against the keywords.
func (a *Automaton[V]) scanExact(in *input, l Listener[V]) {
	cur := rootID
	idx := 0
	for {
		c, ok := in.at(idx)
		if !ok {
			break
		}
		next, ok := a.nodes[cur].get(a.fold(c))
		if !ok {
			return
		}
		cur = next
		idx++
	}
	if m := a.nodes[cur].match; m.length > 0 {
		l.OnMatch(0, idx, a.values[m.value])
	}
}
