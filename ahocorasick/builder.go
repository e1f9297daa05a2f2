package ahocorasick

import (
	"fmt"
	"slices"
)

// trieNode is the insertion-time form of a node. The optimizer copies the
// trie into the final arena once every keyword is in.
type trieNode struct {
	children hashTable
	match    match
}

type builder struct {
	kind      MatchKind
	threshold Thresholder
	words     *WordChars

	trie     []trieNode
	maxLen   int
	prefixes startUnitsBuilder
}

func newBuilder(kind MatchKind, threshold Thresholder, words *WordChars) *builder {
	return &builder{
		kind:      kind,
		threshold: threshold,
		words:     words,
		trie:      []trieNode{{}},
	}
}

// insert adds pattern to the trie and returns the index of its final node.
func (b *builder) insert(pattern []uint16) (int, error) {
	cur := 0
	for _, c := range pattern {
		if next, ok := b.trie[cur].children.get(c); ok {
			cur = int(next)
			continue
		}
		next := len(b.trie)
		b.trie = append(b.trie, trieNode{})
		if err := b.trie[cur].children.put(c, nodeID(next)); err != nil {
			return 0, fmt.Errorf("inserting unit %#04x: %w", c, err)
		}
		cur = next
	}
	b.maxLen = max(b.maxLen, len(pattern))
	b.prefixes.add(pattern)
	return cur, nil
}

// compile turns the trie into the final arena: node representations, then
// the links required by the discipline.
func (b *builder) compile() ([]node, Stats, error) {
	nodes, err := b.optimize()
	if err != nil {
		return nil, Stats{}, err
	}
	var stats Stats
	switch {
	case b.kind.usesFailLinks():
		linkFailures(nodes)
		stats.FilledSlots = backfill(nodes)
	case b.kind.wholeWord():
		linkFailMatches(nodes, b.words)
	}
	collectStats(nodes, &stats)
	stats.MaxKeywordLen = b.maxLen
	return nodes, stats, nil
}

// optimize copies the trie breadth-first into a fresh arena. Children get
// their IDs when their parent is visited, so a node's table can be built in
// its final representation straight away and arena order is BFS order.
func (b *builder) optimize() ([]node, error) {
	nodes := make([]node, 1, len(b.trie))
	nodes[0] = node{parent: noNode, fail: noNode, out: noNode, next: noNode}
	source := make([]int, 1, len(b.trie))

	for id := 0; id < len(nodes); id++ {
		t := &b.trie[source[id]]
		edges := t.children.edges()
		if b.kind == LeftmostShortest && t.match.length > 0 {
			// Nothing past a match can be the shortest leftmost match.
			edges = nil
		}
		depth := nodes[id].depth
		for i, e := range edges {
			child := nodeID(len(nodes))
			nodes = append(nodes, node{
				parent: nodeID(id),
				key:    e.key,
				depth:  depth + 1,
				fail:   noNode,
				match:  b.trie[e.child].match,
				out:    noNode,
				next:   noNode,
			})
			source = append(source, int(e.child))
			edges[i].child = child
		}

		n := &nodes[id]
		interval := 0
		if len(edges) > 0 {
			interval = int(edges[len(edges)-1].key) - int(edges[0].key) + 1
		}
		if b.threshold.Dense(len(edges), int(depth), interval) {
			n.rep = rangeRep
			n.rng = newRangeTable(edges)
			continue
		}
		n.rep = hashRep
		for _, e := range edges {
			if err := n.hash.put(e.key, e.child); err != nil {
				return nil, fmt.Errorf("building node %d: %w", id, err)
			}
		}
	}
	return nodes, nil
}

// linkFailures computes failure transitions and output chains. Arena order
// is breadth-first, so a node's parent and every node on its parent's
// failure chain are final by the time it is visited.
func linkFailures(nodes []node) {
	for id := 1; id < len(nodes); id++ {
		n := &nodes[id]
		if n.parent == rootID {
			n.fail = rootID
		} else {
			f := nodes[n.parent].fail
			for {
				if next, ok := nodes[f].get(n.key); ok {
					n.fail = next
					break
				}
				if f == rootID {
					n.fail = rootID
					break
				}
				f = nodes[f].fail
			}
		}
		if n.match.length > 0 {
			n.out = nodeID(id)
			n.next = nodes[n.fail].out
		} else {
			n.out = nodes[n.fail].out
		}
	}
}

// backfill points every empty range slot at the transition the failure chain
// would eventually take, so scanning never retries on a range node.
func backfill(nodes []node) int {
	filled := 0
	for id := range nodes {
		n := &nodes[id]
		if n.rep != rangeRep {
			continue
		}
		for i, child := range n.rng.children {
			if child != noNode {
				continue
			}
			if nodeID(id) == rootID {
				n.rng.children[i] = rootID
			} else {
				n.rng.children[i] = transition(nodes, n.fail, n.rng.base+uint16(i))
			}
			filled++
		}
	}
	return filled
}

// transition follows failure links from id until some node accepts c. The
// root accepts everything by looping to itself.
func transition(nodes []node, id nodeID, c uint16) nodeID {
	for {
		if next, ok := nodes[id].get(c); ok {
			return next
		}
		if id == rootID {
			return rootID
		}
		id = nodes[id].fail
	}
}

func linkFailMatches(nodes []node, words *WordChars) {
	for id := 1; id < len(nodes); id++ {
		n := &nodes[id]
		p := &nodes[n.parent]
		switch {
		case p.match.length > 0 && !words.IsWord(n.key):
			n.failMatch = failMatch{length: p.match.length, offset: 1, value: p.match.value}
		case p.failMatch.length > 0:
			n.failMatch = p.failMatch
			n.failMatch.offset++
		}
	}
}

// children calls fn for every real trie edge of id in key order, skipping
// back-filled slots.
func children(nodes []node, id nodeID, fn func(key uint16, child nodeID)) {
	n := &nodes[id]
	if n.rep == hashRep {
		for _, e := range n.hash.edges() {
			fn(e.key, e.child)
		}
		return
	}
	for i, child := range n.rng.children {
		key := n.rng.base + uint16(i)
		if child != noNode && child != id && nodes[child].isChild(id, key) {
			fn(key, child)
		}
	}
}

func collectStats(nodes []node, s *Stats) {
	s.Nodes = len(nodes)
	for id := range nodes {
		n := &nodes[id]
		s.MaxDepth = max(s.MaxDepth, int(n.depth))
		if n.rep == rangeRep {
			s.RangeNodes++
			s.RangeSlots += len(n.rng.children)
			continue
		}
		s.HashNodes++
		s.HashSlots += len(n.hash.children)
	}
}

// patterns lists the keywords stored in the arena in code unit order.
func patterns(nodes []node) [][]uint16 {
	var out [][]uint16
	var walk func(id nodeID, path []uint16)
	walk = func(id nodeID, path []uint16) {
		if nodes[id].match.length > 0 {
			out = append(out, slices.Clone(path))
		}
		children(nodes, id, func(key uint16, child nodeID) {
			walk(child, append(path, key))
		})
	}
	walk(rootID, nil)
	return out
}
