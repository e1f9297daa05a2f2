package ahocorasick

import "slices"

// nodeID addresses a node in the automaton arena.
type nodeID uint32

const (
	rootID nodeID = 0
	noNode nodeID = ^nodeID(0)
)

// FNV-1a over the two bytes of a code unit, high byte first.
const (
	hashBasis uint32 = 0x811c9dc5
	hashPrime uint32 = 16777619

	// A table this large holds every code unit, so it never grows further.
	maxHashCapacity = 1 << 16
)

func hashUnit(c uint16) uint32 {
	return ((hashBasis^uint32(c>>8))*hashPrime ^ uint32(c&0xff)) * hashPrime
}

// hashTable is an open-addressing map from code unit to child, using linear
// probing over a power-of-two number of slots. A slot is empty when its child
// is noNode.
type hashTable struct {
	keys     []uint16
	children []nodeID
	count    int
}

func (h *hashTable) get(c uint16) (nodeID, bool) {
	n := len(h.children)
	if n == 0 {
		return noNode, false
	}
	mask := uint32(n - 1)
	start := hashUnit(c) & mask
	slot := start
	for {
		child := h.children[slot]
		if child == noNode {
			return noNode, false
		}
		if h.keys[slot] == c {
			return child, true
		}
		slot = (slot + 1) & mask
		if slot == start {
			return noNode, false
		}
	}
}

func (h *hashTable) needsGrow() bool {
	n := len(h.children)
	if n >= maxHashCapacity {
		return false
	}
	return h.count >= n || (h.count > 16 && float64(h.count) >= float64(n)*0.9)
}

// put maps c to child, replacing any existing entry for c.
func (h *hashTable) put(c uint16, child nodeID) error {
	if h.needsGrow() {
		if err := h.grow(); err != nil {
			return err
		}
	}
	return h.insert(c, child)
}

func (h *hashTable) insert(c uint16, child nodeID) error {
	mask := uint32(len(h.children) - 1)
	start := hashUnit(c) & mask
	slot := start
	for {
		switch {
		case h.children[slot] == noNode:
			h.keys[slot] = c
			h.children[slot] = child
			h.count++
			return nil
		case h.keys[slot] == c:
			h.children[slot] = child
			return nil
		}
		slot = (slot + 1) & mask
		if slot == start {
			return ErrCapacityExceeded
		}
	}
}

func (h *hashTable) grow() error {
	size := max(1, 2*len(h.children))
	oldKeys, oldChildren := h.keys, h.children
	h.keys = make([]uint16, size)
	h.children = make([]nodeID, size)
	for i := range h.children {
		h.children[i] = noNode
	}
	h.count = 0
	for i, child := range oldChildren {
		if child == noNode {
			continue
		}
		if err := h.insert(oldKeys[i], child); err != nil {
			return err
		}
	}
	return nil
}

type edge struct {
	key   uint16
	child nodeID
}

// edges returns the occupied entries ordered by key.
func (h *hashTable) edges() []edge {
	if h.count == 0 {
		return nil
	}
	out := make([]edge, 0, h.count)
	for i, child := range h.children {
		if child != noNode {
			out = append(out, edge{key: h.keys[i], child: child})
		}
	}
	slices.SortFunc(out, func(a, b edge) int { return int(a.key) - int(b.key) })
	return out
}

// rangeTable is a dense child array covering [base, base+len(children)).
type rangeTable struct {
	base     uint16
	children []nodeID
}

func newRangeTable(edges []edge) rangeTable {
	if len(edges) == 0 {
		return rangeTable{}
	}
	lo, hi := edges[0].key, edges[len(edges)-1].key
	r := rangeTable{base: lo, children: make([]nodeID, int(hi)-int(lo)+1)}
	for i := range r.children {
		r.children[i] = noNode
	}
	for _, e := range edges {
		r.children[e.key-lo] = e.child
	}
	return r
}

func (r *rangeTable) get(c uint16) (nodeID, bool) {
	i := int(c - r.base)
	if i < len(r.children) {
		id := r.children[i]
		return id, id != noNode
	}
	return noNode, false
}

type representation uint8

const (
	hashRep representation = iota
	rangeRep
)

func (r representation) String() string {
	if r == rangeRep {
		return "range"
	}
	return "hash"
}

// match is a keyword ending at a node. A zero length means none.
type match struct {
	length int32
	value  int32
}

// failMatch is the longest match on the path to a node that was followed by
// a non-word unit. It ended offset units before the node.
type failMatch struct {
	length int32
	offset int32
	value  int32
}

type node struct {
	rep  representation
	hash hashTable
	rng  rangeTable

	parent nodeID
	key    uint16
	depth  int32
	fail   nodeID

	match match
	// out is the first node on the failure chain (self included) that owns a
	// match; next continues the chain from an owning node.
	out  nodeID
	next nodeID

	failMatch failMatch
}

func (n *node) get(c uint16) (nodeID, bool) {
	if n.rep == rangeRep {
		return n.rng.get(c)
	}
	return n.hash.get(c)
}

// isChild reports whether id is a real trie edge of parent under key, as
// opposed to a back-filled transition.
func (n *node) isChild(parent nodeID, key uint16) bool {
	return n.parent == parent && n.key == key
}
