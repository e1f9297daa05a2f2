package ahocorasick

type pending struct {
	start, end int
	value      int32
}

// matchQueue holds the greedy non-overlapping selection over the matches seen
// so far, ordered by start. Entries only become final once no future match
// can start at or before them; see flush.
type matchQueue struct {
	items   []pending
	head    int
	longest bool
}

func (q *matchQueue) empty() bool {
	return q.head == len(q.items)
}

// push offers a match whose end is not smaller than any queued end. It
// reports whether the selection now ends with it.
func (q *matchQueue) push(start, end int, value int32) bool {
	live := q.items[q.head:]
	j := len(live)
	for j > 0 && live[j-1].start >= start {
		j--
	}
	if j > 0 && start < live[j-1].end {
		return false
	}
	if j < len(live) && live[j].start == start && !q.longest {
		return false
	}
	q.items = append(q.items[:q.head+j], pending{start: start, end: end, value: value})
	return true
}

// flush hands every entry starting before bound (or at bound when inclusive)
// to emit, in order. It stops and returns false as soon as emit does.
func (q *matchQueue) flush(bound int, inclusive bool, emit func(pending) bool) bool {
	for q.head < len(q.items) {
		p := q.items[q.head]
		if p.start > bound || (p.start == bound && !inclusive) {
			break
		}
		q.head++
		if !emit(p) {
			return false
		}
	}
	if q.empty() {
		q.items = q.items[:0]
		q.head = 0
	}
	return true
}

func (q *matchQueue) flushAll(emit func(pending) bool) bool {
	return q.flush(int(^uint(0)>>1), true, emit)
}
