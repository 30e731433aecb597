package graph

// visit is one pending BFS frontier entry: an entity id and the depth at
// which it was discovered.
type visit struct {
	id    string
	depth int
}

// visitQueue is a plain FIFO queue for BFS walks.
//
// The queue is deliberately explicit rather than an ad hoc slice shuffle at
// each call site: the "mark visited at dequeue, not at enqueue" ordering that
// the graph queries rely on is only legible when enqueue and dequeue are
// named operations.
type visitQueue struct {
	items []visit
}

// newVisitQueue creates a queue seeded with a single starting entry.
func newVisitQueue(id string, depth int) *visitQueue {
	q := &visitQueue{items: make([]visit, 0, 16)}
	q.push(visit{id: id, depth: depth})
	return q
}

// push appends an entry to the back of the queue.
func (q *visitQueue) push(v visit) {
	q.items = append(q.items, v)
}

// pop removes and returns the front entry. The second return is false when
// the queue is empty.
func (q *visitQueue) pop() (visit, bool) {
	if len(q.items) == 0 {
		return visit{}, false
	}
	v := q.items[0]
	if len(q.items) == 1 {
		// Last element — reset to empty while keeping capacity.
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}
	return v, true
}

// len returns the number of pending entries.
func (q *visitQueue) len() int {
	return len(q.items)
}
