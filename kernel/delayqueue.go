package kernel

// delayQueue is the expiry-ordered doubly linked list of TCBs awaiting
// dispatch, addressed by index into the shared tcbPool arena (spec.md §4.3
// and §9's index-arena design note).
type delayQueue struct {
	pool       *tcbPool
	head, tail int32
}

func newDelayQueue(pool *tcbPool) delayQueue {
	return delayQueue{pool: pool, head: tcbNone, tail: tcbNone}
}

// enqueue inserts idx at the unique position keeping expiry ascending
// under wrap-aware comparison. Entries with equal expiry are placed after
// existing entries with the same expiry, preserving FIFO among immediate
// messages (translated from TcbEnqueue in original_source/utask.c).
func (q *delayQueue) enqueue(idx int32) {
	node := q.pool.get(idx)

	if q.head == tcbNone {
		q.head = idx
		q.tail = idx
		node.next = tcbNone
		node.prev = tcbNone
		return
	}

	for cur := q.head; cur != tcbNone; cur = q.pool.get(cur).next {
		curNode := q.pool.get(cur)
		if tickAfter(curNode.expire, node.expire) {
			prev := curNode.prev
			if prev != tcbNone {
				q.pool.get(prev).next = idx
				node.prev = prev
				curNode.prev = idx
				node.next = cur
			} else {
				curNode.prev = idx
				node.next = cur
				node.prev = tcbNone
				q.head = idx
			}
			return
		}
	}

	// Reached the end without finding a later entry: insert at tail.
	tailNode := q.pool.get(q.tail)
	tailNode.next = idx
	node.prev = q.tail
	node.next = tcbNone
	q.tail = idx
}

// front returns the head index without removing it, or tcbNone if empty.
func (q *delayQueue) front() int32 {
	return q.head
}

// dequeue removes and returns the head index, or tcbNone if empty.
func (q *delayQueue) dequeue() int32 {
	idx := q.head
	if idx == tcbNone {
		return tcbNone
	}

	if q.head == q.tail {
		q.head = tcbNone
		q.tail = tcbNone
		return idx
	}

	next := q.pool.get(idx).next
	q.pool.get(next).prev = tcbNone
	q.head = next
	return idx
}

// cancel removes every TCB whose (task, id) pair matches, returning the
// number removed and the payloads of the removed entries. Per the resolved
// open question in spec.md §9, cancellation hands ownership of the
// payloads back to the caller rather than freeing or leaking them.
//
// Must not be called from ISR context.
func (q *delayQueue) cancel(task *Task, id int) (int, [][]byte) {
	var removed [][]byte
	count := 0

	cur := q.head
	for cur != tcbNone {
		node := q.pool.get(cur)
		next := node.next

		if node.task == task && node.id == id {
			q.unlink(cur)
			removed = append(removed, node.payload)
			count++
			q.pool.releaseTCB(cur)
		}

		cur = next
	}

	return count, removed
}

// unlink splices idx out of the queue without touching the free list.
func (q *delayQueue) unlink(idx int32) {
	node := q.pool.get(idx)

	switch {
	case idx == q.head && idx == q.tail:
		q.head = tcbNone
		q.tail = tcbNone
	case idx == q.head:
		q.head = node.next
		q.pool.get(q.head).prev = tcbNone
	case idx == q.tail:
		q.tail = node.prev
		q.pool.get(q.tail).next = tcbNone
	default:
		q.pool.get(node.next).prev = node.prev
		q.pool.get(node.prev).next = node.next
	}
}
