package kernel

// tcbNone is the sentinel "no link" index, standing in for a NULL pointer
// in the original's doubly linked TCB list (spec.md §9: "the `next`/`prev`
// links become index fields rather than raw pointers").
const tcbNone int32 = -1

// origin distinguishes a TCB posted from task context from one promoted
// out of the ISR staging queue (TCB_FLAGS_APP / TCB_FLAGS_ISR in the
// original).
type origin uint8

const (
	originApp origin = iota
	originISR
)

// tcb is one scheduling record: at most one pending delivery. It lives
// either on the free list or in the delay queue, never both, per spec.md
// §3's invariant.
type tcb struct {
	next, prev int32
	origin     origin
	task       *Task
	id         int
	payload    []byte
	expire     uint32
}

// Task is a registered message handler. It is borrowed, never owned or
// freed by the kernel; the application keeps it alive for the process
// lifetime (spec.md §3).
type Task struct {
	Handler Handler
}

// Handler is a task's message callback: invoked synchronously on the main
// dispatch context with the task the message was sent to, the message id,
// and its payload.
type Handler func(task *Task, id int, payload []byte)

// tcbPool is the fixed-capacity arena plus intrusive singly linked free
// list described in spec.md §4.2. alloc/releaseTCB are not internally
// locked: callers racing with the ISR staging queue drain must already
// hold a critical section.
type tcbPool struct {
	arena []tcb
	free  int32
}

func newTCBPool(slots int) tcbPool {
	arena := make([]tcb, slots)
	for i := range arena {
		next := int32(i + 1)
		if i == len(arena)-1 {
			next = tcbNone
		}
		arena[i].next = next
		arena[i].prev = tcbNone
	}
	free := tcbNone
	if slots > 0 {
		free = 0
	}
	return tcbPool{arena: arena, free: free}
}

// alloc pops the head of the free list, returning tcbNone on exhaustion.
func (p *tcbPool) alloc() int32 {
	idx := p.free
	if idx == tcbNone {
		return tcbNone
	}
	p.free = p.arena[idx].next
	p.arena[idx].next = tcbNone
	p.arena[idx].prev = tcbNone
	return idx
}

// releaseTCB pushes idx back onto the head of the free list.
func (p *tcbPool) releaseTCB(idx int32) {
	p.arena[idx].next = p.free
	p.arena[idx].prev = tcbNone
	p.arena[idx].payload = nil
	p.arena[idx].task = nil
	p.free = idx
}

func (p *tcbPool) get(idx int32) *tcb {
	return &p.arena[idx]
}
