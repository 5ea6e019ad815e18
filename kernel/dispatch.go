package kernel

import "context"

// Send enqueues a message for delivery at now+delay ticks. Task context
// only. Fails with ErrInvalidArgument on a nil task or handler, or
// ErrTCBExhausted if the TCB free list is empty.
func (k *Kernel) Send(task *Task, id int, payload []byte, delay uint32) error {
	if task == nil || task.Handler == nil {
		return ErrInvalidArgument
	}

	cs := enterCritical(k.port)
	defer cs.exit()

	idx := k.tcbs.alloc()
	if idx == tcbNone {
		return ErrTCBExhausted
	}

	t := k.tcbs.get(idx)
	t.origin = originApp
	t.task = task
	t.id = id
	t.payload = payload
	t.expire = delay + k.GetTick()

	k.delay.enqueue(idx)
	return nil
}

// SendISR stages a message for promotion on the next dispatch loop
// iteration. ISR context only. Fails with ErrInvalidArgument on a nil task
// or handler, or ErrISRQueueFull if the staging ring is full.
//
// ISR-posted messages carry expire = current tick, so they become eligible
// on the first loop iteration that observes them (spec.md §4.4).
func (k *Kernel) SendISR(task *Task, id int, payload []byte) error {
	if task == nil || task.Handler == nil {
		return ErrInvalidArgument
	}

	e := isrEntry{task: task, id: id, payload: payload, expire: k.GetTick()}
	if !k.isr.tryPush(e) {
		return ErrISRQueueFull
	}
	return nil
}

// Cancel removes every delayed entry matching (task, id) and returns the
// count removed along with their payloads (see SPEC_FULL.md's resolution
// of spec.md §9's ownership open question). It never touches the ISR
// staging queue and must not be called from ISR context.
func (k *Kernel) Cancel(task *Task, id int) (int, [][]byte) {
	cs := enterCritical(k.port)
	defer cs.exit()

	return k.delay.cancel(task, id)
}

// Alloc allocates a size-byte block from the memory pool under a critical
// section. Returns nil on exhaustion or if size fits no configured class.
func (k *Kernel) Alloc(size int) []byte {
	cs := enterCritical(k.port)
	defer cs.exit()

	return k.pool.alloc(size)
}

// Free returns a block to the memory pool under a critical section. nil
// and foreign pointers (not backed by this kernel's arena) are a silent
// no-op.
func (k *Kernel) Free(p []byte) {
	cs := enterCritical(k.port)
	defer cs.exit()

	k.pool.free(p)
}

// promote drains at most one staged ISR entry into the delay queue. One
// promotion per iteration is sufficient; Loop revisits on the next pass.
// If TCB allocation fails, the staged entry is left in place for retry.
// Reports whether an entry was promoted.
func (k *Kernel) promote() bool {
	cs := enterCritical(k.port)
	defer cs.exit()

	if k.isr.empty() {
		return false
	}

	idx := k.tcbs.alloc()
	if idx == tcbNone {
		return false
	}

	e, ok := k.isr.pop()
	if !ok {
		k.tcbs.releaseTCB(idx)
		return false
	}

	t := k.tcbs.get(idx)
	t.origin = originISR
	t.task = e.task
	t.id = e.id
	t.payload = e.payload
	t.expire = e.expire

	k.delay.enqueue(idx)
	return true
}

// Step runs a single dispatch iteration: promote one staged ISR entry if
// present, then deliver the delay queue's head if it has expired. Returns
// true if any work happened (a promotion or a delivery).
func (k *Kernel) Step() bool {
	promoted := k.promote()

	cs := enterCritical(k.port)
	idx := k.delay.front()
	if idx == tcbNone {
		cs.exit()
		return promoted
	}

	t := k.tcbs.get(idx)
	now := k.GetTick()
	if !tickAfterEq(now, t.expire) {
		cs.exit()
		return promoted
	}

	k.delay.dequeue()
	task, id, payload, expire, src := t.task, t.id, t.payload, t.expire, t.origin
	k.tcbs.releaseTCB(idx)
	cs.exit()

	task.Handler(task, id, payload)
	k.diag.trace(task, id, src, now-expire)
	k.Free(payload)

	return true
}

// Loop runs the dispatch loop of spec.md §4.6 until either Shutdown is
// called or ctx is cancelled. Returns ErrNotConstructed if called on a
// Kernel value that was not produced by New (spec.md §9's second open
// question: Construct must precede Loop is a hard precondition here).
func (k *Kernel) Loop(ctx context.Context) error {
	if !k.ready {
		return ErrNotConstructed
	}

	for {
		if k.shutdown.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !k.Step() && k.idle != nil {
			k.idle()
		}
	}
}
