package kernel

import "testing"

func (p *tcbPool) freeListLen() int {
	n := 0
	for idx := p.free; idx != tcbNone; idx = p.arena[idx].next {
		n++
	}
	return n
}

func TestTCBPoolAllocFreeRoundTrip(t *testing.T) {
	p := newTCBPool(4)
	if got := p.freeListLen(); got != 4 {
		t.Fatalf("fresh pool free list length = %d, want 4", got)
	}

	a := p.alloc()
	b := p.alloc()
	if a == tcbNone || b == tcbNone {
		t.Fatal("alloc() returned tcbNone with slots available")
	}
	if got := p.freeListLen(); got != 2 {
		t.Fatalf("free list length after 2 allocs = %d, want 2", got)
	}

	p.releaseTCB(a)
	if got := p.freeListLen(); got != 3 {
		t.Fatalf("free list length after 1 release = %d, want 3", got)
	}

	p.releaseTCB(b)
	if got := p.freeListLen(); got != 4 {
		t.Fatalf("free list length after both released = %d, want 4", got)
	}
}

func TestTCBPoolExhaustion(t *testing.T) {
	p := newTCBPool(1)

	a := p.alloc()
	if a == tcbNone {
		t.Fatal("alloc() #1 = tcbNone, want a slot")
	}
	if b := p.alloc(); b != tcbNone {
		t.Fatalf("alloc() #2 = %d, want tcbNone (pool exhausted)", b)
	}

	p.releaseTCB(a)
	if c := p.alloc(); c == tcbNone {
		t.Fatal("alloc() after release = tcbNone, want a slot")
	}
}

func TestTCBPoolZeroSlots(t *testing.T) {
	p := newTCBPool(0)
	if a := p.alloc(); a != tcbNone {
		t.Fatalf("alloc() on zero-slot pool = %d, want tcbNone", a)
	}
}
