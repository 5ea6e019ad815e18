package kernel

import "testing"

func TestISRQueueFullAndEmpty(t *testing.T) {
	q := newISRQueue(2) // capacity 2, ring has 3 slots

	if !q.empty() {
		t.Fatal("new queue: empty() = false, want true")
	}

	if !q.tryPush(isrEntry{id: 1}) {
		t.Fatal("tryPush #1 = false, want true")
	}
	if !q.tryPush(isrEntry{id: 2}) {
		t.Fatal("tryPush #2 = false, want true")
	}
	if q.tryPush(isrEntry{id: 3}) {
		t.Fatal("tryPush #3 = true, want false (queue full at capacity 2)")
	}
	if !q.full() {
		t.Fatal("full() = false after filling to capacity, want true")
	}

	e, ok := q.pop()
	if !ok || e.id != 1 {
		t.Fatalf("pop() = (%v, %v), want (id=1, true)", e, ok)
	}

	if !q.tryPush(isrEntry{id: 3}) {
		t.Fatal("tryPush after one pop = false, want true")
	}

	var got []int
	for {
		e, ok := q.pop()
		if !ok {
			break
		}
		got = append(got, e.id)
	}
	want := []int{2, 3}
	if len(got) != len(want) {
		t.Fatalf("drained ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drained ids[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
