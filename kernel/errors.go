package kernel

import "errors"

// Sentinel errors returned at the kernel's public API boundary. Check with
// errors.Is; the kernel never wraps these further, so direct equality works
// too, but errors.Is is the idiomatic check.
var (
	// ErrInvalidArgument is returned by Send/SendISR for a nil task or a
	// task with a nil Handler.
	ErrInvalidArgument = errors.New("utaskgo: nil task or handler")

	// ErrTCBExhausted is returned by Send when the TCB free list is empty.
	ErrTCBExhausted = errors.New("utaskgo: tcb pool exhausted")

	// ErrISRQueueFull is returned by SendISR when the staging ring is full.
	ErrISRQueueFull = errors.New("utaskgo: isr staging queue full")

	// ErrNotConstructed is returned by Loop if called on a Kernel value
	// that was not produced by New (spec.md §9's second open question:
	// Construct must precede Loop is a hard precondition here).
	ErrNotConstructed = errors.New("utaskgo: kernel not constructed")
)
