// Package port defines the platform primitives the kernel depends on but
// does not implement itself: interrupt masking (or its host-side analogue)
// and nothing else. Everything the kernel needs from the outside world
// flows through this single two-method interface.
package port

// Port masks and restores interrupts (or acquires/releases the system-wide
// lock on a uniprocessor bare-metal target). Implementations must support
// nested acquisition: InterruptRestore always restores the token returned
// by the matching InterruptDisable call, regardless of intervening calls.
type Port interface {
	// InterruptDisable masks interrupts and returns an opaque token
	// describing the prior state.
	InterruptDisable() uint32

	// InterruptRestore restores the state described by a token previously
	// returned by InterruptDisable.
	InterruptRestore(prev uint32)
}
