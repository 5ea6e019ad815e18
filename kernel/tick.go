package kernel

// Tick advances the tick count by one. ISR context only; advances the
// counter under a critical section since the increment is not assumed to
// be atomic on every target word size.
func (k *Kernel) Tick() {
	prev := k.port.InterruptDisable()
	k.tick.Add(1)
	k.port.InterruptRestore(prev)
}

// GetTick returns the current tick. Safe from any context: a torn read of
// a monotonically increasing counter still yields a correct after/before
// decision within the half-range assumption, so no critical section is
// needed here (spec.md §4.1).
func (k *Kernel) GetTick() uint32 {
	return uint32(k.tick.Load())
}

// tickAfter reports whether a is strictly after b under wrap-aware signed
// comparison: translated directly from the original's TIME_AFTER(tick,
// timeout) macro with the arguments renamed for clarity here.
func tickAfter(a, b uint32) bool {
	return int32(b-a) < 0
}

// tickBefore reports whether a is strictly before b.
func tickBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// tickAfterEq reports whether a is at or after b.
func tickAfterEq(a, b uint32) bool {
	return int32(a-b) >= 0
}

// tickBeforeEq reports whether a is at or before b.
func tickBeforeEq(a, b uint32) bool {
	return int32(b-a) >= 0
}

// Seconds converts n seconds to ticks using the kernel's configured rate.
func (k *Kernel) Seconds(n uint32) uint32 { return n * k.cfg.TicksPerSec }

// Minutes converts n minutes to ticks using the kernel's configured rate.
func (k *Kernel) Minutes(n uint32) uint32 { return n * 60 * k.cfg.TicksPerSec }

// Hours converts n hours to ticks using the kernel's configured rate.
func (k *Kernel) Hours(n uint32) uint32 { return n * 60 * 60 * k.cfg.TicksPerSec }
