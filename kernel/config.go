package kernel

// PoolClass describes one fixed-block size class of the memory pool: Count
// blocks of Size bytes each. A class with Count 0 is omitted from the pool
// entirely (matching the original's "a class with count 0 is omitted").
type PoolClass struct {
	Count int
	Size  int
}

// Config mirrors the compile-time #define table of the original uTask
// header as a value passed to New, per the builder-at-construction
// recommendation in spec.md §9 ("Global Singleton").
type Config struct {
	// TCBSlots is the size of the TCB pool: the maximum number of
	// outstanding delayed-or-promoted messages.
	TCBSlots int

	// ISRQueueSize is the capacity of the ISR staging ring (one slot is
	// reserved internally and does not count against this capacity).
	ISRQueueSize int

	// TicksPerSec is the nominal tick rate; basis for Seconds/Minutes/Hours.
	TicksPerSec uint32

	// PoolClasses lists up to four size classes for the memory pool. An
	// empty slice elides the pool entirely (equivalent to UTASK_POOL_USE=0
	// or every class's count being zero).
	PoolClasses []PoolClass

	// PoolDebug enables sentinel framing, size recording, and overrun
	// reporting on every pool block.
	PoolDebug bool
}

// DefaultConfig returns the original uTask header's defaults: 32 TCB
// slots, an 8-entry ISR queue, a 1kHz tick, and four pool classes of
// {16x8, 8x16, 4x32, 2x64} bytes, debug mode off.
func DefaultConfig() Config {
	return Config{
		TCBSlots:     32,
		ISRQueueSize: 8,
		TicksPerSec:  1000,
		PoolClasses: []PoolClass{
			{Count: 16, Size: 8},
			{Count: 8, Size: 16},
			{Count: 4, Size: 32},
			{Count: 2, Size: 64},
		},
		PoolDebug: false,
	}
}
