// Package kernel implements the uTask scheduling core: a fixed-capacity
// TCB pool, a wrap-aware expiry-ordered delay queue, a bounded ISR staging
// ring, a fixed-block memory pool, and the cooperative dispatch loop that
// glues them together. See SPEC_FULL.md for the full specification this
// package implements.
package kernel

import (
	"sync/atomic"

	"utaskgo/port"
)

// Kernel is the process-wide scheduling singleton (spec.md §9: one value
// whose lifetime is the program; construct exactly one and pass it around
// explicitly rather than reaching for a package-level global).
type Kernel struct {
	port port.Port
	cfg  Config
	diag *Diagnostics

	tick atomic.Uint64 // only the low 32 bits are meaningful; see GetTick

	tcbs  tcbPool
	delay delayQueue
	isr   isrQueue
	pool  pool

	shutdown atomic.Bool
	ready    bool
	idle     func()
}

// New constructs a Kernel: zeros state, initializes the pools and queues,
// and marks it ready for Loop. Idempotent construction is not required
// (spec.md §4.7); call New exactly once per Kernel.
func New(cfg Config, p port.Port, diag *Diagnostics) *Kernel {
	k := &Kernel{
		port:  p,
		cfg:   cfg,
		diag:  diag,
		tcbs:  newTCBPool(cfg.TCBSlots),
		isr:   newISRQueue(cfg.ISRQueueSize),
		pool:  newPool(cfg.PoolClasses, cfg.PoolDebug, diag),
		ready: true,
	}
	k.delay = newDelayQueue(&k.tcbs)
	return k
}

// Shutdown sets the shutdown flag so the next Loop iteration exits.
func (k *Kernel) Shutdown() {
	k.shutdown.Store(true)
}

// SetIdleHook installs a callback Loop invokes whenever an iteration finds
// no work to do (the delay queue is empty or its head has not expired, and
// the ISR queue is empty). On embedded targets this is a WFI/halt
// instruction; the core loop otherwise never sleeps, per spec.md §4.6
// ("the contract permits but does not require it"). Pass nil to disable.
func (k *Kernel) SetIdleHook(fn func()) {
	k.idle = fn
}
