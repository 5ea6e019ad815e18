// Package hostport provides a host-simulation port.Port plus a driver that
// steps the kernel's tick counter and injects ISR-posted messages from real
// goroutines, standing in for the timer ISR and driver ISRs a real embedded
// target would provide. Grounded on QubicOS-Spark/hal/host_time.go's
// time.Ticker-driven tick stepping.
package hostport

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Port is a mutex-based port.Port: the host-side stand-in for "mask
// interrupts" is a real lock, since the simulated ISR runs on its own
// goroutine rather than preempting the main goroutine directly. It does
// not support same-goroutine nested acquisition (a plain Mutex can't);
// the kernel never nests critical sections, so this is not a restriction
// in practice.
type Port struct {
	mu sync.Mutex
}

// InterruptDisable acquires the lock. The returned token is unused by this
// implementation (there is nothing to restore beyond "unlocked").
func (p *Port) InterruptDisable() uint32 {
	p.mu.Lock()
	return 0
}

// InterruptRestore releases the lock.
func (p *Port) InterruptRestore(prev uint32) {
	_ = prev
	p.mu.Unlock()
}

// Driver steps a Kernel's tick counter on a real timer and lets the caller
// inject simulated ISR work concurrently, under one errgroup.Group so
// Run's caller can start/stop the whole simulation as a unit and observe
// the first error (golang.org/x/sync/errgroup, promoted here from the
// teacher's indirect dependency on it via ebiten).
type Driver struct {
	tickEvery time.Duration
	onTick    func()
}

// NewDriver creates a Driver that calls onTick once per tickEvery.
func NewDriver(tickEvery time.Duration, onTick func()) *Driver {
	return &Driver{tickEvery: tickEvery, onTick: onTick}
}

// Run starts the tick goroutine and any extra simulated-ISR goroutines,
// blocking until ctx is cancelled or one of them returns an error.
func (d *Driver) Run(ctx context.Context, isrs ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t := time.NewTicker(d.tickEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				d.onTick()
			}
		}
	})

	for _, isr := range isrs {
		isr := isr
		g.Go(func() error { return isr(ctx) })
	}

	return g.Wait()
}
