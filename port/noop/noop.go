// Package noop provides a trivial port.Port for single-goroutine embedding
// and unit tests where no real concurrent ISR exists.
package noop

import "sync/atomic"

// Port is a port.Port that tracks nesting depth but never actually masks
// anything. Safe to use only when the caller has no concurrent producer
// (e.g. pure unit tests that never spawn a goroutine to race the kernel).
type Port struct {
	depth atomic.Uint32
}

// InterruptDisable increments the nesting depth and returns the depth prior
// to this call.
func (p *Port) InterruptDisable() uint32 {
	return p.depth.Add(1) - 1
}

// InterruptRestore sets the nesting depth back to the given token.
func (p *Port) InterruptRestore(prev uint32) {
	p.depth.Store(prev)
}
