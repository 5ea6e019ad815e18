package kernel

import "utaskgo/port"

// criticalSection is a scoped interrupt-disable/restore guard over a
// port.Port, replacing the source's manual save/restore pairs (spec.md §9).
// Enter with enterCritical and defer exit so every exit path, including
// early returns, restores the prior state.
type criticalSection struct {
	p    port.Port
	prev uint32
}

func enterCritical(p port.Port) criticalSection {
	return criticalSection{p: p, prev: p.InterruptDisable()}
}

func (cs criticalSection) exit() {
	cs.p.InterruptRestore(cs.prev)
}
