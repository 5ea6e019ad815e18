package kernel

import "unsafe"

const (
	poolSigBeg   = 0xDEAD
	poolSigEnd   = 0xFFED
	poolSigEmpty = 0xEE
)

// Debug-mode block framing: [recorded-size:4][begin-sig:2][payload][end-sig:2]
// (original_source/utask.c's UTASK_POOL_SIG_SIZE layout).
const (
	poolHeaderSize    = 4 + 2 // bytes before the payload
	poolTrailerSize   = 2     // bytes after the payload
	poolDebugOverhead = poolHeaderSize + poolTrailerSize
)

// poolClassState is one size class's free list plus the byte range of its
// region within the backing arena.
type poolClassState struct {
	size     int // requested-size ceiling for this class
	blockLen int // actual stride in the backing arena (includes debug framing)
	begin    int // offset of this class's region within the arena
	end      int // one past the last byte of this class's region
	free     []int
}

// pool is the fixed-block multi-class slab allocator of spec.md §4.5.
type pool struct {
	arena    []byte
	arenaPtr uintptr
	classes  []poolClassState
	debug    bool
	diag     *Diagnostics
}

func newPool(classes []PoolClass, debug bool, diag *Diagnostics) pool {
	// Sort ascending by size. n <= 4 in practice, so a plain insertion
	// sort reads clearly and is in the same complexity class as the
	// original's bubble sort.
	sorted := make([]PoolClass, len(classes))
	copy(sorted, classes)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Size > sorted[j].Size; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	overhead := 0
	if debug {
		overhead = poolDebugOverhead
	}

	// Sum every enabled class's region unconditionally: the original has
	// a copy-paste defect gating one class's term behind the wrong class's
	// count (spec.md §9); this reimplementation has no such branch.
	blockLens := make([]int, len(sorted))
	total := 0
	for i, c := range sorted {
		if c.Count == 0 {
			continue
		}
		blockLens[i] = c.Size + overhead
		total += c.Count * blockLens[i]
	}

	arena := make([]byte, total)
	var arenaPtr uintptr
	if total > 0 {
		arenaPtr = uintptr(unsafe.Pointer(&arena[0]))
	}

	classStates := make([]poolClassState, 0, len(sorted))
	offset := 0
	for i, c := range sorted {
		if c.Count == 0 {
			continue
		}
		blockLen := blockLens[i]
		cs := poolClassState{size: c.Size, blockLen: blockLen, begin: offset}
		cs.free = make([]int, 0, c.Count)
		for j := 0; j < c.Count; j++ {
			cs.free = append(cs.free, offset)
			offset += blockLen
		}
		cs.end = offset
		classStates = append(classStates, cs)
	}

	return pool{arena: arena, arenaPtr: arenaPtr, classes: classStates, debug: debug, diag: diag}
}

// alloc returns a size-byte slice from the first class whose block size is
// >= size and whose free list is non-empty, or nil on exhaustion or if no
// class fits (spec.md §4.5). The returned slice is backed by the pool
// arena and must be released via free, not left to the garbage collector.
func (p *pool) alloc(size int) []byte {
	for i := range p.classes {
		cs := &p.classes[i]
		if size > cs.size {
			continue
		}
		if len(cs.free) == 0 {
			continue
		}
		blockOff := cs.free[len(cs.free)-1]
		cs.free = cs.free[:len(cs.free)-1]

		payloadOff := blockOff
		if p.debug {
			payloadOff += poolHeaderSize
		}
		payload := p.arena[payloadOff : payloadOff+size : payloadOff+cs.size]

		if p.debug {
			p.writeFrame(blockOff, cs, size)
		}
		return payload
	}
	return nil
}

// free returns a payload slice to its owning class's free list. Pointers
// outside the arena are a silent no-op: this is the property the ISR send
// path relies on when the payload did not originate from the pool
// (spec.md §4.5, §3 Ownership).
func (p *pool) free(payload []byte) {
	off, ok := p.arenaOffset(payload)
	if !ok {
		return
	}

	for i := range p.classes {
		cs := &p.classes[i]
		if off < cs.begin || off >= cs.end {
			continue
		}
		base := cs.begin + ((off-cs.begin)/cs.blockLen)*cs.blockLen

		if p.debug {
			p.checkFrame(base, cs)
		}

		cs.free = append(cs.free, base)
		return
	}
}

// arenaOffset reports whether payload is backed by the pool's arena and,
// if so, the byte offset of its containing block header. Address-range
// comparison (via uintptr) is the Go analogue of the original's raw
// pointer-range check.
func (p *pool) arenaOffset(payload []byte) (int, bool) {
	if len(payload) == 0 || len(p.arena) == 0 {
		return 0, false
	}
	ptr := uintptr(unsafe.Pointer(&payload[0]))
	if ptr < p.arenaPtr || ptr >= p.arenaPtr+uintptr(len(p.arena)) {
		return 0, false
	}
	off := int(ptr - p.arenaPtr)
	if p.debug {
		off -= poolHeaderSize
	}
	return off, true
}

func (p *pool) writeFrame(blockOff int, cs *poolClassState, size int) {
	b := p.arena[blockOff : blockOff+cs.blockLen]
	putU32(b[0:4], uint32(size))
	putU16(b[4:6], poolSigBeg)
	payload := b[poolHeaderSize : poolHeaderSize+cs.size]
	for i := range payload {
		payload[i] = poolSigEmpty
	}
	putU16(b[poolHeaderSize+size:poolHeaderSize+size+2], poolSigEnd)
}

func (p *pool) checkFrame(blockOff int, cs *poolClassState) {
	b := p.arena[blockOff : blockOff+cs.blockLen]
	size := getU32(b[0:4])
	beg := getU16(b[4:6])

	if int(size) > cs.size {
		p.diag.Warnf("pool block %d size %d out of range (class size %d)", blockOff, size, cs.size)
		size = uint32(cs.size)
	}
	if beg != poolSigBeg {
		p.diag.Warnf("pool block %d beginning signature overwrite", blockOff)
	}
	end := getU16(b[poolHeaderSize+int(size) : poolHeaderSize+int(size)+2])
	if end != poolSigEnd {
		p.diag.Warnf("pool block %d ending signature overwrite", blockOff)
	}
}

func putU16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func getU16(b []byte) uint16    { return uint16(b[0]) | uint16(b[1])<<8 }
func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
func getU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
