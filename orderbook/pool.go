package orderbook

import (
	"fmt"
	"unsafe"

	"itchbook/internal/xlog"
)

// defaultSlabBytes is the default slab size: 2 MiB of objects per slab,
// matching the object pool's default chunk size.
const defaultSlabBytes = 2 << 20

// Pool is a slab allocator for T: it hands out pointers into internally
// owned slabs, backed by a free list, rather than allocating one object
// at a time. Once handed out, a pointer is stable for the object's
// lifetime — slabs are appended, never reallocated or moved.
type Pool[T any] struct {
	slabs     [][]T
	free      []*T
	slabCount int
	allocated int
}

// NewPool creates a pool whose slabs each hold enough T to fill roughly
// 2 MiB, mirroring the object pool's default chunk size.
func NewPool[T any]() *Pool[T] {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		sz = 1
	}
	n := defaultSlabBytes / sz
	if n < 1 {
		n = 1
	}
	return &Pool[T]{slabCount: n}
}

// Reserve pre-warms the pool with enough slabs to satisfy n outstanding
// allocations without growing mid-replay.
func (p *Pool[T]) Reserve(n int) {
	for len(p.free) < n {
		p.grow()
	}
}

// Alloc returns a zeroed *T from the free list, growing a new slab if
// the free list is empty.
func (p *Pool[T]) Alloc() *T {
	if len(p.free) == 0 {
		p.grow()
	}
	last := len(p.free) - 1
	v := p.free[last]
	p.free = p.free[:last]
	p.allocated++
	return v
}

// Free resets *v to its zero value and returns the slot to the free
// list. Callers must not dereference v after this call.
func (p *Pool[T]) Free(v *T) {
	*v = *new(T)
	p.free = append(p.free, v)
	p.allocated--
}

// NumAllocated reports the number of slots currently handed out.
func (p *Pool[T]) NumAllocated() int { return p.allocated }

// CheckNoLeaks reports outstanding allocations at teardown. Per the
// object pool's contract, this is a reportable programming error, not a
// catastrophic leak check — callers decide how to surface it.
func (p *Pool[T]) CheckNoLeaks() error {
	if p.allocated != 0 {
		return fmt.Errorf("pool: %d objects still allocated at teardown", p.allocated)
	}
	return nil
}

func (p *Pool[T]) grow() {
	slab := make([]T, p.slabCount)
	p.slabs = append(p.slabs, slab)
	for i := range slab {
		p.free = append(p.free, &slab[i])
	}
	if len(p.slabs)%8 == 0 {
		xlog.Infof("pool: grew to %d slabs (%d objects each)", len(p.slabs), p.slabCount)
	}
}
