// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arena

import "sync/atomic"

// poolSlots is the fixed pool size named by the concurrency model (section
// 5): a small, bounded slot array, not sized by hardware concurrency,
// since the only sharing this module does is the clip-path freed-pool.
const poolSlots = 4

// BoundedPool is a lock-free, fixed-size free list of *T, modeled on
// cairo-freelist.c's freepool but using atomic compare-and-swap slots
// instead of a non-atomic singly linked list, the way internal/parallel's
// WorkerPool uses atomic.Bool/CompareAndSwap for its running flag. Get and
// Put both degrade to "fall back to the general allocator" on contention
// or when full/empty; correctness never depends on a slot being free.
type BoundedPool[T any] struct {
	slots [poolSlots]atomic.Pointer[T]
}

// Get claims any published slot, returning nil if the pool currently has
// no spare object (the caller must then allocate via new(T)).
func (p *BoundedPool[T]) Get() *T {
	for i := range p.slots {
		if v := p.slots[i].Load(); v != nil {
			if p.slots[i].CompareAndSwap(v, nil) {
				return v
			}
		}
	}
	return nil
}

// Put offers v back to the pool, dropping it silently if every slot is
// occupied -- the pool is a cache, not an owning container.
func (p *BoundedPool[T]) Put(v *T) {
	if v == nil {
		return
	}
	for i := range p.slots {
		if p.slots[i].CompareAndSwap(nil, v) {
			return
		}
	}
}

// Drain empties every slot, releasing cached objects to the garbage
// collector. Grounded on the clip engine's reset_static_data operation.
func (p *BoundedPool[T]) Drain() {
	for i := range p.slots {
		p.slots[i].Store(nil)
	}
}
