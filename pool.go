// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import "sync"

// SharedPool recycles Shared cells.
//
// A cell returns to its pool once both its strong and weak references are
// gone. Its fields are zeroed on release, so a word still decoding to a
// recycled cell is a use after free.
type SharedPool[T any] struct {
	pool sync.Pool
	drop func(*T)
}

// NewSharedPool returns a pool whose cells run drop, if non-nil, when their
// last strong reference is released.
func NewSharedPool[T any](drop func(*T)) *SharedPool[T] {
	p := &SharedPool[T]{drop: drop}
	p.pool.New = func() any { return new(Shared[T]) }
	return p
}

// New acquires a cell holding v with one strong reference.
func (p *SharedPool[T]) New(v T) *Shared[T] {
	s := p.pool.Get().(*Shared[T])
	s.pool = p
	s.drop = p.drop
	s.value = v
	s.state.Store(initialState)
	return s
}

// put zeroes s and returns it to the pool.
func (p *SharedPool[T]) put(s *Shared[T]) {
	var zero T
	s.value = zero
	s.pool = nil
	s.drop = nil
	p.pool.Put(s)
}
