// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import (
	"sync/atomic"
	"unsafe"
)

// Reference counts of a Shared cell, packed in one atomic word:
// strong references in the low half, weak references in the high half.
// While any strong reference exists the strong side collectively holds one
// implicit weak reference, so the cell is recycled only after its value has
// been dropped.
const (
	strongOne    = uint64(1)
	weakOne      = uint64(1) << 32
	strongMask   = weakOne - 1
	initialState = strongOne | weakOne
)

// Shared is a reference-counted cell holding a T.
//
// The value is dropped when the last strong reference is released: the
// drop function, if any, runs exactly once and the value is zeroed. Weak
// references keep the cell, not the value.
type Shared[T any] struct {
	state atomic.Uint64
	pool  *SharedPool[T]
	drop  func(*T)
	value T
}

// NewShared returns a cell holding v with one strong reference.
func NewShared[T any](v T) *Shared[T] {
	return NewSharedFunc(v, nil)
}

// NewSharedFunc returns a cell holding v with one strong reference.
// drop runs once when the last strong reference is released.
func NewSharedFunc[T any](v T, drop func(*T)) *Shared[T] {
	s := &Shared[T]{drop: drop, value: v}
	s.state.Store(initialState)
	return s
}

// Value returns a pointer to the shared value.
// It is valid while the caller holds a strong reference.
func (s *Shared[T]) Value() *T {
	return &s.value
}

// Retain adds a strong reference and returns s.
func (s *Shared[T]) Retain() *Shared[T] {
	s.state.Add(strongOne)
	return s
}

// Release gives back one strong reference.
func (s *Shared[T]) Release() {
	n := s.state.Add(^(strongOne - 1))
	if n&strongMask != 0 {
		return
	}
	if s.drop != nil {
		s.drop(&s.value)
	}
	var zero T
	s.value = zero
	s.releaseWeak()
}

// Downgrade returns a new weak reference to s.
// The caller must hold a strong reference.
func (s *Shared[T]) Downgrade() Weak[T] {
	s.state.Add(weakOne)
	return Weak[T]{s: s}
}

// StrongCount returns the number of strong references.
func (s *Shared[T]) StrongCount() int {
	return int(s.state.Load() & strongMask)
}

// WeakCount returns the number of weak references handed out by Downgrade
// and Weak.Clone that have not been released.
func (s *Shared[T]) WeakCount() int {
	n := s.state.Load()
	weak := int(n >> 32)
	if n&strongMask != 0 {
		weak--
	}
	return weak
}

func (s *Shared[T]) releaseWeak() {
	if s.state.Add(^(weakOne - 1)) == 0 && s.pool != nil {
		s.pool.put(s)
	}
}

// Weak is a non-owning reference to a Shared cell.
// The zero Weak refers to nothing and never upgrades.
type Weak[T any] struct {
	s *Shared[T]
}

// Upgrade returns a new strong reference if the value is still alive.
func (w Weak[T]) Upgrade() (*Shared[T], bool) {
	if w.s == nil {
		return nil, false
	}
	for {
		n := w.s.state.Load()
		if n&strongMask == 0 {
			return nil, false
		}
		if w.s.state.CompareAndSwap(n, n+strongOne) {
			return w.s, true
		}
	}
}

// Clone returns another weak reference to the same cell.
func (w Weak[T]) Clone() Weak[T] {
	if w.s != nil {
		w.s.state.Add(weakOne)
	}
	return w
}

// Release gives back this weak reference.
func (w Weak[T]) Release() {
	if w.s != nil {
		w.s.releaseWeak()
	}
}

// Rc encodes a strong reference to a Shared cell.
// Cloning retains; releasing drops one strong reference.
type Rc[T any] struct{}

func (Rc[T]) Encode(s *Shared[T]) Word {
	assert(s != nil, "Rc: nil cell")
	return Word{p: unsafe.Pointer(s)}
}

func (Rc[T]) Decode(w Word) Borrowed[*Shared[T]] {
	assert(!w.IsNull(), "Rc: null word")
	assert(w.IsAlignedTo(alignOf[Shared[T]]()), "Rc: misaligned word")
	return Borrow((*Shared[T])(w.p))
}

func (Rc[T]) NonNull() bool                 { return true }
func (Rc[T]) Alignment() uintptr            { return alignOf[Shared[T]]() }
func (Rc[T]) CloneInPlace() bool            { return true }
func (Rc[T]) Clone(s *Shared[T]) *Shared[T] { return s.Retain() }
func (Rc[T]) Release(s *Shared[T])          { s.Release() }

// WeakRc encodes a weak reference to a Shared cell. The zero Weak encodes
// to the zero word.
type WeakRc[T any] struct{}

func (WeakRc[T]) Encode(w Weak[T]) Word {
	return Word{p: unsafe.Pointer(w.s)}
}

func (WeakRc[T]) Decode(w Word) Borrowed[Weak[T]] {
	return Borrow(Weak[T]{s: (*Shared[T])(w.p)})
}

func (WeakRc[T]) NonNull() bool           { return false }
func (WeakRc[T]) Alignment() uintptr      { return alignOf[Shared[T]]() }
func (WeakRc[T]) CloneInPlace() bool      { return true }
func (WeakRc[T]) Clone(w Weak[T]) Weak[T] { return w.Clone() }
func (WeakRc[T]) Release(w Weak[T])       { w.Release() }
