// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import "unsafe"

// Box encodes an owned, non-nil *T.
//
// The pointee's alignment leaves its low bits free for tags. Cloning a Box
// value copies the pointee, so a Box cannot be cloned in place.
type Box[T any] struct{}

func (Box[T]) Encode(p *T) Word {
	assert(p != nil, "Box: nil pointer")
	return Word{p: unsafe.Pointer(p)}
}

func (Box[T]) Decode(w Word) Borrowed[*T] {
	assert(!w.IsNull(), "Box: null word")
	assert(w.IsAlignedTo(alignOf[T]()), "Box: misaligned word")
	return Borrow((*T)(w.p))
}

func (Box[T]) NonNull() bool      { return true }
func (Box[T]) Alignment() uintptr { return alignOf[T]() }
func (Box[T]) CloneInPlace() bool { return false }

// Clone returns a pointer to a shallow copy of *p.
func (Box[T]) Clone(p *T) *T {
	q := new(T)
	*q = *p
	return q
}

// Ref encodes a shared, non-nil *T that is never released.
// Copies of the pointer are further references to the same object.
type Ref[T any] struct{}

func (Ref[T]) Encode(p *T) Word {
	assert(p != nil, "Ref: nil pointer")
	return Word{p: unsafe.Pointer(p)}
}

func (Ref[T]) Decode(w Word) Borrowed[*T] {
	assert(!w.IsNull(), "Ref: null word")
	return Borrow((*T)(w.p))
}

func (Ref[T]) NonNull() bool      { return true }
func (Ref[T]) Alignment() uintptr { return alignOf[T]() }
func (Ref[T]) CloneInPlace() bool { return true }
func (Ref[T]) Clone(p *T) *T      { return p }

// Ptr encodes a *T that may be nil.
type Ptr[T any] struct{}

func (Ptr[T]) Encode(p *T) Word {
	return Word{p: unsafe.Pointer(p)}
}

func (Ptr[T]) Decode(w Word) Borrowed[*T] {
	return Borrow((*T)(w.p))
}

func (Ptr[T]) NonNull() bool      { return false }
func (Ptr[T]) Alignment() uintptr { return alignOf[T]() }
func (Ptr[T]) CloneInPlace() bool { return true }
func (Ptr[T]) Clone(p *T) *T      { return p }
