// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import "fmt"

// Compact owns one value of type T stored as a single Word.
//
// A Compact is created by NewCompact and must be finished by Close or by
// Into. The zero Compact, like a finished one, holds no value: Close is a
// no-op and Into returns the zero T. Compact is not safe for concurrent use.
type Compact[T any, C Codec[T]] struct {
	w Word
}

// NewCompact encodes v into a new Compact.
func NewCompact[T any, C Codec[T]](v T) Compact[T, C] {
	debugValidate[T, C]()
	var c C
	return Compact[T, C]{w: c.Encode(v)}
}

// Peek returns the held value without taking ownership of it.
// The result is valid until the Compact is next modified or closed.
func (b *Compact[T, C]) Peek() T {
	return peekWord[T, C](b.w)
}

// Edit takes the held value out for modification. The Compact keeps its
// current word until the returned handle is released, which writes the
// possibly modified value back.
func (b *Compact[T, C]) Edit() Edit[T, C] {
	return Edit[T, C]{box: b, v: takeOwned[T, C](b.w)}
}

// Modify calls f with a pointer to the held value and writes the result
// back, even if f panics.
func (b *Compact[T, C]) Modify(f func(*T)) {
	e := b.Edit()
	defer e.Release()
	f(e.Value())
}

// Into consumes the Compact and returns its value.
func (b *Compact[T, C]) Into() T {
	if b.empty() {
		var zero T
		return zero
	}
	v := takeOwned[T, C](b.w)
	b.w = Word{}
	return v
}

// Swap stores v and returns the previously held value.
func (b *Compact[T, C]) Swap(v T) T {
	var c C
	old := takeOwned[T, C](b.w)
	b.w = c.Encode(v)
	return old
}

// Clone returns a new Compact holding a clone of the held value.
// Panics if C does not implement Cloner.
func (b *Compact[T, C]) Clone() Compact[T, C] {
	var c C
	return Compact[T, C]{w: c.Encode(cloneValue[T, C](b.Peek()))}
}

// Close releases the held value through its codec.
func (b *Compact[T, C]) Close() {
	if b.empty() {
		return
	}
	releaseValue[T, C](takeOwned[T, C](b.w))
	b.w = Word{}
}

// empty reports whether b holds no value. Only a codec that never encodes
// null can tell an empty Compact apart from a held null value.
func (b *Compact[T, C]) empty() bool {
	var c C
	return b.w.IsNull() && c.NonNull()
}

func (b *Compact[T, C]) String() string {
	return fmt.Sprintf("Compact(%v)", b.Peek())
}

// Edit is a deferred write-back handle obtained from Compact.Edit.
// It must be released exactly once; a second Release panics.
type Edit[T any, C Codec[T]] struct {
	box  *Compact[T, C]
	v    T
	done bool
}

// Value returns a pointer to the value being edited.
func (e *Edit[T, C]) Value() *T {
	return &e.v
}

// Set replaces the value being edited, releasing the previous one.
func (e *Edit[T, C]) Set(v T) {
	releaseValue[T, C](e.v)
	e.v = v
}

// Release encodes the edited value back into the Compact.
// Panics if called twice.
func (e *Edit[T, C]) Release() {
	if e.done {
		panic("tagptr: edit released twice")
	}
	e.done = true
	var c C
	e.box.w = c.Encode(e.v)
}
