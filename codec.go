// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

// Codec converts values of type T to and from a single Word.
//
// Codecs are zero-size types used as type parameters; the containers in this
// package call methods on the zero value, so a codec must not carry state.
//
// Implementations must guarantee:
//   - Decode(Encode(v)) reconstructs v exactly.
//   - Encode never allocates, never fails, and is free of side effects:
//     the same value always yields the same word.
//   - Every encoded word is a multiple of Alignment(). Understating the
//     alignment is safe; overstating it corrupts addresses.
//   - If NonNull() is true, Encode never yields the zero word.
//   - If CloneInPlace() is true, cloning a value obtained through a
//     non-owning view and encoding the clone mints exactly one new live
//     reference and leaves the original intact.
type Codec[T any] interface {
	// Encode transfers ownership of v into the returned word.
	Encode(v T) Word

	// Decode reconstructs the value encoded in w as a non-owning view.
	//
	// The caller must guarantee that w was produced by Encode of the same
	// codec and has not been decoded with ownership since.
	Decode(w Word) Borrowed[T]

	// NonNull reports whether Encode never yields the zero word.
	NonNull() bool

	// Alignment returns the power of two every encoded word is a multiple of.
	Alignment() uintptr

	// CloneInPlace reports whether a live reference may be duplicated from
	// a non-owning view alone.
	CloneInPlace() bool
}

// Cloner is implemented by codecs whose values can be duplicated.
type Cloner[T any] interface {
	Clone(v T) T
}

// Releaser is implemented by codecs whose values hold a resource that must
// be given back exactly once, such as a reference count.
type Releaser[T any] interface {
	Release(v T)
}

// Borrowed is a decoded value whose ownership has not been asserted.
//
// Dropping a Borrowed releases nothing. Calling AssumeOwned transfers the
// responsibility of releasing the value to the caller.
type Borrowed[T any] struct {
	v T
}

// Borrow wraps v as a non-owning view. Codecs return it from Decode.
func Borrow[T any](v T) Borrowed[T] {
	return Borrowed[T]{v: v}
}

// Peek returns the value without taking ownership. The result must not be
// released and must not outlive the word it was decoded from.
func (b Borrowed[T]) Peek() T {
	return b.v
}

// AssumeOwned returns the value and makes the caller its owner.
//
// It must be called at most once per encoded word: a second call on the
// same word releases the same resource twice, and never calling it on a
// word that is discarded leaks the resource.
func (b Borrowed[T]) AssumeOwned() T {
	return b.v
}

// MapBorrowed applies f to the viewed value, keeping it non-owning.
func MapBorrowed[T, U any](b Borrowed[T], f func(T) U) Borrowed[U] {
	return Borrowed[U]{v: f(b.v)}
}

// CloneInPlace mints one new live reference from the word w without
// consuming it. After n calls, w may be decoded with ownership n+1 times.
//
// Panics if C does not support cloning in place.
func CloneInPlace[T any, C Codec[T]](w Word) {
	var c C
	if !c.CloneInPlace() {
		panic("tagptr: codec cannot clone in place")
	}
	// Every clone encodes to w, so the clone itself is dropped.
	cloneValue[T, C](c.Decode(w).Peek())
}

// addrOf returns the word v would encode to, without transferring
// ownership of v.
func addrOf[T any, C Codec[T]](v T) Word {
	var c C
	return c.Encode(v)
}

func assert(cond bool, msg string) {
	if debugChecks && !cond {
		panic("tagptr: " + msg)
	}
}
