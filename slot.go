// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Slot is a lock-free cell holding exactly one value of type T as a single
// Word.
//
// A Slot never exposes its value without replacing it: every read is a
// swap. A caller therefore never holds a view that a concurrent swap could
// release underneath it. All operations are single atomic steps and never
// retry.
//
// Must not be copied after first use.
type Slot[T any, C Codec[T]] struct {
	_ [0]sync.Mutex

	p unsafe.Pointer
}

// NewSlot returns a Slot holding v.
func NewSlot[T any, C Codec[T]](v T) *Slot[T, C] {
	debugValidate[T, C]()
	var c C
	return &Slot[T, C]{p: c.Encode(v).p}
}

// Swap stores v and returns the previous value, now owned by the caller.
func (s *Slot[T, C]) Swap(v T) T {
	var c C
	old := atomic.SwapPointer(&s.p, c.Encode(v).p)
	return c.Decode(Word{p: old}).AssumeOwned()
}

// Store stores v and releases the previous value.
func (s *Slot[T, C]) Store(v T) {
	releaseValue[T, C](s.Swap(v))
}

// CompareExchange stores next if the slot currently holds the word that
// expected encodes to, and returns the previous value and true.
//
// Only words are compared; expected is neither decoded nor consumed. On
// failure next is handed back unchanged together with false; the current
// value is not observed.
func (s *Slot[T, C]) CompareExchange(expected, next T) (T, bool) {
	var c C
	cmp := addrOf[T, C](expected)
	if atomic.CompareAndSwapPointer(&s.p, cmp.p, c.Encode(next).p) {
		return c.Decode(cmp).AssumeOwned(), true
	}
	return next, false
}

// Close releases the held value. The Slot must not be used afterwards.
func (s *Slot[T, C]) Close() {
	var c C
	releaseValue[T, C](c.Decode(Word{p: atomic.LoadPointer(&s.p)}).AssumeOwned())
}

// PaddedSlot is a Slot alone on its cache line, for slots shared by many
// goroutines.
type PaddedSlot[T any, C Codec[T]] struct {
	_ cpu.CacheLinePad
	Slot[T, C]
	_ cpu.CacheLinePad
}

// NewPaddedSlot returns a PaddedSlot holding v.
func NewPaddedSlot[T any, C Codec[T]](v T) *PaddedSlot[T, C] {
	debugValidate[T, C]()
	var c C
	s := new(PaddedSlot[T, C])
	s.p = c.Encode(v).p
	return s
}
