// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import (
	"math/bits"
	"unsafe"
)

// Word is the encoded form of a value: one address-sized bit pattern.
//
// The bits are held in an unsafe.Pointer so that the collector keeps any
// referenced object alive. Which bits form the address and which form tags
// is determined entirely by the codec that produced the word.
type Word struct {
	p unsafe.Pointer
}

// Only 64-bit targets are supported: immediates live above the user-space
// address range.
var _ [unsafe.Sizeof(uintptr(0)) - 8]byte
var _ [8 - unsafe.Sizeof(uintptr(0))]byte

const (
	wordBits = 64

	// immediateBits is the number of high bits available to immediates.
	// Every value with one of these bits set lies above any user-space
	// address, so the collector never treats it as a heap pointer.
	immediateBits  = 16
	immediateShift = wordBits - immediateBits

	topBit = uintptr(1) << (wordBits - 1)

	// minLegalPointer is the smallest non-null value the runtime accepts in
	// a pointer slot.
	minLegalPointer = 4096
)

// nullBase stands in for the null word whenever low bits are set on it:
// the runtime rejects pointer values in the first page. It is aligned to
// minLegalPointer and points into a private object, so no codec can produce
// it for a value of its own.
var nullBase = unsafe.Add(unsafe.Pointer(&nullArea), -uintptr(unsafe.Pointer(&nullArea))&(minLegalPointer-1))

var nullArea [2 * minLegalPointer]byte

// WordOf returns the word holding p unchanged.
func WordOf(p unsafe.Pointer) Word {
	return Word{p: p}
}

// ImmediateWord returns a word whose bits are b.
//
// Immediates carry no object. b must be zero or have one of its top 16
// bits set; any other pattern may alias a heap address.
func ImmediateWord(b uintptr) Word {
	return Word{p: unsafe.Add(unsafe.Pointer(nil), b)}
}

// Pointer returns the raw pointer, including any tag bits.
func (w Word) Pointer() unsafe.Pointer {
	return w.p
}

// Addr returns the bit pattern of w.
func (w Word) Addr() uintptr {
	return uintptr(w.p)
}

// IsNull reports whether every bit of w is zero.
func (w Word) IsNull() bool {
	return w.p == nil
}

// IsAlignedTo reports whether w is a multiple of align, which must be a
// power of two.
func (w Word) IsAlignedTo(align uintptr) bool {
	return uintptr(w.p)&(align-1) == 0
}

// withBits sets b in w. The bits of b must be clear in w.
func (w Word) withBits(b uintptr) Word {
	if w.p == nil && b != 0 {
		if b < minLegalPointer {
			return Word{p: unsafe.Add(nullBase, b)}
		}
		assert(b >= 1<<immediateShift, "bits on a null word alias a heap address")
	}
	return Word{p: unsafe.Add(w.p, b)}
}

// nullBitsFit reports whether the bits in [lo, hi) may be set on a null
// word. They must lie either below minLegalPointer, where nullBase carries
// them, or in the immediate range.
func nullBitsFit(lo, hi uintptr) bool {
	return hi <= minLegalPointer || lo >= 1<<immediateShift
}

// maskLow clears every bit of w below align, undoing withBits.
func (w Word) maskLow(align uintptr) Word {
	low := uintptr(w.p) & (align - 1)
	if low == 0 {
		return w
	}
	p := unsafe.Add(w.p, -int(low))
	if p == nullBase {
		return Word{}
	}
	return Word{p: p}
}

// log2 returns the exponent of the power of two a.
func log2(a uintptr) uint {
	return uint(bits.TrailingZeros64(uint64(a)))
}

func isPowerOfTwo(a uintptr) bool {
	return a != 0 && a&(a-1) == 0
}

// alignOf returns the guaranteed alignment of a *T. Zero-size values may
// share one address, so they report 1.
func alignOf[T any]() uintptr {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return 1
	}
	return unsafe.Alignof(zero)
}
