// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import (
	"math/bits"
	"strconv"
)

// Immediates encode small integers in the top bits of a word. The payload
// sits at the highest bits so that everything below it is spare: an n-bit
// immediate has alignment 1<<(64-n).

// Bits is an unsigned integer of exactly W bits.
type Bits[W Width] struct {
	v uintptr
}

// BitsMask returns the largest value a Bits[W] can hold.
func BitsMask[W Width]() uintptr {
	return uintptr(1)<<widthOf[W]() - 1
}

// NewBits returns v as a Bits[W], or false if v does not fit in W bits.
func NewBits[W Width](v uintptr) (Bits[W], bool) {
	if v&BitsMask[W]() != v {
		return Bits[W]{}, false
	}
	return Bits[W]{v: v}, true
}

// WrapBits returns the low W bits of v.
func WrapBits[W Width](v uintptr) Bits[W] {
	return Bits[W]{v: v & BitsMask[W]()}
}

// SaturateBits returns v clamped to the largest W-bit value.
func SaturateBits[W Width](v uintptr) Bits[W] {
	return Bits[W]{v: min(v, BitsMask[W]())}
}

// Value returns the integer held by b.
func (b Bits[W]) Value() uintptr {
	return b.v
}

func (b Bits[W]) String() string {
	return strconv.FormatUint(uint64(b.v), 10)
}

// BitsOf encodes a Bits[W] in the top W bits of a word.
type BitsOf[W Width] struct{}

func (BitsOf[W]) Encode(b Bits[W]) Word {
	return ImmediateWord(b.v << (wordBits - widthOf[W]()))
}

func (BitsOf[W]) Decode(w Word) Borrowed[Bits[W]] {
	return Borrow(Bits[W]{v: w.Addr() >> (wordBits - widthOf[W]())})
}

func (BitsOf[W]) NonNull() bool           { return false }
func (BitsOf[W]) Alignment() uintptr      { return uintptr(1) << (wordBits - widthOf[W]()) }
func (BitsOf[W]) CloneInPlace() bool      { return true }
func (BitsOf[W]) Clone(b Bits[W]) Bits[W] { return b }

func (BitsOf[W]) check() error {
	if n := widthOf[W](); !checkWidth(n) {
		return invalid(ErrWidth, errMetaWidthKey, strconv.FormatUint(uint64(n), 10))
	}
	return nil
}

// Modulus is a modulus carried as a type, for Num.
type Modulus interface {
	Modulus() uintptr
}

func modulusOf[M Modulus]() uintptr {
	var m M
	return m.Modulus()
}

// Num is an unsigned integer in [0, M).
type Num[M Modulus] struct {
	v uintptr
}

// NewNum returns v as a Num[M], or false if v is not below the modulus.
func NewNum[M Modulus](v uintptr) (Num[M], bool) {
	if v >= modulusOf[M]() {
		return Num[M]{}, false
	}
	return Num[M]{v: v}, true
}

// WrapNum returns v reduced modulo M.
func WrapNum[M Modulus](v uintptr) Num[M] {
	return Num[M]{v: v % modulusOf[M]()}
}

// SaturateNum returns v clamped to M-1.
func SaturateNum[M Modulus](v uintptr) Num[M] {
	return Num[M]{v: min(v, modulusOf[M]()-1)}
}

// Value returns the integer held by n.
func (n Num[M]) Value() uintptr {
	return n.v
}

func (n Num[M]) String() string {
	return strconv.FormatUint(uint64(n.v), 10)
}

// NumOf encodes a Num[M] in the top bits of a word, using as few bits as
// hold M-1.
type NumOf[M Modulus] struct{}

func numShift[M Modulus]() uint {
	return wordBits - uint(bits.Len64(uint64(modulusOf[M]()-1)))
}

func (NumOf[M]) Encode(n Num[M]) Word {
	return ImmediateWord(n.v << numShift[M]())
}

func (NumOf[M]) Decode(w Word) Borrowed[Num[M]] {
	return Borrow(Num[M]{v: w.Addr() >> numShift[M]()})
}

func (NumOf[M]) NonNull() bool         { return false }
func (NumOf[M]) Alignment() uintptr    { return uintptr(1) << numShift[M]() }
func (NumOf[M]) CloneInPlace() bool    { return true }
func (NumOf[M]) Clone(n Num[M]) Num[M] { return n }

func (NumOf[M]) check() error {
	if m := modulusOf[M](); m < 2 || m > 1<<immediateBits {
		return invalid(ErrModulus, errMetaModulusKey, strconv.FormatUint(uint64(m), 10))
	}
	return nil
}

// UnitOf encodes struct{} as a non-null word with only the top bit set.
type UnitOf struct{}

func (UnitOf) Encode(struct{}) Word {
	return ImmediateWord(topBit)
}

func (UnitOf) Decode(w Word) Borrowed[struct{}] {
	assert(w.Addr() == topBit, "UnitOf: unexpected word")
	return Borrow(struct{}{})
}

func (UnitOf) NonNull() bool           { return true }
func (UnitOf) Alignment() uintptr      { return topBit }
func (UnitOf) CloneInPlace() bool      { return true }
func (UnitOf) Clone(struct{}) struct{} { return struct{}{} }

// Nil is the value encoded by NilOf.
type Nil struct{}

// NilOf encodes Nil as the zero word.
type NilOf struct{}

func (NilOf) Encode(Nil) Word {
	return Word{}
}

func (NilOf) Decode(w Word) Borrowed[Nil] {
	assert(w.IsNull(), "NilOf: non-null word")
	return Borrow(Nil{})
}

func (NilOf) NonNull() bool      { return false }
func (NilOf) Alignment() uintptr { return topBit }
func (NilOf) CloneInPlace() bool { return true }
func (NilOf) Clone(Nil) Nil      { return Nil{} }
