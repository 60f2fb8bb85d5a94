// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import "strconv"

// Pair is a value together with a W-bit tag.
type Pair[T any, W Width] struct {
	Value T
	Tag   Bits[W]
}

// NewPair returns v tagged with tag.
func NewPair[T any, W Width](v T, tag Bits[W]) Pair[T, W] {
	return Pair[T, W]{Value: v, Tag: tag}
}

// Tagged packs a Pair into one word: the tag occupies the W highest spare
// bits of C, directly below C's alignment.
//
// The resulting codec has alignment C.Alignment() >> W and may itself be
// wrapped by another Tagged while spare bits remain. C must have at least
// W spare bits. If C may encode null, the tag must sit either below bit 12
// or within the top 16 bits; see [Validate].
type Tagged[T any, C Codec[T], W Width] struct{}

func (t Tagged[T, C, W]) Encode(p Pair[T, W]) Word {
	var c C
	return c.Encode(p.Value).withBits(p.Tag.v << log2(t.Alignment()))
}

func (t Tagged[T, C, W]) Decode(w Word) Borrowed[Pair[T, W]] {
	var c C
	tag := Bits[W]{v: w.Addr() >> log2(t.Alignment()) & BitsMask[W]()}
	v := c.Decode(w.maskLow(c.Alignment())).Peek()
	return Borrow(Pair[T, W]{Value: v, Tag: tag})
}

func (Tagged[T, C, W]) NonNull() bool {
	var c C
	return c.NonNull()
}

func (Tagged[T, C, W]) Alignment() uintptr {
	var c C
	return c.Alignment() >> widthOf[W]()
}

func (Tagged[T, C, W]) CloneInPlace() bool {
	var c C
	return c.CloneInPlace()
}

func (Tagged[T, C, W]) Clone(p Pair[T, W]) Pair[T, W] {
	return Pair[T, W]{Value: cloneValue[T, C](p.Value), Tag: p.Tag}
}

func (Tagged[T, C, W]) Release(p Pair[T, W]) {
	releaseValue[T, C](p.Value)
}

func (t Tagged[T, C, W]) check() error {
	if err := Validate[T, C](); err != nil {
		return err
	}
	n := widthOf[W]()
	if !checkWidth(n) {
		return invalid(ErrWidth, errMetaWidthKey, strconv.FormatUint(uint64(n), 10))
	}
	var c C
	if c.Alignment() < uintptr(1)<<n {
		return codecError(ErrSpareBits, t)
	}
	if !c.NonNull() && !nullBitsFit(t.Alignment(), c.Alignment()) {
		return codecError(ErrAddressBits, t)
	}
	return nil
}
