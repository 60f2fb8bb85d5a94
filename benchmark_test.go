// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr_test

import (
	"testing"

	"code.hybscloud.com/tagptr"
)

// BenchmarkBoxRoundTrip measures encoding and decoding a plain pointer.
func BenchmarkBoxRoundTrip(b *testing.B) {
	v := uint64(1)
	var c boxU64
	for b.Loop() {
		_ = c.Decode(c.Encode(&v)).Peek()
	}
}

// BenchmarkTaggedRoundTrip measures packing and unpacking a 3-bit tag.
func BenchmarkTaggedRoundTrip(b *testing.B) {
	v := uint64(1)
	p := tagptr.NewPair(&v, tagptr.WrapBits[tagptr.W3](5))
	var c tag3
	for b.Loop() {
		_ = c.Decode(c.Encode(p)).Peek()
	}
}

// BenchmarkNestedNiche measures a three-level optional over one pointer.
func BenchmarkNestedNiche(b *testing.B) {
	type n3 = tagptr.Niche[tagptr.Maybe[maybeU64], tagptr.Niche[maybeU64, nicheU64]]
	m := tagptr.Some(tagptr.Some(tagptr.None[*uint64]()))
	var c n3
	for b.Loop() {
		_ = c.Decode(c.Encode(m)).Peek()
	}
}

// BenchmarkCompactModify measures a deferred write-back edit.
func BenchmarkCompactModify(b *testing.B) {
	c := tagptr.NewCompact[bits5, bitsOf5](tagptr.WrapBits[tagptr.W5](0))
	inc := func(v *bits5) { *v = tagptr.WrapBits[tagptr.W5](v.Value() + 1) }
	for b.Loop() {
		c.Modify(inc)
	}
}

// BenchmarkCompactRcClone measures cloning and closing a reference-counted Compact.
func BenchmarkCompactRcClone(b *testing.B) {
	c := tagptr.NewCompact[*tagptr.Shared[int], rcInt](tagptr.NewShared(1))
	defer c.Close()
	for b.Loop() {
		d := c.Clone()
		d.Close()
	}
}

// BenchmarkSlotSwap measures uncontended swaps.
func BenchmarkSlotSwap(b *testing.B) {
	x, y := uint64(1), uint64(2)
	s := tagptr.NewSlot[*uint64, boxU64](&x)
	p := &y
	for b.Loop() {
		p = s.Swap(p)
	}
	s.Close()
}

// BenchmarkSlotSwapParallel measures swaps contended by every P.
func BenchmarkSlotSwapParallel(b *testing.B) {
	x := uint64(1)
	s := tagptr.NewPaddedSlot[*uint64, boxU64](&x)
	b.RunParallel(func(pb *testing.PB) {
		v := uint64(2)
		p := &v
		for pb.Next() {
			p = s.Swap(p)
		}
	})
	s.Close()
}

// BenchmarkSlotCompareExchange measures successful compare-exchanges.
func BenchmarkSlotCompareExchange(b *testing.B) {
	x, y := uint64(1), uint64(2)
	s := tagptr.NewSlot[*uint64, boxU64](&x)
	cur, next := &x, &y
	for b.Loop() {
		if _, ok := s.CompareExchange(cur, next); !ok {
			b.Fatal("compare-exchange failed")
		}
		cur, next = next, cur
	}
	s.Close()
}
