// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/tagptr"
)

// opaque is a codec for Bits[W5] that cannot clone.
type opaque struct{}

func (opaque) Encode(b bits5) tagptr.Word                  { return bitsOf5{}.Encode(b) }
func (opaque) Decode(w tagptr.Word) tagptr.Borrowed[bits5] { return bitsOf5{}.Decode(w) }
func (opaque) NonNull() bool                               { return false }
func (opaque) Alignment() uintptr                          { return bitsOf5{}.Alignment() }
func (opaque) CloneInPlace() bool                          { return false }

func TestCompactSize(t *testing.T) {
	if got := unsafe.Sizeof(tagptr.Compact[*uint64, boxU64]{}); got != 8 {
		t.Fatalf("Compact size = %d, want 8", got)
	}
	if got := unsafe.Sizeof(tagptr.Compact[pair3, tag3]{}); got != 8 {
		t.Fatalf("tagged Compact size = %d, want 8", got)
	}
}

func TestCompactInto(t *testing.T) {
	v := uint64(42)
	c := tagptr.NewCompact[*uint64, boxU64](&v)
	if got := c.Peek(); got != &v {
		t.Fatalf("Peek = %p, want %p", got, &v)
	}
	if got := c.Into(); got != &v {
		t.Fatalf("Into = %p, want %p", got, &v)
	}
}

func TestCompactEditDeferred(t *testing.T) {
	c := tagptr.NewCompact[bits5, bitsOf5](tagptr.WrapBits[tagptr.W5](3))
	e := c.Edit()
	*e.Value() = tagptr.WrapBits[tagptr.W5](9)
	if got := c.Peek().Value(); got != 3 {
		t.Fatalf("Peek during edit = %d, want 3", got)
	}
	e.Release()
	if got := c.Peek().Value(); got != 9 {
		t.Fatalf("Peek after release = %d, want 9", got)
	}
	require.PanicsWithValue(t, "tagptr: edit released twice", e.Release)
	if got := c.Peek().Value(); got != 9 {
		t.Fatalf("Peek after double release = %d, want 9", got)
	}
}

func TestCompactModify(t *testing.T) {
	c := tagptr.NewCompact[bits5, bitsOf5](tagptr.WrapBits[tagptr.W5](1))
	for range 5 {
		c.Modify(func(b *bits5) { *b = tagptr.WrapBits[tagptr.W5](b.Value() * 2) })
	}
	if got := c.Peek().Value(); got != 0 {
		t.Fatalf("after five doublings = %d, want 0", got)
	}

	func() {
		defer func() { _ = recover() }()
		c.Modify(func(b *bits5) {
			*b = tagptr.WrapBits[tagptr.W5](20)
			panic("modify")
		})
	}()
	if got := c.Peek().Value(); got != 20 {
		t.Fatalf("after panicking modify = %d, want 20", got)
	}
}

func TestCompactEditSetReleases(t *testing.T) {
	var dropped []int
	drop := func(v *int) { dropped = append(dropped, *v) }
	s1 := tagptr.NewSharedFunc(1, drop)
	s2 := tagptr.NewSharedFunc(2, drop)

	c := tagptr.NewCompact[*tagptr.Shared[int], rcInt](s1)
	e := c.Edit()
	e.Set(s2)
	require.Equal(t, []int{1}, dropped)
	e.Release()
	require.Same(t, s2, c.Peek())

	c.Close()
	require.Equal(t, []int{1, 2}, dropped)
}

func TestCompactBoxClone(t *testing.T) {
	v := uint64(5)
	c := tagptr.NewCompact[*uint64, boxU64](&v)
	d := c.Clone()
	if c.Peek() == d.Peek() {
		t.Fatal("clone shares the pointee")
	}
	*d.Peek() = 6
	if got := *c.Peek(); got != 5 {
		t.Fatalf("original = %d, want 5", got)
	}
	c.Close()
	d.Close()
}

func TestCompactRcClone(t *testing.T) {
	drops := 0
	s := tagptr.NewSharedFunc(8, func(*int) { drops++ })
	c := tagptr.NewCompact[*tagptr.Shared[int], rcInt](s)
	d := c.Clone()
	if d.Peek() != s {
		t.Fatalf("clone = %p, want %p", d.Peek(), s)
	}
	if got := s.StrongCount(); got != 2 {
		t.Fatalf("strong count = %d, want 2", got)
	}
	c.Close()
	if drops != 0 {
		t.Fatal("dropped while a clone is alive")
	}
	d.Close()
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
}

func TestCompactCloneUnsupported(t *testing.T) {
	c := tagptr.NewCompact[bits5, opaque](tagptr.WrapBits[tagptr.W5](1))
	require.PanicsWithValue(t, "tagptr: tagptr_test.opaque cannot clone values", func() {
		c.Clone()
	})
}

func TestCompactPeekNeverReleases(t *testing.T) {
	drops := 0
	s := tagptr.NewSharedFunc(1, func(*int) { drops++ })
	c := tagptr.NewCompact[*tagptr.Shared[int], rcInt](s)
	for range 100 {
		if c.Peek() != s {
			t.Fatal("Peek returned another cell")
		}
	}
	if drops != 0 || s.StrongCount() != 1 {
		t.Fatalf("after peeks: drops = %d, strong = %d", drops, s.StrongCount())
	}
	c.Close()
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
}

func TestCompactSwap(t *testing.T) {
	drops := 0
	drop := func(*int) { drops++ }
	s1 := tagptr.NewSharedFunc(1, drop)
	s2 := tagptr.NewSharedFunc(2, drop)

	c := tagptr.NewCompact[*tagptr.Shared[int], rcInt](s1)
	old := c.Swap(s2)
	require.Same(t, s1, old)
	require.Same(t, s2, c.Peek())
	require.Zero(t, drops)

	old.Release()
	c.Close()
	require.Equal(t, 2, drops)
}

func TestCompactEmptyClose(t *testing.T) {
	var zero tagptr.Compact[*tagptr.Shared[int], rcInt]
	require.NotPanics(t, zero.Close)
	require.Nil(t, zero.Into())

	var niche tagptr.Compact[tagptr.Maybe[*tagptr.Shared[int]], tagptr.Niche[*tagptr.Shared[int], rcInt]]
	require.NotPanics(t, niche.Close)

	drops := 0
	s := tagptr.NewSharedFunc(1, func(*int) { drops++ })
	c := tagptr.NewCompact[*tagptr.Shared[int], rcInt](s)
	require.Same(t, s, c.Into())
	require.NotPanics(t, c.Close)
	require.Nil(t, c.Into())
	require.Zero(t, drops)
	require.Equal(t, 1, s.StrongCount())

	s.Release()
	require.Equal(t, 1, drops)

	d := tagptr.NewCompact[*tagptr.Shared[int], rcInt](tagptr.NewSharedFunc(2, func(*int) { drops++ }))
	d.Close()
	d.Close()
	require.Equal(t, 2, drops)
}

func TestCompactString(t *testing.T) {
	c := tagptr.NewCompact[bits5, bitsOf5](tagptr.WrapBits[tagptr.W5](3))
	if got := c.String(); got != "Compact(3)" {
		t.Fatalf("String = %q, want %q", got, "Compact(3)")
	}
}
