// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

// Maybe is an optional value.
type Maybe[T any] struct {
	ok bool
	v  T
}

// Some returns a present Maybe holding v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{ok: true, v: v}
}

// None returns an absent Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the held value and true, or zero and false.
func (m Maybe[T]) Get() (T, bool) {
	return m.v, m.ok
}

// IsSome returns true if a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.ok
}

// IsNone returns true if no value is present.
func (m Maybe[T]) IsNone() bool {
	return !m.ok
}

// Niche encodes a Maybe without a discriminant word, using the highest
// spare bit of C.
//
// Some(x) encodes as C.Encode(x), which has the bit clear by alignment.
// None encodes as a null word with that bit set. The resulting alignment is
// half of C's, and a Niche may wrap another Niche to any depth, each level
// taking one further bit. C needs an alignment of at least 2, and the
// niche bit must lie below bit 12 or within the top 16 bits.
type Niche[T any, C Codec[T]] struct{}

func (n Niche[T, C]) Encode(m Maybe[T]) Word {
	if m.ok {
		var c C
		return c.Encode(m.v)
	}
	return Word{}.withBits(n.Alignment())
}

func (n Niche[T, C]) Decode(w Word) Borrowed[Maybe[T]] {
	a := n.Alignment()
	if w.Addr()&a != 0 {
		return Borrow(Maybe[T]{})
	}
	var c C
	return Borrow(Some(c.Decode(w.maskLow(a << 1)).Peek()))
}

func (Niche[T, C]) NonNull() bool {
	var c C
	return c.NonNull()
}

func (Niche[T, C]) Alignment() uintptr {
	var c C
	return c.Alignment() >> 1
}

func (Niche[T, C]) CloneInPlace() bool {
	var c C
	return c.CloneInPlace()
}

func (Niche[T, C]) Clone(m Maybe[T]) Maybe[T] {
	if !m.ok {
		return m
	}
	return Some(cloneValue[T, C](m.v))
}

func (Niche[T, C]) Release(m Maybe[T]) {
	if m.ok {
		releaseValue[T, C](m.v)
	}
}

func (n Niche[T, C]) check() error {
	if err := Validate[T, C](); err != nil {
		return err
	}
	var c C
	if c.Alignment() < 2 {
		return codecError(ErrSpareBits, n)
	}
	if a := n.Alignment(); !nullBitsFit(a, a<<1) {
		return codecError(ErrAddressBits, n)
	}
	return nil
}

// NullNiche encodes a Maybe over a non-null codec, using the zero word for
// None. Alignment is unchanged, but the result may be null, so a NullNiche
// cannot wrap another NullNiche; nest [Niche] instead.
type NullNiche[T any, C Codec[T]] struct{}

func (NullNiche[T, C]) Encode(m Maybe[T]) Word {
	if m.ok {
		var c C
		return c.Encode(m.v)
	}
	return Word{}
}

func (NullNiche[T, C]) Decode(w Word) Borrowed[Maybe[T]] {
	if w.IsNull() {
		return Borrow(Maybe[T]{})
	}
	var c C
	return Borrow(Some(c.Decode(w).Peek()))
}

func (NullNiche[T, C]) NonNull() bool { return false }

func (NullNiche[T, C]) Alignment() uintptr {
	var c C
	return c.Alignment()
}

func (NullNiche[T, C]) CloneInPlace() bool {
	var c C
	return c.CloneInPlace()
}

func (NullNiche[T, C]) Clone(m Maybe[T]) Maybe[T] {
	if !m.ok {
		return m
	}
	return Some(cloneValue[T, C](m.v))
}

func (NullNiche[T, C]) Release(m Maybe[T]) {
	if m.ok {
		releaseValue[T, C](m.v)
	}
}

func (n NullNiche[T, C]) check() error {
	if err := Validate[T, C](); err != nil {
		return err
	}
	var c C
	if !c.NonNull() {
		return codecError(ErrNullable, n)
	}
	return nil
}
