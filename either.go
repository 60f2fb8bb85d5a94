// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

// Either holds exactly one of a Left (error) or a Right (success) value.
type Either[E, A any] struct {
	isRight bool
	left    E
	right   A
}

// Left returns an Either holding the error e.
func Left[E, A any](e E) Either[E, A] {
	return Either[E, A]{left: e}
}

// Right returns an Either holding the success value a.
func Right[E, A any](a A) Either[E, A] {
	return Either[E, A]{isRight: true, right: a}
}

// IsRight returns true if e holds a success value.
func (e Either[E, A]) IsRight() bool {
	return e.isRight
}

// IsLeft returns true if e holds an error value.
func (e Either[E, A]) IsLeft() bool {
	return !e.isRight
}

// GetRight returns the success value and true, or zero and false.
func (e Either[E, A]) GetRight() (A, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero A
	return zero, false
}

// GetLeft returns the error value and true, or zero and false.
func (e Either[E, A]) GetLeft() (E, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero E
	return zero, false
}

// MatchEither calls onLeft or onRight with the held value.
func MatchEither[E, A, T any](e Either[E, A], onLeft func(E) T, onRight func(A) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// EitherOf encodes an Either with independent codecs for each arm.
//
// The highest spare bit common to both arms selects the arm: clear for
// Right, set for Left. Both EC and AC need an alignment of at least 2; the
// result has half the smaller of the two. If EC may encode null, the
// selector bit must lie below bit 12 or within the top 16 bits.
type EitherOf[E any, EC Codec[E], A any, AC Codec[A]] struct{}

func (x EitherOf[E, EC, A, AC]) Encode(e Either[E, A]) Word {
	if e.isRight {
		var ac AC
		return ac.Encode(e.right)
	}
	var ec EC
	return ec.Encode(e.left).withBits(x.Alignment())
}

func (x EitherOf[E, EC, A, AC]) Decode(w Word) Borrowed[Either[E, A]] {
	a := x.Alignment()
	inner := w.maskLow(a << 1)
	if w.Addr()&a == 0 {
		var ac AC
		return Borrow(Right[E](ac.Decode(inner).Peek()))
	}
	var ec EC
	return Borrow(Left[E, A](ec.Decode(inner).Peek()))
}

func (EitherOf[E, EC, A, AC]) NonNull() bool {
	var ac AC
	return ac.NonNull()
}

func (EitherOf[E, EC, A, AC]) Alignment() uintptr {
	var ec EC
	var ac AC
	return min(ec.Alignment(), ac.Alignment()) >> 1
}

func (EitherOf[E, EC, A, AC]) CloneInPlace() bool {
	var ec EC
	var ac AC
	return ec.CloneInPlace() && ac.CloneInPlace()
}

func (EitherOf[E, EC, A, AC]) Clone(e Either[E, A]) Either[E, A] {
	if e.isRight {
		return Right[E](cloneValue[A, AC](e.right))
	}
	return Left[E, A](cloneValue[E, EC](e.left))
}

func (EitherOf[E, EC, A, AC]) Release(e Either[E, A]) {
	if e.isRight {
		releaseValue[A, AC](e.right)
		return
	}
	releaseValue[E, EC](e.left)
}

func (x EitherOf[E, EC, A, AC]) check() error {
	if err := Validate[E, EC](); err != nil {
		return err
	}
	if err := Validate[A, AC](); err != nil {
		return err
	}
	var ec EC
	var ac AC
	if ec.Alignment() < 2 || ac.Alignment() < 2 {
		return codecError(ErrSpareBits, x)
	}
	if a := x.Alignment(); !ec.NonNull() && !nullBitsFit(a, a<<1) {
		return codecError(ErrAddressBits, x)
	}
	return nil
}
