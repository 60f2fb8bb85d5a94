// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import (
	"fmt"

	"github.com/brickingsoft/errors"
)

var (
	// ErrAlignment reports an alignment that is not a power of two.
	ErrAlignment = errors.Define("alignment is not a power of two")

	// ErrSpareBits reports a tag or niche wider than the spare alignment bits.
	ErrSpareBits = errors.Define("not enough spare alignment bits")

	// ErrNullable reports a null niche over a codec that may encode null.
	ErrNullable = errors.Define("null niche requires a non-null codec")

	// ErrAddressBits reports tag or niche bits that, set on a null word,
	// would fall inside the heap address range.
	ErrAddressBits = errors.Define("tag bits overlap the address range")

	// ErrWidth reports a tag width outside [1, 16].
	ErrWidth = errors.Define("tag width out of range")

	// ErrModulus reports a modulus outside [2, 1<<16].
	ErrModulus = errors.Define("modulus out of range")
)

const (
	errMetaCodecKey   = "codec"
	errMetaWidthKey   = "width"
	errMetaModulusKey = "modulus"
)

// checker is implemented by codecs whose validity depends on the codecs
// they wrap.
type checker interface {
	check() error
}

// Validate reports whether the codec C is well formed: every tag fits in
// the spare bits of the codec it is packed into, every niche has a spare bit
// to use, and the resulting alignment is a power of two. Bits that may be set
// on a null word must lie below bit 12 or within the top 16 bits.
//
// Go cannot reject these combinations at compile time, so they are checked
// here instead. See [MustValidate].
func Validate[T any, C Codec[T]]() error {
	var c C
	if ch, ok := any(c).(checker); ok {
		if err := ch.check(); err != nil {
			return err
		}
	}
	if !isPowerOfTwo(c.Alignment()) {
		return codecError(ErrAlignment, c)
	}
	return nil
}

// MustValidate panics if Validate reports an error. It returns true so it can
// run during package initialisation:
//
//	var _ = tagptr.MustValidate[tagptr.Pair[*Node, tagptr.W2], NodeCodec]()
func MustValidate[T any, C Codec[T]]() bool {
	if err := Validate[T, C](); err != nil {
		panic("tagptr: " + err.Error())
	}
	return true
}

// debugValidate asserts the validity of C when debug checks are enabled.
func debugValidate[T any, C Codec[T]]() {
	if debugChecks {
		MustValidate[T, C]()
	}
}

func codecError(err error, c any) error {
	return invalid(err, errMetaCodecKey, fmt.Sprintf("%T", c))
}

func invalid(err error, key, val string) error {
	return errors.New(
		"invalid codec",
		errors.WithMeta(key, val),
		errors.WithWrap(err),
	)
}
