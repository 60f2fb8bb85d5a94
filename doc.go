// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tagptr encodes ownership-carrying values into a single
// machine word and packs auxiliary tags into the low address bits that
// alignment leaves free.
//
// A [Codec] describes how one type maps to a [Word]: pointers, reference
// counted cells, small integers and sum types all fit the same contract.
// Codecs compose: a tag can be packed on top of any codec with spare bits,
// an optional value can reuse a spare bit instead of a discriminant, and
// the results are codecs again. Two containers are built on the contract:
// [Compact], a single-word owning box, and [Slot], a lock-free single-word
// cell that can only be read by swapping.
//
// # Design Philosophy
//
// tagptr provides:
//   - One contract for every backend, with static properties instead of
//     runtime type information
//   - Zero-size codecs passed as type parameters, so containers stay one
//     word wide and encoding is allocation-free
//   - Ownership that is explicit at every decode: a view never releases,
//     an owned value must be released exactly once
//
// # Codec Contract
//
// A codec for T implements:
//
//   - Encode: T → [Word], infallible, side-effect free
//   - Decode: [Word] → [Borrowed], a non-owning view
//   - NonNull: Encode never yields the zero word
//   - Alignment: every encoded word is a multiple of this power of two
//   - CloneInPlace: a reference can be minted from a view alone
//
// Optional capabilities:
//
//   - [Cloner]: duplicate a value (needed by [Compact.Clone], [CloneInPlace])
//   - [Releaser]: give back a resource exactly once (the destructor)
//
// Ownership:
//
//   - [Borrowed.Peek]: use the value, releasing nothing
//   - [Borrowed.AssumeOwned]: become the owner; release it exactly once
//   - [CloneInPlace]: mint an extra reference from a word
//
// # Backends
//
//   - [Box]: owned non-nil pointer
//   - [Ref]: shared non-nil pointer, never released
//   - [Ptr]: nullable pointer
//   - [Rc]: strong reference to a [Shared] cell
//   - [WeakRc]: [Weak] reference to a [Shared] cell
//   - [BitsOf]: [Bits] integer in the top bits
//   - [NumOf]: [Num] integer modulo a [Modulus]
//   - [UnitOf], [NilOf]: fixed non-null and null words
//
// Reference counting:
//
//   - [NewShared], [NewSharedFunc]: Create a cell with one strong reference
//   - [Shared.Retain], [Shared.Release]: Adjust the strong count
//   - [Shared.Downgrade], [Weak.Upgrade]: Move between strong and weak
//   - [SharedPool]: Recycle cells once every reference is gone
//
// # Tagging
//
// [Tagged] packs a [Pair] of a value and a W-bit [Bits] tag. The tag takes
// the highest W spare bits of the wrapped codec and the alignment shrinks by
// 2^W. Tags come from [NewBits] (rejects values that do not fit),
// [WrapBits] (keeps the low bits) or [SaturateBits] (clamps).
// Widths are types: [W1] through [W16].
//
// # Niches
//
//   - [Niche]: [Maybe] with None in a spare bit, nestable to any depth
//   - [NullNiche]: [Maybe] with None as the zero word, over non-null codecs
//   - [EitherOf]: [Either] with the arm selected by a spare bit
//
// # Containers
//
// [Compact]:
//
//   - [NewCompact]: Encode a value
//   - [Compact.Peek]: Read without taking ownership
//   - [Compact.Edit], [Compact.Modify]: Modify with deferred write-back
//   - [Compact.Swap]: Replace, returning the previous value
//   - [Compact.Into]: Consume
//   - [Compact.Clone]: Clone the held value
//   - [Compact.Close]: Release the held value
//
// [Slot]:
//
//   - [NewSlot], [NewPaddedSlot]: Create holding an initial value
//   - [Slot.Swap]: Exchange, returning the previous value
//   - [Slot.Store]: Exchange and release the previous value
//   - [Slot.CompareExchange]: Exchange if the slot holds a given word
//   - [Slot.Close]: Release the final value
//
// # Validation
//
// Go cannot reject an invalid codec composition at compile time. [Validate]
// reports tags wider than the available spare bits, niches without a spare
// bit and null niches over nullable codecs; [MustValidate] is meant for
// package-level variables so that the check runs during initialisation:
//
//	type nodeTag = tagptr.Tagged[*Node, tagptr.Box[Node], tagptr.W2]
//
//	var _ = tagptr.MustValidate[tagptr.Pair[*Node, tagptr.W2], nodeTag]()
//
// Building with the tagptr_debug tag additionally validates codecs in the
// container constructors and asserts null and alignment expectations in the
// backends.
//
// # Garbage Collection
//
// Words are held in unsafe.Pointer values, so the collector sees every
// referenced object. A tag never exceeds the alignment of the object it is
// packed into and therefore stays inside the allocation. Low bits set on a
// null word are carried by a private sentinel address instead, since the
// runtime rejects small non-null pointers. Immediates occupy
// only the top 16 bits of a word, above any user-space address. Validate
// rejects any layer that could set bits between bit 12 and bit 48 on a
// null word, since such a word would alias a heap address.
//
// # Example
//
//	type tagged = tagptr.Tagged[*tagptr.Shared[int], tagptr.Rc[int], tagptr.W3]
//
//	s := tagptr.NewSlot[tagptr.Pair[*tagptr.Shared[int], tagptr.W3], tagged](
//		tagptr.NewPair(tagptr.NewShared(1), tagptr.WrapBits[tagptr.W3](5)),
//	)
//	old := s.Swap(tagptr.NewPair(tagptr.NewShared(2), tagptr.WrapBits[tagptr.W3](6)))
//	// old.Tag.Value() == 5, *old.Value.Value() == 1
//	old.Value.Release()
//	s.Close()
package tagptr
