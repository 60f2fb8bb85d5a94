// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

import "fmt"

// Resource handling shared by the containers and the composite codecs.
// A value is released through its codec when the codec implements Releaser;
// otherwise dropping it is left to the garbage collector.

// releaseValue gives back the resource held by an owned v.
func releaseValue[T any, C Codec[T]](v T) {
	var c C
	if r, ok := any(c).(Releaser[T]); ok {
		r.Release(v)
	}
}

// cloneValue duplicates v through its codec.
// Panics if C does not implement Cloner.
func cloneValue[T any, C Codec[T]](v T) T {
	var c C
	if cl, ok := any(c).(Cloner[T]); ok {
		return cl.Clone(v)
	}
	panic(fmt.Sprintf("tagptr: %T cannot clone values", c))
}

// takeOwned decodes w and asserts ownership of the result.
func takeOwned[T any, C Codec[T]](w Word) T {
	var c C
	return c.Decode(w).AssumeOwned()
}

// peekWord decodes w without asserting ownership.
func peekWord[T any, C Codec[T]](w Word) T {
	var c C
	return c.Decode(w).Peek()
}
