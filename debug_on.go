// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build tagptr_debug

package tagptr

// debugChecks enables assertions on null and alignment expectations,
// and codec validation in constructors.
const debugChecks = true
