// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tagptr

// Width is a tag width in bits, carried as a type so that codecs stay
// zero-size. W1 through W16 are provided.
type Width interface {
	Width() uint
}

type (
	W1  struct{}
	W2  struct{}
	W3  struct{}
	W4  struct{}
	W5  struct{}
	W6  struct{}
	W7  struct{}
	W8  struct{}
	W9  struct{}
	W10 struct{}
	W11 struct{}
	W12 struct{}
	W13 struct{}
	W14 struct{}
	W15 struct{}
	W16 struct{}
)

func (W1) Width() uint  { return 1 }
func (W2) Width() uint  { return 2 }
func (W3) Width() uint  { return 3 }
func (W4) Width() uint  { return 4 }
func (W5) Width() uint  { return 5 }
func (W6) Width() uint  { return 6 }
func (W7) Width() uint  { return 7 }
func (W8) Width() uint  { return 8 }
func (W9) Width() uint  { return 9 }
func (W10) Width() uint { return 10 }
func (W11) Width() uint { return 11 }
func (W12) Width() uint { return 12 }
func (W13) Width() uint { return 13 }
func (W14) Width() uint { return 14 }
func (W15) Width() uint { return 15 }
func (W16) Width() uint { return 16 }

func widthOf[W Width]() uint {
	var w W
	return w.Width()
}

func checkWidth(n uint) bool {
	return n >= 1 && n <= immediateBits
}
