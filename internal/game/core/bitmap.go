package core

import (
	"fmt"
	"math/bits"
	"strings"
)

// bitmapPadding is the number of unused high bits in the 128-bit storage
const bitmapPadding = 128 - NumCells

// Bitmap is a 100-bit occupancy set indexed by Coordinate.ToIndex.
// Bits 0..63 live in the first word, bits 64..99 in the low 36 bits of the second.
// The zero value is an empty board. Bitmaps are values and compare with ==.
type Bitmap struct {
	w [2]uint64
}

// NewBitmap returns an empty bitmap
func NewBitmap() Bitmap {
	return Bitmap{}
}

// Set sets or clears the bit at idx. idx must be below NumCells.
func (b *Bitmap) Set(idx int, val bool) {
	if idx < 0 || idx >= NumCells {
		panic(fmt.Sprintf("bitmap index %d out of range", idx))
	}
	word, bit := idx>>6, uint(idx&63)
	if val {
		b.w[word] |= 1 << bit
	} else {
		b.w[word] &^= 1 << bit
	}
}

// Get reports whether the bit at idx is set. idx must be below NumCells.
func (b Bitmap) Get(idx int) bool {
	if idx < 0 || idx >= NumCells {
		panic(fmt.Sprintf("bitmap index %d out of range", idx))
	}
	return b.w[idx>>6]&(1<<uint(idx&63)) != 0
}

// Has is shorthand for Get(c.ToIndex())
func (b Bitmap) Has(c Coordinate) bool {
	return b.Get(c.ToIndex())
}

// Reversed returns the point reflection of the board: bit i of the result is bit 99-i of b.
func (b Bitmap) Reversed() Bitmap {
	// Reverse all 128 bits, which sends i to 127-i, then shift right by the padding.
	hi := bits.Reverse64(b.w[0])
	lo := bits.Reverse64(b.w[1])

	return Bitmap{w: [2]uint64{
		lo>>bitmapPadding | hi<<(64-bitmapPadding),
		hi >> bitmapPadding,
	}}
}

// Count returns the number of set bits
func (b Bitmap) Count() int {
	return bits.OnesCount64(b.w[0]) + bits.OnesCount64(b.w[1])
}

// IsEmpty reports whether no bit is set
func (b Bitmap) IsEmpty() bool {
	return b.w[0] == 0 && b.w[1] == 0
}

// Indices returns the set bit indices in ascending order
func (b Bitmap) Indices() []int {
	out := make([]int, 0, b.Count())
	for word := 0; word < 2; word++ {
		w := b.w[word]
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, word*64+tz)
			w &= w - 1
		}
	}
	return out
}

// String renders the bitmap as ten rows of '1' and '.'
func (b Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Get(y*BoardSize + x) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
