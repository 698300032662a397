// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Cell is one module of the symbol grid.
type Cell byte

const (
	Light Cell = iota
	Dark
	Unset
)

// A Matrix is a square grid of tri-state cells paired with a
// reserved mask covering function patterns and format regions.
// Reserved cells are never touched by data placement or masking.
type Matrix struct {
	Version Version
	Size    int
	cell    []Cell
	res     []bool
}

// NewMatrix returns the matrix for version v with all function
// patterns drawn and all reserved regions marked: finder patterns
// with separators, the alignment pattern of versions 2 and up,
// timing strips, the dark module and the two format regions.
// The format regions are reserved but left unset until Format.
func NewMatrix(v Version) *Matrix {
	siz := v.Size()
	m := &Matrix{
		Version: v,
		Size:    siz,
		cell:    make([]Cell, siz*siz),
		res:     make([]bool, siz*siz),
	}
	for i := range m.cell {
		m.cell[i] = Unset
	}

	m.posBox(0, 0)
	m.posBox(siz-7, 0)
	m.posBox(0, siz-7)
	if apos := vtab[v].apos; apos != 0 {
		m.alignBox(apos, apos)
	}

	// Timing strips along row 6 and column 6.
	for i := 0; i < siz; i++ {
		c := Light
		if i%2 == 0 {
			c = Dark
		}
		if !m.Reserved(i, 6) {
			m.set(i, 6, c)
		}
		if !m.Reserved(6, i) {
			m.set(6, i, c)
		}
	}

	for i := 0; i < 15; i++ {
		ax, ay, bx, by := m.formatPos(i)
		m.res[ay*siz+ax] = true
		m.res[by*siz+bx] = true
	}
	m.set(8, siz-8, Dark) // dark module

	return m
}

// At returns the cell at column x, row y, Light outside the matrix.
func (m *Matrix) At(x, y int) Cell {
	if x < 0 || x >= m.Size || y < 0 || y >= m.Size {
		return Light
	}
	return m.cell[y*m.Size+x]
}

// Reserved reports whether the cell at column x, row y holds a
// function pattern or format information.
func (m *Matrix) Reserved(x, y int) bool {
	return 0 <= x && x < m.Size && 0 <= y && y < m.Size &&
		m.res[y*m.Size+x]
}

// set writes a function pattern cell and marks it reserved.
func (m *Matrix) set(x, y int, c Cell) {
	m.cell[y*m.Size+x] = c
	m.res[y*m.Size+x] = true
}

// posBox draws a finder pattern with upper left corner at x, y,
// along with its one-module separator ring.
func (m *Matrix) posBox(x, y int) {
	for dy := -1; dy < 8; dy++ {
		for dx := -1; dx < 8; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= m.Size || yy < 0 || yy >= m.Size {
				continue
			}
			c := Light
			if 0 <= dx && dx <= 6 && 0 <= dy && dy <= 6 &&
				(dx == 0 || dx == 6 || dy == 0 || dy == 6 ||
					2 <= dx && dx <= 4 && 2 <= dy && dy <= 4) {
				c = Dark
			}
			m.set(xx, yy, c)
		}
	}
}

// alignBox draws an alignment pattern centred at x, y.
func (m *Matrix) alignBox(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			c := Light
			if dx == -2 || dx == 2 || dy == -2 || dy == 2 ||
				dx == 0 && dy == 0 {
				c = Dark
			}
			m.set(x+dx, y+dy, c)
		}
	}
}

// formatPos returns the two positions of format bit i, low bit first:
// one in the region wrapped around the top left finder pattern, one
// split between the top right and bottom left ones.
func (m *Matrix) formatPos(i int) (ax, ay, bx, by int) {
	siz := m.Size
	switch {
	case i < 6:
		ax, ay = 8, i
	case i < 8:
		ax, ay = 8, i+1
	case i == 8:
		ax, ay = 7, 8
	default:
		ax, ay = 14-i, 8
	}
	if i < 8 {
		bx, by = siz-1-i, 8
	} else {
		bx, by = 8, siz-1-(14-i)
	}
	return
}

// Place writes bits from s into the non-reserved cells, most
// significant bit first, walking two-column bands from the right
// edge to the left, alternating sweep direction per band and
// shifting around the vertical timing column.  Bits past the end of
// s read as zero, filling the remainder cells of versions 2 and up.
func (m *Matrix) Place(s BitStream) {
	siz := m.Size
	up := true
	for x := siz; x > 0; {
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for _, xx := range [2]int{x - 1, x - 2} {
				if m.res[y*siz+xx] {
					continue
				}
				c := Light
				if s.Next() != 0 {
					c = Dark
				}
				m.cell[y*siz+xx] = c
			}
		}
		x -= 2
		if x == 7 { // vertical timing column
			x--
		}
		up = !up
	}
}

// Mask applies mask pattern 0, inverting every non-reserved cell
// whose row and column sum is even.
func (m *Matrix) Mask() {
	for y := 0; y < m.Size; y++ {
		for x := y & 1; x < m.Size; x += 2 {
			if i := y*m.Size + x; !m.res[i] {
				m.cell[i] ^= 1
			}
		}
	}
}

// Format writes both copies of the 15 bit format descriptor for the
// given level and mask 0.
func (m *Matrix) Format(l Level) {
	fb := formatBits(l, 0)
	for i := 0; i < 15; i++ {
		c := Light
		if fb>>i&1 != 0 {
			c = Dark
		}
		ax, ay, bx, by := m.formatPos(i)
		m.cell[ay*m.Size+ax] = c
		m.cell[by*m.Size+bx] = c
	}
}

// formatBits returns the format descriptor for an error correction
// level and mask: the 5 information bits extended with a BCH
// remainder over polynomial 0x537, XORed with the fixed mask 0x5412.
func formatBits(l Level, mask int) uint32 {
	fb := uint32(l^1)<<13 | uint32(mask)<<10
	rem := fb
	for i := 14; i >= 10; i-- {
		if rem&(1<<i) != 0 {
			rem ^= 0x537 << (i - 10)
		}
	}
	return (fb | rem) ^ 0x5412
}

// A Code is a square pixel grid.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x>>3]&(1<<(7&^x)) != 0
}

// Code returns the matrix packed into a 1-bit bitmap.
func (m *Matrix) Code() *Code {
	stride := (m.Size + 7) >> 3
	c := &Code{
		Bitmap: make([]byte, m.Size*stride),
		Size:   m.Size,
		Stride: stride,
	}
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if m.cell[y*m.Size+x] == Dark {
				c.Bitmap[y*stride+x>>3] |= 0x80 >> (x & 7)
			}
		}
	}
	return c
}
