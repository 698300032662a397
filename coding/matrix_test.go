// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dump renders m with '#' for dark and '.' for light, one row per line.
func dump(m *Matrix) string {
	var sb strings.Builder
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if m.At(x, y) == Dark {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var golden1L = strings.Join([]string{
	"#######..###..#######",
	"#.....#..#.#..#.....#",
	"#.###.#.#.##..#.###.#",
	"#.###.#...##..#.###.#",
	"#.###.#..###..#.###.#",
	"#.....#....#..#.....#",
	"#######.#.#.#.#######",
	"........##.##........",
	"###.#####.#.###...#..",
	"#.##....##..#.##...#.",
	"##.#..###.#.##.######",
	"#.#.#..#.#......#..#.",
	".##..##.##..#####.#..",
	"........###.##....##.",
	"#######.###.#..##.###",
	"#.....#.#..#...#.....",
	"#.###.#.###.#.#.#.#.#",
	"#.###.#..####.###.#..",
	"#.###.#.###.#.#.#.#.#",
	"#.....#.#.##....#..#.",
	"#######.#..##.##..###",
	"",
}, "\n")

var golden2M = strings.Join([]string{
	"#######...#.####..#######",
	"#.....#.#...#.###.#.....#",
	"#.###.#..#..#..##.#.###.#",
	"#.###.#..#.#..##..#.###.#",
	"#.###.#.###.####..#.###.#",
	"#.....#..#..####..#.....#",
	"#######.#.#.#.#.#.#######",
	".........#...##.#........",
	"#.#.#.#..#..#####...#..#.",
	"..#.##.#..#.......#.....#",
	".######.#.#..#.....##.###",
	"...#....#.########.....#.",
	"#..#####..#.##..###..#.##",
	".#.###.#...###..###..#..#",
	"#.##..#.#####...#.##..###",
	".#...#.#.##.#####...#..#.",
	"#..##.#..#.#.#########...",
	"........#..#...##...##.##",
	"#######..#...#.##.#.##.##",
	"#.....#..#.#.##.#...##..#",
	"#.###.#.###.###.######.##",
	"#.###.#....#####...####..",
	"#.###.#.#####.#.#...#...#",
	"#.....#..#..###.#.#.##.#.",
	"#######.#.###.######...##",
	"",
}, "\n")

func TestEncodeGolden(t *testing.T) {
	m, err := Encode(1, L, "HELLO WORLD 12345")
	require.NoError(t, err)
	assert.Equal(t, golden1L, dump(m))

	m, err = Encode(2, M, "https://example.com/e/1")
	require.NoError(t, err)
	assert.Equal(t, golden2M, dump(m))
}

func TestEncodeComplete(t *testing.T) {
	// Every cell is decided once placement, masking and format
	// writing are done; versions 2 and up exercise the remainder
	// bits past the end of the codeword stream.
	for v := MinVersion; v <= MaxVersion; v++ {
		m, err := Encode(v, L, "remainder")
		require.NoError(t, err)
		for i, c := range m.cell {
			require.NotEqual(t, Unset, c,
				"version %v cell %d unset", v, i)
		}
	}
}

func TestFunctionPatternsUntouched(t *testing.T) {
	m, err := Encode(2, M, "function patterns")
	require.NoError(t, err)
	fresh := NewMatrix(2)

	assert.Equal(t, fresh.res, m.res)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if !fresh.Reserved(x, y) || fresh.At(x, y) == Unset {
				continue
			}
			assert.Equal(t, fresh.At(x, y), m.At(x, y),
				"function cell (%d,%d)", x, y)
		}
	}
}

func TestTimingPattern(t *testing.T) {
	m := NewMatrix(3)
	for i := 8; i < m.Size-8; i++ {
		want := Light
		if i%2 == 0 {
			want = Dark
		}
		assert.Equal(t, want, m.At(i, 6), "row timing at %d", i)
		assert.Equal(t, want, m.At(6, i), "column timing at %d", i)
	}
}

func TestDarkModule(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		m := NewMatrix(v)
		assert.Equal(t, Dark, m.At(8, m.Size-8), "version %v", v)
		assert.True(t, m.Reserved(8, m.Size-8))
	}
}

// readFormat reads back the 15 format bits from one of the two copies.
func readFormat(m *Matrix, second bool) uint32 {
	var fb uint32
	for i := 0; i < 15; i++ {
		ax, ay, bx, by := m.formatPos(i)
		x, y := ax, ay
		if second {
			x, y = bx, by
		}
		if m.At(x, y) == Dark {
			fb |= 1 << i
		}
	}
	return fb
}

func TestFormatCopies(t *testing.T) {
	for l := L; l <= H; l++ {
		m, err := Encode(2, l, "format")
		require.NoError(t, err)
		a, b := readFormat(m, false), readFormat(m, true)
		assert.Equal(t, a, b, "level %v", l)
		assert.Equal(t, formatBits(l, 0), a, "level %v", l)
		// stripping the fixed XOR mask recovers the raw fields
		raw := a ^ 0x5412
		assert.Equal(t, uint32(l)^1, raw>>13, "level %v", l)
		assert.Equal(t, uint32(0), raw>>10&7, "mask bits, level %v", l)
	}
}

func TestAtOutside(t *testing.T) {
	m := NewMatrix(1)
	assert.Equal(t, Light, m.At(-1, 0))
	assert.Equal(t, Light, m.At(0, 21))
	assert.False(t, m.Reserved(-1, -1))
}

func TestCodeBlack(t *testing.T) {
	m, err := Encode(1, L, "HELLO WORLD 12345")
	require.NoError(t, err)
	c := m.Code()
	assert.Equal(t, 21, c.Size)
	assert.Equal(t, 3, c.Stride)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			assert.Equal(t, m.At(x, y) == Dark, c.Black(x, y),
				"pixel (%d,%d)", x, y)
		}
	}
	assert.False(t, c.Black(-1, 0))
	assert.False(t, c.Black(0, 21))
}
