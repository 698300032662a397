// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"bytes"
	"testing"
)

var f = NewField(0x11d, 2)

// slowMul multiplies bit by bit, independently of the field tables.
func slowMul(a, b, poly int) int {
	p := 0
	for ; b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= a
		}
		if a <<= 1; a&0x100 != 0 {
			a ^= poly
		}
	}
	return p
}

func TestField(t *testing.T) {
	if got := f.Exp(0); got != 1 {
		t.Errorf("Exp(0) = %#x, want 1", got)
	}
	if got := f.Exp(1); got != 2 {
		t.Errorf("Exp(1) = %#x, want 2", got)
	}
	// 2**8 reduces to the low byte of the polynomial.
	if got := f.Exp(8); got != 0x1d {
		t.Errorf("Exp(8) = %#x, want 0x1d", got)
	}
	for x := 1; x < 256; x++ {
		if got := f.Exp(f.Log(byte(x))); got != byte(x) {
			t.Errorf("Exp(Log(%#x)) = %#x", x, got)
		}
	}
	if f.Log(0) != -1 {
		t.Errorf("Log(0) = %d, want -1", f.Log(0))
	}
}

func TestMul(t *testing.T) {
	for x := 0; x < 256; x += 7 {
		for y := 0; y < 256; y += 5 {
			want := byte(slowMul(x, y, 0x11d))
			if got := f.Mul(byte(x), byte(y)); got != want {
				t.Fatalf("Mul(%#x, %#x) = %#x, want %#x",
					x, y, got, want)
			}
		}
	}
}

func TestGen(t *testing.T) {
	// α-exponent coefficient tables of the published generator
	// polynomials, leading 1 omitted.  Degree 2 is small enough to
	// check by hand: (x+1)(x+2) = x² + 3x + 2, and log 3 = 25,
	// log 2 = 1.
	gens := map[int][]byte{
		2:  {25, 1},
		7:  {87, 229, 146, 149, 238, 102, 21},
		10: {251, 67, 46, 61, 118, 70, 64, 94, 32, 45},
	}
	for c, want := range gens {
		if got := f.gen(c); !bytes.Equal(got, want) {
			t.Errorf("gen(%d) = %v, want %v", c, got, want)
		}
	}
}

var eccTests = []struct {
	data  []byte
	check []byte
}{
	// Version 1-M "HELLO WORLD" in alphanumeric mode, a widely
	// published worked example.
	{
		[]byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
			0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11},
		[]byte{0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87,
			0x2c, 0x55},
	},
	// Version 1-L "HELLO WORLD 12345" in byte mode.
	{
		[]byte{0x41, 0x14, 0x84, 0x54, 0xc4, 0xc4, 0xf2, 0x05,
			0x74, 0xf5, 0x24, 0xc4, 0x42, 0x03, 0x13, 0x23,
			0x33, 0x43, 0x50},
		[]byte{0x03, 0x95, 0x9e, 0x07, 0x9f, 0x3d, 0xef},
	},
}

func TestECC(t *testing.T) {
	for i, tt := range eccTests {
		rs := NewRSEncoder(f, len(tt.check))
		check := make([]byte, len(tt.check))
		rs.ECC(tt.data, check)
		if !bytes.Equal(check, tt.check) {
			t.Errorf("#%d: ECC = %x, want %x", i, check, tt.check)
		}
	}
}

// TestSyndromes verifies the defining property of the code: the
// codeword polynomial, data followed by check bytes, evaluates to
// zero at the first c powers of the generator element.
func TestSyndromes(t *testing.T) {
	for i, tt := range eccTests {
		c := len(tt.check)
		rs := NewRSEncoder(f, c)
		check := make([]byte, c)
		rs.ECC(tt.data, check)
		cw := append(append([]byte{}, tt.data...), check...)
		for e := 0; e < c; e++ {
			var s byte
			for _, b := range cw {
				s = f.Mul(s, f.Exp(e)) ^ b
			}
			if s != 0 {
				t.Errorf("#%d: syndrome %d = %#x, want 0",
					i, e, s)
			}
		}
	}
}

func TestECCReuse(t *testing.T) {
	rs := NewRSEncoder(f, 7)
	check := make([]byte, 7)
	// A longer block first, then a shorter one: the scratch buffer
	// must not leak state between calls.
	rs.ECC(eccTests[1].data, check)
	rs.ECC(eccTests[1].data[:10], check)
	rs.ECC(eccTests[1].data, check)
	if !bytes.Equal(check, eccTests[1].check) {
		t.Errorf("ECC after reuse = %x, want %x",
			check, eccTests[1].check)
	}
}
