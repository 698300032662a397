// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon error correction codes over it.
package gf256

import "strconv"

// A Field represents an instance of GF(256) defined by a reducing
// polynomial and a generator element α.  Once built, a Field is
// immutable and safe for concurrent use.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[i] = α**i; doubled to avoid log sums wrapping
}

// NewField returns a new field corresponding to the given reducing
// polynomial and generator element.  NewField panics if the
// polynomial is out of range or α does not generate the field.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: element is not a generator")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	if x != 1 {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	f.log[0] = 255
	return &f
}

// mul multiplies a and b modulo poly, bit by bit.  It is only used
// to build the field tables; Field.Mul runs off the tables.
func mul(a, b, poly int) int {
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

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Exp returns α**e in the field.
func (f *Field) Exp(e int) byte { return f.exp[e%255] }

// Log returns log base α of x in the field, or -1 for x == 0.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// An RSEncoder computes Reed-Solomon check bytes over a field.
// An RSEncoder is not safe for concurrent use.
type RSEncoder struct {
	f    *Field
	c    int
	lgen []byte // log of generator coefficients, leading 1 omitted
	p    []byte // scratch buffer
}

// NewRSEncoder returns an encoder computing c check bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, lgen: f.gen(c)}
}

// gen returns the log of the coefficients of the generator
// polynomial of degree c, the product (x - α**0)...(x - α**(c-1)),
// built by repeated multiplication.  The leading coefficient is
// always 1 and is omitted.
func (f *Field) gen(c int) []byte {
	g := make([]byte, 1, c+1)
	g[0] = 1
	for i := 0; i < c; i++ {
		// multiply g by (x - α**i)
		g = append(g, 0)
		ai := f.exp[i]
		for j := len(g) - 1; j > 0; j-- {
			g[j] = f.Mul(g[j-1], ai) ^ g[j]
		}
	}
	lg := make([]byte, c)
	for i, v := range g[1:] {
		lg[i] = f.log[v]
	}
	return lg
}

// ECC writes to check the error correcting code bytes for data,
// the remainder of data times x**c under the generator polynomial,
// computed by shift-and-XOR division.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}

	// p = data padded with c zero bytes.
	var p []byte
	n := len(data) + rs.c
	if len(rs.p) >= n {
		p = rs.p[:n]
	} else {
		p = make([]byte, n)
		rs.p = p
	}
	copy(p, data)
	for i := len(data); i < len(p); i++ {
		p[i] = 0
	}

	// Divide p by the generator, leaving the remainder in its tail.
	f := rs.f
	lgen := rs.lgen
	for i := 0; i < len(data); i++ {
		c := p[i]
		if c == 0 {
			continue
		}
		q := p[i+1:]
		exp := f.exp[f.log[c]:]
		for j, lg := range lgen {
			q[j] ^= exp[lg]
		}
	}
	copy(check, p[len(data):])
	for i := rs.c; i < len(check); i++ {
		check[i] = 0
	}
}
