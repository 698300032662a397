// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: capacity
// tables, byte mode codeword streams, error correction and symbol
// matrix construction.
//
// The package supports versions 1 through 5 in byte mode with a
// single error correction block per symbol.  Version and level
// combinations that the QR standard splits into multiple blocks are
// not available, as the codewords of a multi-block symbol must be
// interleaved to be readable.
package coding

import (
	"errors"
	"strconv"

	"github.com/zeventbooks/eventqr/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")

	// ErrDataTooLong is returned when a payload does not fit the
	// largest supported version at the requested level.
	ErrDataTooLong = errors.New("qr: data too long for any supported version")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
type Version int

const (
	MinVersion Version = 1 // Minimum QR version
	MaxVersion Version = 5 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

func (v Version) valid() bool {
	return MinVersion <= v && v <= MaxVersion
}

// Size returns the edge length in modules of a QR code with version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// DataBytes returns the number of data codewords that can be stored
// in a QR code with the given version and level, or 0 if the
// combination is not available.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	if lev.nblock == 0 {
		return 0
	}
	return vt.bytes - lev.nblock*lev.check
}

// Capacity returns the byte mode payload capacity of a QR code with
// the given version and level, or 0 if the combination is not
// available.  The mode indicator and length field cost 12 bits and
// the terminator claims the remaining 4 bits of the second codeword.
func (v Version) Capacity(l Level) int {
	if n := v.DataBytes(l); n != 0 {
		return n - 2
	}
	return 0
}

// VersionFor returns the smallest version that fits a payload of n
// bytes at the given level.  It returns ErrDataTooLong when no
// supported version qualifies.
func VersionFor(n int, l Level) (Version, error) {
	if l < L || l > H {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if n <= v.Capacity(l) && vtab[v].level[l].nblock != 0 {
			return v, nil
		}
	}
	return 0, ErrDataTooLong
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// A version describes metadata associated with a version.
type version struct {
	apos  int // alignment pattern centre coordinate, 0 for none
	bytes int // total codewords
	level [4]level
}

type level struct {
	nblock int // error correction blocks, 0 if unavailable
	check  int // check bytes per block
}

// vtab lists the supported versions.  Combinations needing more
// than one error correction block carry nblock 0: without codeword
// interleaving they would not decode.
var vtab = [...]version{
	{},
	{0, 26, [4]level{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	{18, 44, [4]level{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	{22, 70, [4]level{{1, 15}, {1, 26}, {0, 0}, {0, 0}}},
	{26, 100, [4]level{{1, 20}, {0, 0}, {0, 0}, {0, 0}}},
	{30, 134, [4]level{{1, 26}, {0, 0}, {0, 0}, {0, 0}}},
}

// Bits is a bit stream being built up.
type Bits struct {
	b    []byte
	nbit int
}

func (b *Bits) Bits() int { return b.nbit }

func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v to b, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// PadTo adds up to t terminator bits to b, rounds it up to a byte
// boundary with zero bits and fills it with alternating pad bytes
// up to n bytes.
func (b *Bits) PadTo(t, n int) {
	if k := min(t, n*8-b.nbit); k > 0 {
		b.Write(0, k)
	}
	if k := -b.nbit & 7; k != 0 {
		b.Write(0, k)
	}
	for i := 0; len(b.b) < n; i++ {
		b.b = append(b.b, [2]byte{0xec, 0x11}[i&1])
	}
	b.nbit = len(b.b) * 8
}

// AddCheckBytes terminates and pads b to the data codeword capacity
// of the given version and level and appends the check bytes of each
// block.  Blocks are laid out in order, data then checks, with no
// interleaving.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	vt := &vtab[v]
	lev := vt.level[l]
	nd := vt.bytes - lev.nblock*lev.check
	if b.nbit > nd*8 {
		panic("qr: too much data")
	}
	b.PadTo(4, nd)

	rs := gf256.NewRSEncoder(Field, lev.check)
	dat := b.Bytes()
	db := nd / lev.nblock
	for i := 0; i < lev.nblock; i++ {
		check := make([]byte, lev.check)
		rs.ECC(dat[i*db:(i+1)*db], check)
		b.b = append(b.b, check...)
	}
	b.nbit = len(b.b) * 8

	if len(b.b) != vt.bytes {
		panic("qr: internal error")
	}
}

// Codewords returns the complete codeword stream, data and checks,
// for text encoded in byte mode at the given version and level.
func Codewords(text string, v Version, l Level) ([]byte, error) {
	if !v.valid() {
		return nil, ErrVersion
	}
	if l < L || l > H || vtab[v].level[l].nblock == 0 {
		return nil, ErrLevel
	}
	if len(text) > v.Capacity(l) {
		return nil, ErrDataTooLong
	}
	var b Bits
	b.Write(4, 4) // byte mode indicator
	b.Write(uint32(len(text)), 8)
	for i := 0; i < len(text); i++ {
		b.Write(uint32(text[i]), 8)
	}
	b.AddCheckBytes(v, l)
	return b.Bytes(), nil
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}

// Encode encodes text in byte mode at the given version and level
// and returns the finished symbol matrix.
func Encode(v Version, l Level, text string) (*Matrix, error) {
	cw, err := Codewords(text, v, l)
	if err != nil {
		return nil, err
	}
	m := NewMatrix(v)
	m.Place(NewBitStream(cw))
	m.Mask()
	m.Format(l)
	return m, nil
}
