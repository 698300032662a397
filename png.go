// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventqr

/*
Bespoke PNG Encoder

The encoder emits a minimal conformant grayscale PNG without
touching image/png or compress/zlib: the pixel data travels in
stored (uncompressed) DEFLATE blocks inside a hand-built zlib
stream.  This trades file size for byte-exact, dependency-free
output that is identical on every platform.
*/

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"io"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

// PNG returns a PNG image displaying the code.
func (c *Code) PNG() []byte {
	var w pngWriter
	w.encode(c)
	return w.buf.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	var pw pngWriter
	pw.encode(c)
	_, err := pw.buf.WriteTo(w)
	return err
}

// DataURI returns the PNG image base64-wrapped as a data URI, ready
// for embedding in HTML or JSON.
func (c *Code) DataURI() string {
	return "data:image/png;base64," +
		base64.StdEncoding.EncodeToString(c.PNG())
}

// A pngWriter is a writer for PNG chunks and their zlib payload.
type pngWriter struct {
	buf   bytes.Buffer
	tmp   [13]byte
	start int
}

func (w *pngWriter) encode(c *Code) {
	dim := c.dim()
	w.buf.Grow(dim*(dim+1) + 128)

	// Header
	w.buf.WriteString(pngHeader)

	// Header chunk
	binary.BigEndian.PutUint32(w.tmp[0:4], uint32(dim))
	binary.BigEndian.PutUint32(w.tmp[4:8], uint32(dim))
	w.tmp[8] = 8  // bit depth
	w.tmp[9] = 0  // grayscale
	w.tmp[10] = 0 // deflate
	w.tmp[11] = 0 // adaptive filtering
	w.tmp[12] = 0 // no interlace
	w.writeChunk("IHDR", w.tmp[:13])

	// Data
	w.startChunk("IDAT")
	w.writeImage(c, dim)
	w.endChunk()

	// End
	w.writeChunk("IEND", nil)
}

func (w *pngWriter) writeChunk(name string, data []byte) {
	w.startChunk(name)
	w.buf.Write(data)
	w.endChunk()
}

func (w *pngWriter) startChunk(name string) {
	w.start = w.buf.Len()
	w.buf.WriteString(name)
	w.buf.WriteString(name)
}

func (w *pngWriter) endChunk() {
	b := w.buf.Bytes()[w.start:]
	binary.BigEndian.PutUint32(b, uint32(len(b)-8))
	binary.BigEndian.PutUint32(w.tmp[0:4], crc32.ChecksumIEEE(b[4:]))
	w.buf.Write(w.tmp[0:4])
}

// writeImage writes the zlib stream: a fixed 2 byte header, the
// filter-prefixed scanlines split into stored blocks of up to 65535
// bytes, and the adler32 checksum of the scanline bytes.
func (w *pngWriter) writeImage(c *Code, dim int) {
	const ftNone = 0 // scanline filter byte

	pix := c.Raster()
	raw := make([]byte, 0, dim*(dim+1))
	for y := 0; y < dim; y++ {
		raw = append(raw, ftNone)
		raw = append(raw, pix[y*dim:(y+1)*dim]...)
	}

	w.buf.WriteByte(0x78) // deflate, 32 KB window
	w.buf.WriteByte(0x01) // no dictionary, check bits
	for off := 0; ; {
		n := min(len(raw)-off, 0xffff)
		var final byte
		if off+n == len(raw) {
			final = 1
		}
		w.buf.WriteByte(final) // BFINAL, BTYPE stored
		binary.LittleEndian.PutUint16(w.tmp[0:2], uint16(n))
		binary.LittleEndian.PutUint16(w.tmp[2:4], ^uint16(n))
		w.buf.Write(w.tmp[0:4])
		w.buf.Write(raw[off : off+n])
		off += n
		if final != 0 {
			break
		}
	}

	var d adigest
	d.Reset()
	d.Write(raw)
	binary.BigEndian.PutUint32(w.tmp[0:4], d.Sum32())
	w.buf.Write(w.tmp[0:4])
}

// adigest computes the zlib adler32 checksum: two 16 bit modular
// accumulators over the byte stream.
type adigest struct {
	a, b uint32
}

const amod = 65521

func (d *adigest) Reset() { d.a, d.b = 1, 0 }

func (d *adigest) Write(p []byte) {
	for len(p) > 0 {
		// 5552 bytes is the longest run before b can overflow.
		n := min(len(p), 5552)
		for _, v := range p[:n] {
			d.a += uint32(v)
			d.b += d.a
		}
		d.a %= amod
		d.b %= amod
		p = p[n:]
	}
}

func (d *adigest) Sum32() uint32 { return d.b<<16 | d.a }
