// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventqr

import (
	"io"
	"strings"
)

// String renders the code for a dark terminal using half-height
// block characters, light modules as blocks, two rows per line.
// The quiet zone is rendered at c.Margin width; Scale is ignored.
func (c *Code) String() string {
	var b strings.Builder
	m := c.Margin
	b.Grow((c.Size + 2*m + 1) * (c.Size + 2*m + 1) * 3 / 2)
	for y := -m; y < c.Size+m; y += 2 {
		for x := -m; x < c.Size+m; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if c.Black(x, y+1) {
				n++
			}
			b.WriteString([4]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// EncodeUTF8 writes the half-height block rendering to w.
func (c *Code) EncodeUTF8(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

// EncodeASCII writes an ASCII rendering to w, two '#' characters
// per dark module.
func (c *Code) EncodeASCII(w io.Writer) error {
	m := c.Margin
	pix := c.Size + 2*m
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -m; y < c.Size+m; y++ {
		for x := -m; x < c.Size+m; x++ {
			var p byte = ' '
			if c.Black(x, y) {
				p = '#'
			}
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
