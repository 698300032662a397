// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventqr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to
// w, for use with netpbm.
func (c *Code) EncodePBM(w io.Writer) error {
	b := bufio.NewWriter(w)
	length := c.dim()
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	for py := 0; py < length; py++ {
		if py%c.Scale == 0 {
			for i := range row {
				row[i] = 0
			}
			y := py/c.Scale - c.Margin
			for px := 0; px < length; px++ {
				if c.Black(px/c.Scale-c.Margin, y) {
					row[px>>3] |= 0x80 >> (px & 7)
				}
			}
		}
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}
