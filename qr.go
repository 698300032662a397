// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package eventqr encodes QR codes and packages them as PNG data URIs
for embedding in event pages, posters and confirmation mails.

The encoder is self-contained: byte mode payloads, versions 1 to 5,
a single fixed mask, per-block error correction and a from-scratch
PNG serializer with stored (uncompressed) blocks.  Encoding is pure
and deterministic; any number of goroutines may encode concurrently.
*/
package eventqr

import (
	"errors"
	"image"
	"image/color"

	"github.com/zeventbooks/eventqr/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // ~7% recoverable
	M              // ~15% recoverable
	Q              // ~25% recoverable
	H              // ~30% recoverable
)

var (
	// ErrDataTooLong is returned when a payload exceeds the
	// capacity of the largest supported version at the requested
	// level.  The caller must shorten the input.
	ErrDataTooLong = coding.ErrDataTooLong

	// ErrMissingLinks is returned by EncodeLinks when either URL
	// is absent.
	ErrMissingLinks = errors.New("eventqr: missing link")
)

// Rasterisation defaults, sized for on-screen display.
const (
	DefaultScale  = 8 // image pixels per module
	DefaultMargin = 4 // quiet zone modules, the standard minimum
)

// Options control rasterisation of the encoded symbol.
type Options struct {
	Scale  int   // image pixels per module; <= 0 means DefaultScale
	Margin int   // quiet zone width in modules; < 0 means DefaultMargin
	Level  Level // error correction level; out of range means L
}

func (o *Options) scale() int {
	if o == nil || o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

func (o *Options) margin() int {
	if o == nil || o.Margin < 0 {
		return DefaultMargin
	}
	return o.Margin
}

func (o *Options) level() Level {
	if o == nil || o.Level < L || o.Level > H {
		return L
	}
	return o.Level
}

// New returns an encoding of text at the given error correction
// level, using the smallest version that fits.  The returned Code
// carries the default scale and margin; callers may adjust both
// before rasterising.
func New(text string, level Level) (*Code, error) {
	l := coding.Level(level)
	v, err := coding.VersionFor(len(text), l)
	if err != nil {
		return nil, err
	}
	m, err := coding.Encode(v, l, text)
	if err != nil {
		return nil, err
	}
	cc := m.Code()
	return &Code{cc.Bitmap, cc.Size, cc.Stride,
		DefaultScale, DefaultMargin}, nil
}

// Encode encodes text according to o and returns the PNG image as a
// data URI.  A nil o selects the defaults.  Encoding the same text
// and options twice yields identical strings.
func Encode(text string, o *Options) (string, error) {
	c, err := New(text, o.level())
	if err != nil {
		return "", err
	}
	c.Scale = o.scale()
	c.Margin = o.margin()
	return c.DataURI(), nil
}

// Links holds the two URLs printed on event material.
type Links struct {
	Event   string // public event page
	Checkin string // attendee check-in form
}

// LinkImages holds the encoded data URIs for a Links pair.
type LinkImages struct {
	Event   string
	Checkin string
}

// EncodeLinks encodes both URLs of l according to o.  It fails with
// ErrMissingLinks if either URL is empty.
func EncodeLinks(l Links, o *Options) (*LinkImages, error) {
	if l.Event == "" || l.Checkin == "" {
		return nil, ErrMissingLinks
	}
	ev, err := Encode(l.Event, o)
	if err != nil {
		return nil, err
	}
	ci, err := Encode(l.Checkin, o)
	if err != nil {
		return nil, err
	}
	return &LinkImages{Event: ev, Checkin: ci}, nil
}

// A Code is a square pixel grid with rasterisation parameters.
// It implements image.Image and direct PNG and PBM encoding.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row
	Scale  int    // image pixels per module
	Margin int    // quiet zone width in modules
}

// Black returns true if the module at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x>>3]&(1<<(7&^x)) != 0
}

// dim returns the output image edge length in pixels.
func (c *Code) dim() int {
	return (c.Size + 2*c.Margin) * c.Scale
}

// Raster returns the image as a flat 8 bit grayscale buffer of edge
// length (Size + 2*Margin) * Scale, one byte per pixel, 0 dark and
// 255 light.  Pixels outside the symbol proper are light.
func (c *Code) Raster() []byte {
	dim := c.dim()
	pix := make([]byte, dim*dim)
	for i := range pix {
		pix[i] = 255
	}
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			px := (x + c.Margin) * c.Scale
			py := (y + c.Margin) * c.Scale
			for dy := 0; dy < c.Scale; dy++ {
				row := pix[(py+dy)*dim+px:]
				for dx := 0; dx < c.Scale; dx++ {
					row[dx] = 0
				}
			}
		}
	}
	return pix
}

// Image returns an Image displaying the code.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := c.dim()
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.Black(x/c.Scale-c.Margin, y/c.Scale-c.Margin) {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}
