// Copyright 2026 Zeventbooks.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Eventqr encodes text as a QR code.
//
// With -L, the two arguments are treated as an event page link and a
// check-in link, producing a pair of images with "-01" and "-02"
// appended to the output filename before the suffix.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"syscall"

	"github.com/zeventbooks/eventqr"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/text/encoding/charmap"
)

var g = struct {
	scale  int           // image pixels per module
	margin int           // quiet zone
	lev    eventqr.Level // QR correction level
	fn     string        // output filename
	fext   string        // filename suffix, split off for -L
	format int           // output file format
	latin1 bool          // convert input to Latin-1
	links  bool          // encode an event/check-in link pair
}{}

var formats = []string{"png", "pbm", "uri", "utf8", "ascii"}

var encoders = [...]func(*eventqr.Code, io.Writer) error{
	(*eventqr.Code).EncodePNG,
	(*eventqr.Code).EncodePBM,
	func(c *eventqr.Code, w io.Writer) error {
		_, err := fmt.Fprintln(w, c.DataURI())
		return err
	},
	(*eventqr.Code).EncodeUTF8,
	(*eventqr.Code).EncodeASCII,
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	getopt.PrintUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	getopt.PrintUsage(os.Stdout)
	os.Exit(0)
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.SetParameters("[string ...]")
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(&g.latin1, '1',
		"convert input to Latin-1 before encoding")
	getopt.Flag(&g.links, 'L', "treat the two arguments as event "+
		"and check-in links and encode both")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', eventqr.DefaultScale,
		&getopt.UnsignedLimit{Base: 0, Bits: 12, Min: 1, Max: 256},
		"image pixels per QR module; ignored for types utf8 "+
			"and ascii", "scale")
	margin := getopt.Unsigned('m', eventqr.DefaultMargin,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 64},
		"quiet zone width in modules", "margin")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	g.scale = int(*scale)
	g.margin = int(*margin)
	g.lev = eventqr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	args := getopt.Args()
	if g.links {
		if len(args) != 2 {
			log.Fatalln("-L needs exactly two arguments")
		}
		g.fext = path.Ext(g.fn)
		g.fn = g.fn[:len(g.fn)-len(g.fext)]
		for i, s := range args {
			if s == "" {
				log.Fatalln(eventqr.ErrMissingLinks)
			}
			write(i, encode(s))
		}
		return
	}

	var s string
	if len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	write(-1, encode(s))
}

func encode(s string) *eventqr.Code {
	if g.latin1 {
		t, err := charmap.ISO8859_1.NewEncoder().String(s)
		if err != nil {
			log.Fatalln("input not representable in Latin-1")
		}
		s = t
	}
	c, err := eventqr.New(s, g.lev)
	if err != nil {
		log.Fatalln(err)
	}
	c.Scale = g.scale
	c.Margin = g.margin
	return c
}

func write(i int, c *eventqr.Code) {
	fn := g.fn
	open := fn != "" || g.fext != ""
	var w = os.Stdout
	if open {
		if i >= 0 {
			fn = fmt.Sprintf("%s-%02d%s", fn, i+1, g.fext)
		}
		var err error
		if w, err = os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	err := encoders[g.format](c, w)
	if open && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}
