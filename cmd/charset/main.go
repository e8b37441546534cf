// Command charset lists every character a font has a glyph for, in the text
// format font2img reads its character set from.
package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/uchidalab/font2img/glyph"
	"github.com/uchidalab/font2img/render"
)

const perLine = 64

func main() {
	var p, out, engine string
	var last int
	flag.StringVar(&p, "f", "", "Font file.")
	flag.StringVar(&out, "o", "", "Output text file, stdout if empty.")
	flag.StringVar(&engine, "engine", render.OpenType, "opentype or freetype.")
	flag.IntVar(&last, "last", 0xFFFF, "Last code point to test.")
	flag.Parse()

	if p == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := render.Open(p, engine, glyph.Grayscale)
	if err != nil {
		logrus.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if out != "" {
		fo, err := os.Create(out)
		if err != nil {
			logrus.Fatal(err)
		}
		defer fo.Close()
		w = fo
	}

	n, err := writeCovered(w, f, rune(last))
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.Infof("%s covers %d characters", p, n)
}

// writeCovered writes the graphic, visible characters up to last that f covers.
func writeCovered(w io.Writer, f *render.FontFile, last rune) (n int, err error) {
	invisible := map[rune]bool{}
	for _, c := range glyph.InvisibleChars {
		invisible[c] = true
	}

	bw := bufio.NewWriter(w)
	for c := rune(0); c <= last; c++ {
		if !unicode.IsGraphic(c) || invisible[c] || !f.Covers(c) {
			continue
		}
		bw.WriteRune(c)
		if n++; n%perLine == 0 {
			bw.WriteByte('\n')
		}
	}
	if n%perLine != 0 {
		bw.WriteByte('\n')
	}
	return n, bw.Flush()
}
