// Command sheet tiles the glyph images of one output directory into a single
// PNG contact sheet for eyeballing a font.
package main

import (
	"flag"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/chai2010/webp"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func main() {
	var dir, out string
	var dim, cols int
	flag.StringVar(&dir, "d", "", "Directory of glyph images.")
	flag.StringVar(&out, "o", "sheet.png", "Output PNG.")
	flag.IntVar(&dim, "dim", 32, "Thumbnail size[pixel].")
	flag.IntVar(&cols, "n", 40, "Thumbnails per row.")
	flag.Parse()

	if dir == "" || dim <= 0 || cols <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		logrus.Fatal(err)
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })

	var thumbs []image.Image
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		img, err := decodeFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logrus.Infof("skip %s: %v", e.Name(), err)
			continue
		}
		thumbs = append(thumbs, resize.Resize(uint(dim), uint(dim), img, resize.Bicubic))
	}
	if len(thumbs) == 0 {
		logrus.Fatalf("no images in %s", dir)
	}

	rows := (len(thumbs) + cols - 1) / cols
	if len(thumbs) < cols {
		cols = len(thumbs)
	}
	canvas := image.NewGray(image.Rect(0, 0, dim*cols, dim*rows))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	for i, t := range thumbs {
		x, y := i%cols, i/cols
		draw.Draw(canvas, image.Rect(x*dim, y*dim, x*dim+dim, y*dim+dim), t, t.Bounds().Min, draw.Src)
	}

	f, err := os.Create(out)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := png.Encode(f, canvas); err != nil {
		logrus.Fatal(err)
	}
	if err := f.Close(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Infof("%d glyphs from %s written to %s", len(thumbs), dir, out)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
