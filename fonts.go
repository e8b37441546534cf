package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/uchidalab/font2img/glyph"
)

var fontExts = []string{"ttf", "ttc", "otf", "otc"}

// FontRecord is a font file and the name its outputs are filed under.
type FontRecord struct {
	Path string
	Name string
}

func newFontRecord(path string) FontRecord {
	base := filepath.Base(path)
	return FontRecord{Path: path, Name: strings.TrimSuffix(base, filepath.Ext(base))}
}

// findFonts lists the font files in dir, sorted by path.
func findFonts(dir string, recursive bool) ([]FontRecord, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	isFont := func(name string) bool {
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		for _, e := range fontExts {
			if ext == e {
				return true
			}
		}
		return false
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isFont(d.Name()) {
				paths = append(paths, p)
			}
			return nil
		})
	} else {
		var ents []os.DirEntry
		ents, err = os.ReadDir(dir)
		for _, d := range ents {
			if !d.IsDir() && isFont(d.Name()) {
				paths = append(paths, filepath.Join(dir, d.Name()))
			}
		}
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	res := make([]FontRecord, len(paths))
	for i, p := range paths {
		res[i] = newFontRecord(p)
	}
	return res, nil
}

// loadCharset reads the character universe from a UTF-8 text file.
func loadCharset(path string, numeric bool) (*glyph.Charset, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(buf) {
		return nil, fmt.Errorf("%s is not valid UTF-8", path)
	}
	cs := glyph.NewCharset(string(buf), numeric)
	if cs.Len() == 0 {
		return nil, fmt.Errorf("%s has no visible characters", path)
	}
	return cs, nil
}
