package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/uchidalab/font2img/glyph"
	"github.com/uchidalab/font2img/render"
)

// Converter renders every character of a Charset with every font found in
// the source directory.
type Converter struct {
	cfg    *Config
	chars  *glyph.Charset
	fonts  []FontRecord
	drawer *render.Drawer
	open   func(path string) (render.Font, error)

	failures *FailureLog
	manifest *Manifest
}

func newConverter(cfg *Config) (*Converter, error) {
	fonts, err := findFonts(cfg.FontDir, cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("find fonts: %w", err)
	}
	chars, err := loadCharset(cfg.CharsTxt, cfg.Unicode)
	if err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}
	if err := os.MkdirAll(cfg.DstDir, 0755); err != nil {
		return nil, err
	}

	cv := &Converter{
		cfg:   cfg,
		chars: chars,
		fonts: fonts,
		drawer: &render.Drawer{
			Strategy: cfg.Strategy(),
			Mode:     cfg.Mode(),
			Canvas:   cfg.CanvasSize,
			Ceiling:  cfg.MaxFontSize,
		},
		open: func(path string) (render.Font, error) {
			f, err := render.Open(path, cfg.Engine, cfg.Mode())
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
	if cv.failures, err = openFailureLog(cfg.DstDir); err != nil {
		return nil, err
	}
	if cfg.Manifest != "" {
		if cv.manifest, err = openManifest(filepath.Join(cfg.DstDir, cfg.Manifest)); err != nil {
			cv.failures.Close()
			return nil, fmt.Errorf("open manifest: %w", err)
		}
	}
	return cv, nil
}

// Close flushes the failure log and closes the manifest.
func (cv *Converter) Close() error {
	err := cv.failures.Close()
	if merr := cv.manifest.Close(); err == nil {
		err = merr
	}
	return err
}

// Run converts all fonts, then removes destination directories left empty.
func (cv *Converter) Run() error {
	logrus.Infof("%d fonts x %d characters, %v %v, canvas %dpx", len(cv.fonts), cv.chars.Len(),
		cv.drawer.Strategy, cv.drawer.Mode, cv.drawer.Canvas)

	if cv.cfg.ByChar {
		for _, name := range cv.chars.Names {
			if err := os.MkdirAll(filepath.Join(cv.cfg.DstDir, name), 0755); err != nil {
				return err
			}
		}
	}
	for i, font := range cv.fonts {
		if err := cv.convertFont(font); err != nil {
			return fmt.Errorf("%s: %w", font.Path, err)
		}
		logrus.Debugf("%d/%d fonts done", i+1, len(cv.fonts))
	}
	return removeEmptyDirs(cv.cfg.DstDir)
}

func (cv *Converter) dstPath(font FontRecord, i int) string {
	name := cv.chars.Names[i]
	if cv.cfg.ByChar {
		return filepath.Join(cv.cfg.DstDir, name, font.Name+"."+cv.cfg.Ext)
	}
	return filepath.Join(cv.cfg.DstDir, font.Name, name+"."+cv.cfg.Ext)
}

func (cv *Converter) convertFont(font FontRecord) error {
	log := logrus.WithField("font", font.Name)
	f, err := cv.open(font.Path)
	if err != nil {
		log.Errorf("skipped: %v", err)
		return nil
	}
	if !cv.cfg.ByChar {
		if err := os.MkdirAll(filepath.Join(cv.cfg.DstDir, font.Name), 0755); err != nil {
			return err
		}
	}

	var (
		blank, ceiling []rune
		records        []GlyphRecord
		prev           *glyph.Grid
		same           int
	)
	white := cv.drawer.Mode.White()
	for i, c := range cv.chars.Chars {
		res, err := cv.drawer.Render(f, c, cv.cfg.FontSize)
		if errors.Is(err, glyph.ErrGlyphNeverFillsCanvas) {
			log.WithField("char", string(c)).Error(err)
			ceiling = append(ceiling, c)
			prev = nil
			continue
		}
		if err != nil {
			return fmt.Errorf("render %q: %w", c, err)
		}

		last := prev
		prev = res.Grid
		if glyph.IsBlank(res.Grid, white) {
			blank = append(blank, c)
			continue
		}
		if last != nil && glyph.Identical(res.Grid, last) {
			same++
		}

		path := cv.dstPath(font, i)
		if err := writeGlyph(path, res.Grid, cv.drawer.Mode, cv.cfg.Ext); err != nil {
			return err
		}
		records = append(records, GlyphRecord{
			Char: c,
			Size: res.Size,
			X:    res.Offset.X,
			Y:    res.Offset.Y,
			Name: cv.chars.Names[i],
			Path: path,
		})
	}

	var lines []string
	if len(blank) > 0 {
		if err := cv.failures.Chars(font.Name, reasonBlank, blank); err != nil {
			return err
		}
		lines = append(lines, reasonBlank+","+formatChars(blank))
	}
	if len(ceiling) > 0 {
		if err := cv.failures.Chars(font.Name, reasonCeiling, ceiling); err != nil {
			return err
		}
		lines = append(lines, reasonCeiling+","+formatChars(ceiling))
	}

	// Every glyph equal to its predecessor means the font drew the same
	// placeholder for all of them. A one-character set always matches.
	if n := cv.chars.Len(); same == n-1 {
		for _, r := range records {
			if err := os.Remove(r.Path); err != nil {
				return err
			}
		}
		records = nil
		if err := cv.failures.Duplicate(font.Name); err != nil {
			return err
		}
		lines = append(lines, reasonDuplicate)
		log.Warnf("all %d glyphs are identical, removed", n)
	} else {
		log.Infof("%d written, %d blank, %d over ceiling", len(records), len(blank), len(ceiling))
	}

	return cv.manifest.Commit(font.Name, records, lines)
}

func writeGlyph(path string, g *glyph.Grid, mode glyph.Mode, ext string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := glyph.Encode(out, g, mode, ext); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// removeEmptyDirs deletes the empty directories directly under dir.
func removeEmptyDirs(dir string) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		sub, err := os.ReadDir(p)
		if err != nil {
			return err
		}
		if len(sub) == 0 {
			if err := os.Remove(p); err != nil {
				return err
			}
		}
	}
	return nil
}
