package main

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/coyove/bbolt"
)

var failureBucket = []byte("failure")

// GlyphRecord describes one written glyph image.
type GlyphRecord struct {
	Char rune
	Size int
	X, Y int
	Name string
	Path string
}

func (r GlyphRecord) Marshal() (out []byte) {
	out = binary.BigEndian.AppendUint32(out, uint32(r.Char))
	out = binary.BigEndian.AppendUint32(out, uint32(r.Size))
	out = binary.BigEndian.AppendUint32(out, uint32(int32(r.X)))
	out = binary.BigEndian.AppendUint32(out, uint32(int32(r.Y)))
	out = binary.AppendUvarint(out, uint64(len(r.Name)))
	out = append(out, r.Name...)
	out = binary.AppendUvarint(out, uint64(len(r.Path)))
	out = append(out, r.Path...)
	return
}

func (r *GlyphRecord) Unmarshal(p []byte) error {
	if len(p) < 16 {
		return fmt.Errorf("glyph record too short: %d bytes", len(p))
	}
	r.Char, p = rune(binary.BigEndian.Uint32(p)), p[4:]
	r.Size, p = int(binary.BigEndian.Uint32(p)), p[4:]
	r.X, p = int(int32(binary.BigEndian.Uint32(p))), p[4:]
	r.Y, p = int(int32(binary.BigEndian.Uint32(p))), p[4:]

	for _, s := range []*string{&r.Name, &r.Path} {
		n, w := binary.Uvarint(p)
		if w <= 0 || uint64(len(p)-w) < n {
			return fmt.Errorf("glyph record truncated")
		}
		p = p[w:]
		*s = string(p[:n])
		p = p[n:]
	}
	return nil
}

func charKey(c rune) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(c))
}

func fontBucket(font string) []byte {
	return []byte("font-" + font)
}

// Manifest indexes every glyph written by a run together with the point size
// and offset it was rendered with. Re-running over the same destination
// replaces a font's entries instead of appending to them. A nil *Manifest
// discards everything.
type Manifest struct {
	db *bbolt.DB
}

func openManifest(path string) (*Manifest, error) {
	db, err := bbolt.Open(path, 0644, &bbolt.Options{
		Timeout:      time.Second,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, err
	}
	return &Manifest{db: db}, nil
}

// Commit replaces everything recorded for font. An empty failures removes
// the font from the failure bucket.
func (m *Manifest) Commit(font string, glyphs []GlyphRecord, failures []string) error {
	if m == nil {
		return nil
	}
	tx, err := m.db.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	name := fontBucket(font)
	if tx.Bucket(name) != nil {
		if err := tx.DeleteBucket(name); err != nil {
			return err
		}
	}
	if len(glyphs) > 0 {
		bk, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for _, g := range glyphs {
			if err := bk.Put(charKey(g.Char), g.Marshal()); err != nil {
				return err
			}
		}
	}

	fb, err := tx.CreateBucketIfNotExists(failureBucket)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		err = fb.Put([]byte(font), []byte(strings.Join(failures, "\n")))
	} else {
		err = fb.Delete([]byte(font))
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Glyphs returns the records of font in code point order.
func (m *Manifest) Glyphs(font string) (res []GlyphRecord, err error) {
	if m == nil {
		return nil, nil
	}
	err = m.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(fontBucket(font))
		if bk == nil {
			return nil
		}
		c := bk.Cursor()
		for k, v := c.First(); len(k) > 0; k, v = c.Next() {
			r := GlyphRecord{}
			if err := r.Unmarshal(v); err != nil {
				return err
			}
			res = append(res, r)
		}
		return nil
	})
	return res, err
}

// Failures returns the failure lines recorded per font.
func (m *Manifest) Failures() (map[string][]string, error) {
	res := map[string][]string{}
	if m == nil {
		return res, nil
	}
	err := m.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(failureBucket)
		if bk == nil {
			return nil
		}
		return bk.ForEach(func(k, v []byte) error {
			res[string(k)] = strings.Split(string(v), "\n")
			return nil
		})
	})
	return res, err
}

func (m *Manifest) Close() error {
	if m == nil {
		return nil
	}
	return m.db.Close()
}
