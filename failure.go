package main

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Failure reasons written to failure.txt.
const (
	reasonBlank     = "white"
	reasonDuplicate = "same"
	reasonCeiling   = "ceiling"
)

// FailureLog appends one line per failed font to failure.txt. It stays open
// for a whole run; Close flushes it.
type FailureLog struct {
	f *os.File
	w *bufio.Writer
}

func openFailureLog(dir string) (*FailureLog, error) {
	f, err := os.OpenFile(filepath.Join(dir, "failure.txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FailureLog{f: f, w: bufio.NewWriter(f)}, nil
}

// Chars records characters of font that failed for reason.
func (l *FailureLog) Chars(font, reason string, chars []rune) error {
	l.w.WriteString(font + "," + reason + "," + formatChars(chars) + "\n")
	return l.w.Flush()
}

// Duplicate records a font whose glyphs all rendered the same.
func (l *FailureLog) Duplicate(font string) error {
	l.w.WriteString(font + "," + reasonDuplicate + "\n")
	return l.w.Flush()
}

// Close flushes and closes the file.
func (l *FailureLog) Close() error {
	err := l.w.Flush()
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// formatChars writes the sorted characters as a bracketed, quoted list,
// e.g. ['a', 'b'].
func formatChars(chars []rune) string {
	sorted := append([]rune(nil), chars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range sorted {
		if i > 0 {
			sb.WriteString(", ")
		}
		q := byte('\'')
		if c == '\'' {
			q = '"'
		}
		sb.WriteByte(q)
		if c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(c)
		sb.WriteByte(q)
	}
	sb.WriteByte(']')
	return sb.String()
}
