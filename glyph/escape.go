package glyph

import (
	"sort"
	"strconv"
	"strings"
)

// Characters that cannot appear in a file name on at least one common filesystem.
const avoidedChars = "\\\x00/:*?\"<>|"

// InvisibleChars are dropped from every character set.
var InvisibleChars = []rune{' ', '　', '\n', '\r', '\t', '\a', '\b', '\f', '\v'}

// Charset is a deduplicated set of characters in code point order, with the
// file name token of each character at the same index.
type Charset struct {
	Chars []rune
	Names []string
}

// NewCharset collects the distinct visible characters of s.
func NewCharset(s string, numeric bool) *Charset {
	seen := map[rune]bool{}
	for _, c := range InvisibleChars {
		seen[c] = true
	}
	cs := &Charset{}
	for _, c := range s {
		if !seen[c] {
			seen[c] = true
			cs.Chars = append(cs.Chars, c)
		}
	}
	sort.Slice(cs.Chars, func(i, j int) bool { return cs.Chars[i] < cs.Chars[j] })
	cs.Names = EscapeNames(cs.Chars, numeric)
	return cs
}

// Len returns the number of characters.
func (cs *Charset) Len() int { return len(cs.Chars) }

// EscapeNames maps each character to a token usable as a file name. Unsafe
// characters, or all characters when numeric is set, become their decimal
// code point. An uppercase ASCII letter whose lowercase form is also in chars
// gets a trailing underscore so both survive on case-insensitive filesystems.
func EscapeNames(chars []rune, numeric bool) []string {
	present := make(map[rune]bool, len(chars))
	for _, c := range chars {
		present[c] = true
	}
	names := make([]string, len(chars))
	for i, c := range chars {
		switch {
		case numeric || strings.ContainsRune(avoidedChars, c):
			names[i] = strconv.Itoa(int(c))
		case 'A' <= c && c <= 'Z' && present[c+'a'-'A']:
			names[i] = string(c) + "_"
		default:
			names[i] = string(c)
		}
	}
	return names
}
