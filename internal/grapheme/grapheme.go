// Package grapheme wraps uniseg with the byte-offset helpers the buffer and
// the terminal shaper need.
package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Next returns the byte offset of the first grapheme boundary strictly after
// off, or len(text) when off is in the last cluster.
func Next(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var c string
		c, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(c)
		if pos > off {
			return pos
		}
	}
	return len(text)
}

// Prev returns the byte offset of the last grapheme boundary strictly before
// off, or 0.
func Prev(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	if off <= 0 {
		return 0
	}
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var c string
		c, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+len(c) >= off {
			return pos
		}
		pos += len(c)
	}
	return pos
}

// Advance returns the byte offset reached after skipping n clusters from off,
// stopping at len(text).
func Advance(text string, off, n int) int {
	for i := 0; i < n && off < len(text); i++ {
		off = Next(text, off)
	}
	return off
}

// Floor snaps off back to the nearest rune boundary within text.
func Floor(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return len(text)
	}
	for off > 0 && !utf8.RuneStart(text[off]) {
		off--
	}
	return off
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
