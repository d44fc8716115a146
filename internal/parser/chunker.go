package parser

import (
	"iter"
	"unicode/utf8"
)

// DefaultChunkSize is the per-chunk character budget used when none is configured.
const DefaultChunkSize = 2000

// Chunks slices text into consecutive pieces of at most maxChars characters.
// Slicing is fixed-width and ignores sentence or question boundaries, so a
// question may be cut in two. Concatenating the pieces reproduces text.
// A non-positive maxChars yields text whole; empty text yields nothing.
// The sequence can be ranged over any number of times.
func Chunks(text string, maxChars int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		if maxChars <= 0 {
			yield(text)
			return
		}
		rest := text
		for rest != "" {
			end := byteOffset(rest, maxChars)
			if !yield(rest[:end]) {
				return
			}
			rest = rest[end:]
		}
	}
}

// byteOffset returns the byte index just past the first n runes of s.
func byteOffset(s string, n int) int {
	i := 0
	for count := 0; count < n && i < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
