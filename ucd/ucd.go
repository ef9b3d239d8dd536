/*
Package ucd resolves Unicode character names to code points.

The Go standard library knows about character properties, but not about
character names. Package golang.org/x/text/unicode/runenames provides the
forward direction (rune to name); an Index inverts it for a set of blocks.

Betacode conversion only needs the Greek blocks and a few punctuation
characters, so the default index covers

	U+0370..U+03FF   Greek and Coptic
	U+1F00..U+1FFF   Greek Extended
	U+2000..U+206F   General Punctuation
*/
package ucd

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/runenames"
)

// Block is an inclusive range of code points.
type Block struct {
	First, Last rune
}

// Blocks used by the default index.
var (
	GreekAndCoptic     = Block{0x0370, 0x03FF}
	GreekExtended      = Block{0x1F00, 0x1FFF}
	GeneralPunctuation = Block{0x2000, 0x206F}
)

// Index maps upper-case character names to code points.
type Index struct {
	byName map[string]rune
}

// NewIndex creates a name index for all assigned code points in blocks.
func NewIndex(blocks ...Block) *Index {
	ix := &Index{byName: make(map[string]rune, 1024)}
	for _, b := range blocks {
		for r := b.First; r <= b.Last; r++ {
			name := runenames.Name(r)
			if name == "" || strings.HasPrefix(name, "<") {
				continue // unassigned, control or private use
			}
			ix.byName[name] = r
		}
	}
	return ix
}

// Lookup returns the code point named name. Names are matched case-insensitively.
func (ix *Index) Lookup(name string) (rune, bool) {
	r, ok := ix.byName[strings.ToUpper(name)]
	return r, ok
}

// Len returns the number of names in the index.
func (ix *Index) Len() int {
	return len(ix.byName)
}

// Name returns the Unicode name of r, or "" if r is unassigned.
func Name(r rune) string {
	return runenames.Name(r)
}

var (
	defaultOnce  sync.Once
	defaultIndex *Index
)

// Default returns a shared index over the Greek blocks and general
// punctuation. It is built on first use and read-only afterwards.
func Default() *Index {
	defaultOnce.Do(func() {
		defaultIndex = NewIndex(GreekAndCoptic, GreekExtended, GeneralPunctuation)
	})
	return defaultIndex
}
