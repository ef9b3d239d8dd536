/*
Package variants derives the accent variants under which a converted Greek
word may appear in running text or in a search index.

Betacode acute accents convert to characters named OXIA (Greek Extended
block). Modern fonts and keyboards produce the canonically equivalent TONOS
characters (Greek and Coptic block), and an acute on the final syllable turns
into a grave inside a sentence. Look-up indexes built from converted
Betacode therefore register these spellings as well.
*/
package variants

import (
	"strings"

	"github.com/npillmayer/betacode/ucd"
)

// Tonos replaces every character named "... OXIA ..." by its "... TONOS ..."
// twin, where Unicode has one.
func Tonos(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		b.WriteRune(rename(r, "OXIA", "TONOS"))
	}
	return b.String()
}

// Grave changes the last accented character of word from acute to grave.
// It returns false if that character carries no acute or has no grave twin.
func Grave(word string) (string, bool) {
	runes := []rune(word)
	for i := len(runes) - 1; i >= 0; i-- {
		name := ucd.Name(runes[i])
		if !strings.Contains(name, " WITH ") {
			continue
		}
		if !strings.Contains(name, "OXIA") {
			return "", false
		}
		r := rename(runes[i], "OXIA", "VARIA")
		if r == runes[i] {
			return "", false
		}
		runes[i] = r
		return string(runes), true
	}
	return "", false
}

// Of returns word followed by its distinct variants: the tonos spelling,
// the grave spelling and the tonos spelling of the grave one.
func Of(word string) []string {
	vv := []string{word}
	seen := map[string]bool{word: true}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			vv = append(vv, v)
		}
	}
	add(Tonos(word))
	if g, ok := Grave(word); ok {
		add(g)
		add(Tonos(g))
	}
	return vv
}

func rename(r rune, from, to string) rune {
	name := ucd.Name(r)
	if !strings.Contains(name, from) {
		return r
	}
	if twin, ok := ucd.Default().Lookup(strings.Replace(name, from, to, 1)); ok {
		return twin
	}
	return r
}
