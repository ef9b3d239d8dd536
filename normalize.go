package betacode

import "strings"

// markerSwaps lists adjacent marker pairs which sources write in either
// order. The symbol table expects breathing before accent, and accent
// before diaeresis.
var markerSwaps = map[[2]byte]bool{
	{'/', '('}: true, {'/', ')'}: true,
	{'\\', '('}: true, {'\\', ')'}: true,
	{'=', '('}: true, {'=', ')'}: true,
	{'+', '/'}: true, {'+', '\\'}: true, {'+', '='}: true,
}

// normalize prepares raw Betacode for matching: trailing asterisks are
// dropped, marker pairs are put in table order, the text is upper-cased and
// a newline sentinel is appended, so that a word-final S becomes final
// sigma.
func normalize(word string) string {
	// A trailing '*' has no letter to mark; only the prefix form marks capitals.
	w := []byte(strings.TrimRight(word, "*"))
	for i := 0; i+1 < len(w); i++ {
		if markerSwaps[[2]byte{w[i], w[i+1]}] {
			w[i], w[i+1] = w[i+1], w[i]
			i++ // a swapped pair is final
		}
	}
	return strings.ToUpper(string(w)) + "\n"
}
