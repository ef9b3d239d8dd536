/*
Package betacode converts Betacode, the ASCII encoding of polytonic Greek
used by classical-studies databases, into precomposed Unicode Greek.

A Betacode token is a base letter plus zero or more diacritic markers and an
optional case marker '*', e.g. "A)/" for ἄ or "*W)/|" for ᾬ. Conversion works
in three steps:

 1. A SymbolTable enumerates every legal token and resolves its target by
    composing the canonical Unicode character name
    ("GREEK SMALL LETTER ALPHA WITH PSILI AND OXIA") and looking it up in the
    Unicode character database (package ucd).
 2. The table is compiled into a Trie, which is frozen into a double-array
    (package dat) and performs greedy longest-prefix matching.
 3. A Codec normalizes raw input (marker order, case, final-sigma sentinel),
    runs the trie and rejects input which cannot be fully tokenized.

Table, trie and codec are built once by explicit construction and are
read-only afterwards; they may be shared between goroutines.

Matching is greedy and never backtracks over an emitted token: if the
longest terminal prefix at some position leads into a dead end, a shorter
alternative at that position is not tried. Betacode is designed such that
this does not matter for well-formed input.

A lone '/' is a token of its own (an elision mark in some sources, rendered
as U+2019). Therefore a second accent after a complete accented letter is
not rejected: "A\/" converts to "ὰ’" and "A=/" to "ᾶ’". Only the order
"A/\" fails, since a lone '\' is not a token.

Further Reading

	https://www.tlg.uci.edu/encoding/BCM.pdf   (TLG Beta Code manual)
	https://jtauber.com/                         (beta2unicode, Python)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package betacode

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'betacode'
func tracer() tracing.Trace {
	return tracing.Select("betacode")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
