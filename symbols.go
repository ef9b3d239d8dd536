package betacode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/derekparker/trie"
)

// NameResolver resolves a Unicode character name to its code point.
// *ucd.Index implements it.
type NameResolver interface {
	Lookup(name string) (rune, bool)
}

// ErrUnresolvedName is the error class of table construction failures.
var ErrUnresolvedName = errors.New("unresolved Unicode character name")

// NameError reports a token whose composed Unicode name is unknown to the
// resolver. It is a defect of the token table, not of any input.
type NameError struct {
	Token string
	Name  string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("betacode token %q: no Unicode character named %q", e.Token, e.Name)
}

func (e *NameError) Unwrap() error { return ErrUnresolvedName }

// SymbolTable maps every legal Betacode token to its Unicode rendering.
// It is immutable after NewSymbolTable returns.
type SymbolTable struct {
	index *trie.Trie
	count int
}

// Len returns the number of registered tokens.
func (st *SymbolTable) Len() int {
	return st.count
}

// Lookup returns the Unicode rendering of a single token. Tokens with no
// output (the newline sentinel) map to "" with ok == true.
func (st *SymbolTable) Lookup(token string) (string, bool) {
	node, ok := st.index.Find(token)
	if !ok {
		return "", false
	}
	return node.Meta().(string), true
}

// Tokens returns all registered tokens in byte order.
func (st *SymbolTable) Tokens() []string {
	keys := st.index.Keys()
	sort.Strings(keys)
	return keys
}

// TokensWithPrefix returns the registered tokens starting with prefix, in
// byte order. An empty prefix selects all tokens.
func (st *SymbolTable) TokensWithPrefix(prefix string) []string {
	if prefix == "" {
		return st.Tokens()
	}
	keys := st.index.PrefixSearch(prefix)
	sort.Strings(keys)
	return keys
}

// Each calls fn for every token in byte order.
func (st *SymbolTable) Each(fn func(token, value string)) {
	for _, token := range st.Tokens() {
		value, _ := st.Lookup(token)
		fn(token, value)
	}
}

func (st *SymbolTable) put(token, value string) error {
	assert(token != "", "empty token")
	if node, ok := st.index.Find(token); ok {
		if prev := node.Meta().(string); prev != value {
			return fmt.Errorf("betacode token %q registered twice: %q and %q", token, prev, value)
		}
		return nil
	}
	st.index.Add(token, value)
	st.count++
	return nil
}

// --- Construction ----------------------------------------------------------

// finalSigmaContexts lists the characters after which a plain S is
// word-final. The matcher has no lookahead, so "S" plus each of these is a
// token of its own. The newline is the end-of-input sentinel and produces
// no output.
var finalSigmaContexts = []string{"\n", ",", ".", ":", ";", "]", "@", "_"}

// passThrough lists non-letter tokens with their renderings.
var passThrough = [][2]string{
	{"'", "\u2019"}, // elision mark → right single quotation mark
	{"/", "\u2019"}, // stray acute, used for elision in some sources
	{"-", "-"},
	{"\u2014", "\u2014"}, // em dash
	{"^", "^"},
	{"0", "0"}, {"1", "1"}, {"2", "2"}, {"3", "3"}, {"4", "4"},
	{"5", "5"}, {"6", "6"}, {"7", "7"}, {"8", "8"}, {"9", "9"},
	{"@", "@"},
	{"$", "$"},
	{" ", " "},
	{".", "."},
	{",", ","},
	{"\"", "\""},
	{":", ":"},
	{";", ";"},
	{"!", "!"},
	{"_", "_"},
	{"#", "#"},
	{"[", "["},
	{"]", "]"},
	{"\n", ""},
}

// capitalRhoPsili lists the capital spellings of R) . Unicode has no
// precomposed capital rho with psili; it is rendered as a spacing psili
// followed by the capital letter.
var capitalRhoPsili = []string{"*)R", ")*R", "*R)"}

// letterForms enumerates the small-letter tokens which take diacritics,
// as (letter marker, diacritic markers) pairs.
func letterForms() [][2]string {
	var forms [][2]string
	add := func(letters string, marks ...string) {
		for _, l := range letters {
			for _, m := range marks {
				forms = append(forms, [2]string{string(l), m})
			}
		}
	}
	breathings := []string{"", ")", "("}
	accents := []string{"", "/", "\\"}
	for _, b := range breathings { // breathing × acute/grave
		for _, a := range accents {
			if b+a != "" {
				add("AEHIOUW", b+a)
			}
		}
	}
	add("AHIUW", "=", ")=", "(=") // circumflex
	for _, b := range breathings { // iota subscript/adscript
		for _, a := range append(accents, "=") {
			add("AHW", b+a+string(iotaMarker))
		}
	}
	add("IU", "+", "/+", "+/", "\\+", "+\\", "=+", "+=") // diaeresis
	add("AIU", "&")                                     // macron
	add("R", ")", "(")
	return forms
}

// NewSymbolTable enumerates all Betacode tokens and resolves their Unicode
// renderings through resolver. It fails on the first token whose composed
// name cannot be resolved; see NameError.
func NewSymbolTable(resolver NameResolver) (*SymbolTable, error) {
	b := &tableBuilder{
		resolver: resolver,
		table:    &SymbolTable{index: trie.New()},
		markers:  make(map[string]Letter, len(Letters)),
	}
	for _, l := range Letters {
		b.markers[l.Marker] = l
		b.letter(l, "")
	}
	for _, form := range letterForms() {
		b.letter(b.markers[form[0]], form[1])
	}
	finalSigma := b.resolve("S", "GREEK SMALL LETTER FINAL SIGMA")
	for _, ctx := range finalSigmaContexts {
		out := ctx
		if ctx == "\n" {
			out = ""
		}
		b.put("S"+ctx, finalSigma+out)
	}
	rho := b.resolve("*)R", "GREEK PSILI") + b.resolve("*)R", "GREEK CAPITAL LETTER RHO")
	for _, token := range capitalRhoPsili {
		b.put(token, rho)
	}
	for _, p := range passThrough {
		b.put(p[0], p[1])
	}
	if b.err != nil {
		tracer().Errorf("symbol table construction failed: %v", b.err)
		return nil, b.err
	}
	tracer().Infof("betacode symbol table: %d tokens", b.table.Len())
	return b.table, nil
}

// tableBuilder collects tokens and remembers the first error.
type tableBuilder struct {
	resolver NameResolver
	table    *SymbolTable
	markers  map[string]Letter
	err      error
}

// letter registers the small token letter+marks and, unless the
// combination has no capital in Unicode, all of its capital spellings.
func (b *tableBuilder) letter(l Letter, marks string) {
	small := l.Marker + marks
	b.put(small, b.resolve(small, composeName(l, marks, false)))
	if capitalsMissing[small] {
		return
	}
	capital := b.resolve(small, composeName(l, marks, true))
	for _, token := range capitalSpellings(l, marks) {
		b.put(token, capital)
	}
}

func (b *tableBuilder) resolve(token, name string) string {
	if b.err != nil {
		return ""
	}
	r, ok := b.resolver.Lookup(name)
	if !ok {
		b.err = &NameError{Token: token, Name: name}
		return ""
	}
	tracer().Debugf("%-6q → %U %s", token, r, name)
	return string(r)
}

func (b *tableBuilder) put(token, value string) {
	if b.err != nil {
		return
	}
	b.err = b.table.put(token, value)
}
