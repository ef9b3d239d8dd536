package betacode

import (
	"sort"
	"strings"
)

// Letter is a base Greek letter with its Betacode marker.
type Letter struct {
	Marker string // 1 or 2 ASCII characters, e.g. "A", "S2"
	Name   string // letter part of the Unicode character name, e.g. "ALPHA"
}

// Letters lists all base letters in Betacode alphabet order.
// The sigma variants S1, S2 and J select a sigma form explicitly; a plain S
// becomes final sigma by trailing context only.
var Letters = []Letter{
	{"A", "ALPHA"},
	{"B", "BETA"},
	{"G", "GAMMA"},
	{"D", "DELTA"},
	{"E", "EPSILON"},
	{"V", "DIGAMMA"},
	{"Z", "ZETA"},
	{"H", "ETA"},
	{"Q", "THETA"},
	{"I", "IOTA"},
	{"K", "KAPPA"},
	{"L", "LAMDA"},
	{"M", "MU"},
	{"N", "NU"},
	{"C", "XI"},
	{"O", "OMICRON"},
	{"P", "PI"},
	{"R", "RHO"},
	{"S", "SIGMA"},
	{"S1", "SIGMA"},
	{"S2", "FINAL SIGMA"},
	{"J", "FINAL SIGMA"},
	{"S3", "LUNATE SIGMA"},
	{"T", "TAU"},
	{"U", "UPSILON"},
	{"F", "PHI"},
	{"X", "CHI"},
	{"Y", "PSI"},
	{"W", "OMEGA"},
}

// Rank of a diacritic within a composed Unicode name. Diaeresis comes
// first, whatever position its marker has in the Betacode token.
const (
	rankDiaeresis = iota
	rankBreathing
	rankAccent
	rankIota
)

// diacritic is a Betacode diacritic marker. Most diacritics have the same
// name fragment for both cases; the iota mark is YPOGEGRAMMENI (subscript)
// on small letters and PROSGEGRAMMENI (adscript) on capitals.
type diacritic struct {
	marker  byte
	rank    int
	small   string
	capital string
}

func (d diacritic) name(capital bool) string {
	if capital {
		return d.capital
	}
	return d.small
}

var diacritics = [...]diacritic{
	{'(', rankBreathing, "DASIA", "DASIA"},
	{')', rankBreathing, "PSILI", "PSILI"},
	{'/', rankAccent, "OXIA", "OXIA"},
	{'\\', rankAccent, "VARIA", "VARIA"},
	{'=', rankAccent, "PERISPOMENI", "PERISPOMENI"},
	{'&', rankAccent, "MACRON", "MACRON"},
	{'+', rankDiaeresis, "DIALYTIKA", "DIALYTIKA"},
	{'|', rankIota, "YPOGEGRAMMENI", "PROSGEGRAMMENI"},
}

func diacriticFor(marker byte) (diacritic, bool) {
	for _, d := range diacritics {
		if d.marker == marker {
			return d, true
		}
	}
	return diacritic{}, false
}

const (
	capitalMarker = '*'
	iotaMarker    = '|'
)

// irregularNames corrects composed names which the Unicode standard spells
// differently.
var irregularNames = map[string]string{
	"GREEK CAPITAL LETTER DIGAMMA":      "GREEK LETTER DIGAMMA",
	"GREEK SMALL LETTER LUNATE SIGMA":   "GREEK LUNATE SIGMA SYMBOL",
	"GREEK CAPITAL LETTER LUNATE SIGMA": "GREEK CAPITAL LUNATE SIGMA SYMBOL",
}

// capitalsMissing lists small-letter tokens without a capital counterpart in
// Unicode (Unicode 15). Capital spellings for these are not registered.
var capitalsMissing = map[string]bool{
	"S2": true, "J": true, // capital final sigma
	"U)": true, "U)/": true, "U)\\": true, "U)=": true,
	"R)": true, // see capitalRhoPsili
	"A=": true, "H=": true, "I=": true, "U=": true, "W=": true,
	"A/|": true, "A\\|": true, "A=|": true,
	"H/|": true, "H\\|": true, "H=|": true,
	"W/|": true, "W\\|": true, "W=|": true,
	"I/+": true, "I+/": true, "I\\+": true, "I+\\": true, "I=+": true, "I+=": true,
	"U/+": true, "U+/": true, "U\\+": true, "U+\\": true, "U=+": true, "U+=": true,
}

// CapitalsMissing returns the sorted list of tokens for which no capital
// spellings are registered.
func CapitalsMissing() []string {
	tokens := make([]string, 0, len(capitalsMissing))
	for t := range capitalsMissing {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// composeName builds the canonical Unicode name for a letter with
// diacritics, e.g. "GREEK CAPITAL LETTER OMEGA WITH PSILI AND OXIA AND
// PROSGEGRAMMENI". Diacritic fragments are ordered by rank; markers of equal
// rank keep their source order.
func composeName(l Letter, marks string, capital bool) string {
	diacs := make([]diacritic, 0, len(marks))
	for i := 0; i < len(marks); i++ {
		d, ok := diacriticFor(marks[i])
		assert(ok, "unknown diacritic marker "+string(marks[i]))
		diacs = append(diacs, d)
	}
	sort.SliceStable(diacs, func(i, j int) bool {
		return diacs[i].rank < diacs[j].rank
	})
	var b strings.Builder
	b.WriteString("GREEK ")
	if capital {
		b.WriteString("CAPITAL")
	} else {
		b.WriteString("SMALL")
	}
	b.WriteString(" LETTER ")
	b.WriteString(l.Name)
	for i, d := range diacs {
		if i == 0 {
			b.WriteString(" WITH ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(d.name(capital))
	}
	name := b.String()
	if irregular, ok := irregularNames[name]; ok {
		return irregular
	}
	return name
}

// capitalSpellings returns the accepted upper-case spellings of a small
// token: the case marker in front of everything, or in front of the letter
// with the diacritics moved before it. The iota mark stays at the end.
func capitalSpellings(l Letter, marks string) []string {
	suffix := ""
	if strings.HasSuffix(marks, string(iotaMarker)) {
		marks, suffix = marks[:len(marks)-1], string(iotaMarker)
	}
	star := string(capitalMarker)
	candidates := []string{
		star + l.Marker + marks + suffix,
		star + marks + l.Marker + suffix,
		marks + star + l.Marker + suffix,
	}
	spellings := candidates[:0]
	seen := make(map[string]bool, len(candidates))
	for _, s := range candidates {
		if !seen[s] {
			seen[s] = true
			spellings = append(spellings, s)
		}
	}
	return spellings
}
