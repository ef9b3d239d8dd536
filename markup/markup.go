/*
Package markup converts Greek passages embedded in HTML or XML-like markup.

Dictionary sources such as the Perseus LSJ mark Greek text with a language
attribute:

	<sense>a word, <foreign lang="greek">lo/gos</foreign>, cf. ...</sense>

ConvertHTML converts the text of every element whose lang attribute denotes
Greek, and leaves all other content as it is.
*/
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'betacode.markup'
func tracer() tracing.Trace {
	return tracing.Select("betacode.markup")
}

// Converter converts one Betacode string; *betacode.Codec implements it.
type Converter interface {
	Convert(word string) (string, error)
}

// Stats counts converted and failed text nodes.
type Stats struct {
	Converted int
	Failed    int
}

// greekLangs are lang attribute values marking Betacode content.
var greekLangs = map[string]bool{
	"greek": true,
	"grc":   true,
}

// equationEntity is the entity sources write for an equals sign inside
// Greek text. A bare '=' is the Betacode circumflex.
const equationEntity = "&equals;"

// equationMark stands in for equationEntity while the document is parsed,
// since the parser decodes the entity to a bare '='. It is a private-use
// code point.
const equationMark = "\ue000"

// ConvertHTML parses an HTML fragment from r, converts Greek text nodes and
// renders the result to w. A text node which fails to convert is kept
// unchanged and counted in Stats.Failed.
func ConvertHTML(codec Converter, r io.Reader, w io.Writer) (Stats, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, fmt.Errorf("read html: %w", err)
	}
	marked := strings.ReplaceAll(string(raw), equationEntity, equationMark)
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(marked), context)
	if err != nil {
		return Stats{}, fmt.Errorf("parse html: %w", err)
	}
	var stats Stats
	var out strings.Builder
	for _, n := range nodes {
		convertNode(codec, n, false, &stats)
		if err := html.Render(&out, n); err != nil {
			return stats, fmt.Errorf("render html: %w", err)
		}
	}
	if _, err := io.WriteString(w, strings.ReplaceAll(out.String(), equationMark, "=")); err != nil {
		return stats, fmt.Errorf("write html: %w", err)
	}
	tracer().Debugf("markup: %d text nodes converted, %d failed", stats.Converted, stats.Failed)
	return stats, nil
}

func convertNode(codec Converter, n *html.Node, greek bool, stats *Stats) {
	switch n.Type {
	case html.ElementNode:
		if lang, ok := attr(n, "lang"); ok {
			greek = greekLangs[strings.ToLower(lang)]
		}
	case html.TextNode:
		if !greek || strings.TrimSpace(n.Data) == "" {
			return
		}
		text, err := convertText(codec, n.Data)
		if err != nil {
			tracer().Infof("keeping unconvertible text: %v", err)
			stats.Failed++
			return
		}
		n.Data = text
		stats.Converted++
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		convertNode(codec, c, greek, stats)
	}
}

// ConvertText converts a Greek passage. Sources write equations between
// Greek words and numbers (fractions, measures) with the entity "&equals;",
// so the passage is split there and parts without letters are left alone.
// Equations come back with a plain '='. A bare '=' is a circumflex.
func ConvertText(codec Converter, text string) (string, error) {
	return convertText(codec, strings.ReplaceAll(text, equationEntity, equationMark))
}

func convertText(codec Converter, text string) (string, error) {
	parts := strings.Split(text, equationMark)
	for i, p := range parts {
		if !hasLetter(p) {
			continue
		}
		u, err := codec.Convert(p)
		if err != nil {
			return "", err
		}
		parts[i] = u
	}
	return strings.Join(parts, "="), nil
}

func hasLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i] | 0x20; c >= 'a' && c <= 'z' {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
