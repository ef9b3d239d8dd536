package betacode

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/betacode/ucd"
)

func mustTable(t *testing.T) *SymbolTable {
	t.Helper()
	table, err := NewSymbolTable(ucd.Default())
	if err != nil {
		t.Fatalf("cannot build symbol table: %v", err)
	}
	return table
}

func TestSymbolTableSize(t *testing.T) {
	table := mustTable(t)
	if table.Len() != 501 {
		t.Fatalf("expected 501 tokens, got %d", table.Len())
	}
	if n := len(table.Tokens()); n != table.Len() {
		t.Fatalf("Tokens() returned %d tokens, Len() is %d", n, table.Len())
	}
}

func TestSymbolTableLookup(t *testing.T) {
	table := mustTable(t)
	tests := []struct {
		token string
		want  string
	}{
		{token: "A", want: "\u03b1"},
		{token: "*A", want: "\u0391"},
		{token: "A(/", want: "\u1f05"},
		{token: "*W)/|", want: "\u1fac"},
		{token: "*)/W|", want: "\u1fac"},
		{token: ")/*W|", want: "\u1fac"},
		{token: "W)/|", want: "\u1fa4"},
		{token: "I/+", want: "\u1fd3"},
		{token: "I+/", want: "\u1fd3"},
		{token: "U=+", want: "\u1fe7"},
		{token: "A&", want: "\u1fb1"},
		{token: "*A&", want: "\u1fb9"},
		{token: "S1", want: "\u03c3"},
		{token: "S2", want: "\u03c2"},
		{token: "J", want: "\u03c2"},
		{token: "S3", want: "\u03f2"},
		{token: "*S3", want: "\u03f9"},
		{token: "V", want: "\u03dd"},
		{token: "*V", want: "\u03dc"},
		{token: "*)R", want: "\u1fbf\u03a1"},
		{token: "S,", want: "\u03c2,"},
		{token: "S\n", want: "\u03c2"},
		{token: "'", want: "\u2019"},
		{token: "\u2014", want: "\u2014"},
		{token: "\n", want: ""},
	}
	for _, tt := range tests {
		got, ok := table.Lookup(tt.token)
		if !ok {
			t.Fatalf("token %q not registered", tt.token)
		}
		if got != tt.want {
			t.Fatalf("token %q: got %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestSymbolTableMissingCapitals(t *testing.T) {
	table := mustTable(t)
	for _, token := range []string{"*S2", "*J", "*U)", "*)U", ")*U", "*A=", "*I/+"} {
		if _, ok := table.Lookup(token); ok {
			t.Fatalf("token %q should not be registered", token)
		}
	}
}

// The list of capitals without a Unicode code point depends on the Unicode
// version. Every listed capital must indeed be unknown, so that new
// additions to Unicode show up here.
func TestCapitalsMissingAgainstUnicode(t *testing.T) {
	ix := ucd.Default()
	markers := make(map[string]Letter)
	for _, l := range Letters {
		markers[l.Marker] = l
	}
	for _, token := range CapitalsMissing() {
		l, ok := markers[token[:1]]
		if len(token) >= 2 {
			if l2, ok2 := markers[token[:2]]; ok2 {
				l, ok = l2, true
			}
		}
		if !ok {
			t.Fatalf("no letter for skip-list token %q", token)
		}
		name := composeName(l, token[len(l.Marker):], true)
		if r, found := ix.Lookup(name); found {
			t.Fatalf("skip-list token %q has a capital: %U %s", token, r, name)
		}
	}
}

func TestSymbolTablePrefixSearch(t *testing.T) {
	table := mustTable(t)
	got := table.TokensWithPrefix("A)")
	want := []string{"A)", "A)/", "A)/|", "A)=", "A)=|", "A)\\", "A)\\|", "A)|"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("prefix search mismatch: got %q, want %q", got, want)
	}
}

func TestSymbolTableEachIsSorted(t *testing.T) {
	table := mustTable(t)
	prev := ""
	n := 0
	table.Each(func(token, value string) {
		if n > 0 && token <= prev {
			t.Fatalf("tokens out of order: %q after %q", token, prev)
		}
		prev = token
		n++
	})
	if n != table.Len() {
		t.Fatalf("Each visited %d tokens, want %d", n, table.Len())
	}
}

type stingyResolver struct {
	missing string
}

func (r stingyResolver) Lookup(name string) (rune, bool) {
	if name == r.missing {
		return 0, false
	}
	return ucd.Default().Lookup(name)
}

func TestSymbolTableFailsLoudly(t *testing.T) {
	_, err := NewSymbolTable(stingyResolver{missing: "GREEK SMALL LETTER ETA WITH DASIA AND PERISPOMENI"})
	if err == nil {
		t.Fatalf("expected construction error")
	}
	if !errors.Is(err, ErrUnresolvedName) {
		t.Fatalf("expected ErrUnresolvedName, got %v", err)
	}
	var nerr *NameError
	if !errors.As(err, &nerr) || nerr.Token != "H(=" {
		t.Fatalf("expected NameError for token H(=, got %v", err)
	}
}
