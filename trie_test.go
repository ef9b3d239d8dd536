package betacode

import (
	"errors"
	"testing"
)

func mustInsert(t *testing.T, trie *Trie, pairs ...string) {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := trie.Insert(pairs[i], pairs[i+1]); err != nil {
			t.Fatalf("insert %q failed: %v", pairs[i], err)
		}
	}
}

func sigmaTrie(t *testing.T) *Trie {
	trie := NewTrie()
	mustInsert(t, trie,
		"S", "σ",
		"S1", "σ",
		"S2", "ς",
		"J", "ς",
		"A", "α",
		"ABC", "x",
		"XY", "y",
		"\n", "",
	)
	return trie
}

func TestTrieLongestMatch(t *testing.T) {
	tests := []struct {
		input     string
		converted string
		remainder string
	}{
		{input: "S", converted: "σ"},
		{input: "S1S2J", converted: "σςς"},
		{input: "SS2", converted: "σς"},
		{input: "S3", converted: "σ", remainder: "3"},
		{input: "ABC", converted: "x"},
		{input: "ABD", converted: "α", remainder: "BD"}, // deepest terminal on the path is A
		{input: "AXZ", converted: "α", remainder: "XZ"}, // path X has no terminal at all
		{input: "A\n", converted: "α"},
		{input: "", converted: ""},
		{input: "?A", converted: "", remainder: "?A"},
	}
	trie := sigmaTrie(t)
	check := func(phase string) {
		for _, tt := range tests {
			converted, remainder := trie.Convert(tt.input)
			if converted != tt.converted || remainder != tt.remainder {
				t.Fatalf("%s: convert %q: got (%q,%q), want (%q,%q)", phase, tt.input,
					converted, remainder, tt.converted, tt.remainder)
			}
		}
	}
	check("arena")
	trie.Compile()
	check("dat")
}

func TestTrieInsertErrors(t *testing.T) {
	trie := NewTrie()
	if err := trie.Insert("", "x"); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	if err := trie.Insert("\U0001F600", "x"); !errors.Is(err, ErrAlphabet) {
		t.Fatalf("expected ErrAlphabet, got %v", err)
	}
	mustInsert(t, trie, "A", "a")
	trie.Compile()
	if err := trie.Insert("B", "b"); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
}

func TestTrieIntermediateNodesHaveNoValue(t *testing.T) {
	trie := NewTrie()
	mustInsert(t, trie, "ABC", "x")
	trie.Compile()
	for _, input := range []string{"A", "AB"} {
		if converted, remainder := trie.Convert(input); converted != "" || remainder != input {
			t.Fatalf("convert %q: got (%q,%q), want no match", input, converted, remainder)
		}
	}
}

func TestTrieOverwriteValue(t *testing.T) {
	trie := NewTrie()
	mustInsert(t, trie, "A", "a", "A", "b")
	trie.Compile()
	if converted, _ := trie.Convert("A"); converted != "b" {
		t.Fatalf("expected later insert to win, got %q", converted)
	}
}

func TestTrieStats(t *testing.T) {
	trie := sigmaTrie(t)
	before := trie.Stats()
	if before.Backend != "arena" {
		t.Fatalf("expected arena backend, got %s", before.Backend)
	}
	if before.States != 11 { // root + S,1,2,J,A,B,C,X,Y,\n
		t.Fatalf("expected 11 states before compile, got %d", before.States)
	}
	trie.Compile()
	after := trie.Stats()
	if after.Backend != "dat" {
		t.Fatalf("expected dat backend, got %s", after.Backend)
	}
	if after.States != before.States {
		t.Fatalf("compile changed state count: %d → %d", before.States, after.States)
	}
	if after.Terminals != 8 || after.Values != 6 {
		t.Fatalf("expected 8 terminals with 6 distinct values, got %d/%d", after.Terminals, after.Values)
	}
	if fill := after.FillRatio(); fill <= 0 || fill > 1 {
		t.Fatalf("expected fill ratio in (0,1], got %f", fill)
	}
}

func TestCompiledSymbolTable(t *testing.T) {
	table := mustTable(t)
	trie, err := CompileTrie(table)
	if err != nil {
		t.Fatal(err)
	}
	if !trie.Compiled() {
		t.Fatalf("CompileTrie must return a compiled trie")
	}
	table.Each(func(token, value string) {
		converted, remainder := trie.Convert(token)
		if remainder != "" || converted != value {
			t.Fatalf("token %q: got (%q,%q), want %q", token, converted, remainder, value)
		}
	})
}
