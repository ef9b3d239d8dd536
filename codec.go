package betacode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/betacode/ucd"
)

// ErrInvalidBetacode is the error class of conversion failures.
var ErrInvalidBetacode = errors.New("invalid Betacode")

// ConversionError reports input which could not be fully tokenized.
// Converted and Remainder describe where the matcher stopped; they are for
// diagnostics only and never returned as a result.
type ConversionError struct {
	Input     string
	Converted string
	Remainder string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid Betacode %q: cannot convert %q", e.Input,
		strings.TrimSuffix(e.Remainder, "\n"))
}

func (e *ConversionError) Unwrap() error { return ErrInvalidBetacode }

// Codec converts Betacode words to Unicode. A Codec is immutable and may be
// used from several goroutines.
type Codec struct {
	table *SymbolTable
	trie  *Trie
}

// New builds the symbol table against the default Unicode name index and
// compiles it into a codec.
func New() (*Codec, error) {
	return NewWithResolver(ucd.Default())
}

// MustNew is like New, but panics on error. A failure here is a defect of
// the token table.
func MustNew() *Codec {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithResolver builds a codec with symbol names resolved by resolver.
func NewWithResolver(resolver NameResolver) (*Codec, error) {
	table, err := NewSymbolTable(resolver)
	if err != nil {
		return nil, fmt.Errorf("building Betacode symbol table: %w", err)
	}
	trie, err := CompileTrie(table)
	if err != nil {
		return nil, fmt.Errorf("compiling Betacode trie: %w", err)
	}
	return NewCodec(table, trie), nil
}

// NewCodec wraps an existing table and its compiled trie.
func NewCodec(table *SymbolTable, trie *Trie) *Codec {
	assert(trie != nil && trie.Compiled(), "codec needs a compiled trie")
	return &Codec{table: table, trie: trie}
}

// Table returns the symbol table the codec was built from.
func (c *Codec) Table() *SymbolTable {
	return c.table
}

// Trie returns the compiled matcher.
func (c *Codec) Trie() *Trie {
	return c.trie
}

// Convert converts a Betacode word (or phrase) to Unicode.
//
// Input is case-insensitive; '*' marks capitals. If any part of the input
// cannot be tokenized, Convert returns "" and a *ConversionError. Trailing
// whitespace and '?' placeholders for illegible characters are tolerated
// and copied to the output unchanged.
//
// Example:
//
//	"lo/gos" => "λόγος".
func (c *Codec) Convert(word string) (string, error) {
	converted, remainder := c.trie.Convert(normalize(word))
	if strings.Trim(remainder, " \t\n\r\v\f?") != "" {
		tracer().Debugf("cannot convert %q, stuck at %q", word, remainder)
		return "", &ConversionError{Input: word, Converted: converted, Remainder: remainder}
	}
	return converted + strings.TrimSuffix(remainder, "\n"), nil
}

// ConvertAll converts a batch of words. On failure it returns the index of
// the first word which could not be converted, together with the error;
// results for earlier words are kept.
func (c *Codec) ConvertAll(words []string) ([]string, int, error) {
	results := make([]string, len(words))
	for i, w := range words {
		u, err := c.Convert(w)
		if err != nil {
			return results[:i], i, err
		}
		results[i] = u
	}
	return results, -1, nil
}
