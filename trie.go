package betacode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/betacode/dat"
)

var (
	// ErrEmptyToken is returned when inserting an empty token.
	ErrEmptyToken = errors.New("empty token")
	// ErrFrozen is returned when inserting into a compiled trie.
	ErrFrozen = errors.New("trie is compiled and read-only")
	// ErrAlphabet is returned for tokens with runes outside the BMP.
	ErrAlphabet = errors.New("token rune outside the Basic Multilingual Plane")
)

const rootID = 1 // arena slot 0 is unused, so that ID 0 means "no node"

// buildNode is a node of the construction-time arena. Children are keyed by
// dense alphabet ID and refer to arena indices.
type buildNode struct {
	children map[uint16]int32
	state    uint32 // DAT state, assigned by Compile
}

// Trie is a prefix tree from Betacode tokens to Unicode strings.
//
// A Trie is filled with Insert and then frozen by Compile into a
// double-array trie. Convert works in both phases; after Compile the trie
// is immutable and safe for concurrent use.
type Trie struct {
	compiled    bool
	nodes       []buildNode // arena; nodes[rootID] is the root
	runeToDense map[rune]uint16
	nextDenseID uint16
	values      *valueStore // indexed by arena ID, by DAT state after Compile
	da          *dat.DAT
}

// NewTrie creates an empty, mutable trie.
func NewTrie() *Trie {
	return &Trie{
		nodes:       make([]buildNode, rootID+1),
		runeToDense: make(map[rune]uint16),
		values:      newValueStore(),
		da:          &dat.DAT{Root: rootID},
	}
}

// CompileTrie inserts every token of table and compiles the trie.
func CompileTrie(table *SymbolTable) (*Trie, error) {
	t := NewTrie()
	var err error
	table.Each(func(token, value string) {
		if err == nil {
			err = t.Insert(token, value)
		}
	})
	if err != nil {
		return nil, err
	}
	t.Compile()
	return t, nil
}

// Insert walks or extends the tree along token and sets the terminal value
// at its end. Intermediate nodes created on the way have no value.
func (t *Trie) Insert(token, value string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if t.compiled {
		return ErrFrozen
	}
	key, err := t.encodeKey(token)
	if err != nil {
		return fmt.Errorf("insert %q: %w", token, err)
	}
	id := int32(rootID)
	for _, c := range key {
		n := &t.nodes[id]
		if n.children == nil {
			n.children = make(map[uint16]int32)
		}
		child, ok := n.children[c]
		if !ok {
			child = int32(len(t.nodes))
			t.nodes = append(t.nodes, buildNode{}) // may move the arena
			t.nodes[id].children[c] = child
		}
		id = child
	}
	return t.values.Put(int(id), value)
}

func (t *Trie) encodeKey(s string) ([]uint16, error) {
	key := make([]uint16, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			return nil, ErrAlphabet
		}
		dense, ok := t.runeToDense[r]
		if !ok {
			t.nextDenseID++
			dense = t.nextDenseID
			t.runeToDense[r] = dense
			t.da.Runes.Set(uint16(r), dense)
		}
		key = append(key, dense)
	}
	return key, nil
}

// Compile freezes the trie into a double-array. Children are placed in
// ascending label order. Calling Compile more than once is a no-op.
func (t *Trie) Compile() {
	if t.compiled {
		return
	}
	d := t.da
	d.Sigma = t.nextDenseID
	d.Grow(rootID)
	t.nodes[rootID].state = d.Root
	queue := []int32{rootID}
	for q := 0; q < len(queue); q++ {
		n := &t.nodes[queue[q]]
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := d.FreeBase(labels)
		d.Grow(base + int(labels[len(labels)-1]))
		d.Base[n.state] = int32(base)
		for _, label := range labels {
			s := base + int(label)
			child := n.children[label]
			t.nodes[child].state = uint32(s)
			d.Check[s] = int32(n.state)
			queue = append(queue, child)
		}
	}
	frozen := newValueStore()
	for id := rootID; id < len(t.nodes); id++ {
		if v, ok := t.values.Value(id); ok {
			err := frozen.Put(int(t.nodes[id].state), v)
			assert(err == nil, "terminal without DAT state")
		}
	}
	t.values = frozen
	t.nodes = nil
	t.runeToDense = nil
	t.compiled = true
	stats := t.Stats()
	tracer().Infof("betacode trie: states=%d slots=%d fill=%.2f terminals=%d distinct values=%d",
		stats.States, stats.TotalSlots, stats.FillRatio(), stats.Terminals, stats.Values)
}

// Compiled reports whether the trie has been frozen.
func (t *Trie) Compiled() bool {
	return t.compiled
}

// Convert repeatedly consumes the longest prefix of input which is a
// registered token and appends the token's value to the output.
//
// At each position the trie is followed as deep as input allows; the
// deepest terminal seen on that path wins. If the path holds no terminal,
// conversion stops and the unconsumed input is returned as remainder.
// A shorter token at an earlier position is never retried (no backtracking
// across emitted tokens). remainder is empty iff all of input was consumed.
func (t *Trie) Convert(input string) (converted, remainder string) {
	var out strings.Builder
	out.Grow(len(input) * 2)
	for i := 0; i < len(input); {
		end, value := t.longestMatch(input[i:])
		if end == 0 {
			return out.String(), input[i:]
		}
		out.WriteString(value)
		i += end
	}
	return out.String(), ""
}

// longestMatch returns the byte length and value of the longest token which
// is a prefix of s. length is 0 if there is none.
func (t *Trie) longestMatch(s string) (length int, value string) {
	it := t.iterator()
	for j := 0; j < len(s); {
		r, size := utf8.DecodeRuneInString(s[j:])
		pos := it.Next(r)
		if pos == 0 {
			break
		}
		j += size
		if v, ok := t.values.Value(pos); ok {
			length, value = j, v
		}
	}
	return
}

// trieIterator iterates over successive prefix positions for one key.
// Next returns 0 once the prefix leaves the trie.
type trieIterator interface {
	Next(r rune) int
}

func (t *Trie) iterator() trieIterator {
	if t.compiled {
		return &datIterator{d: t.da, state: t.da.Root}
	}
	return &arenaIterator{t: t, id: rootID}
}

type arenaIterator struct {
	t    *Trie
	id   int32
	dead bool
}

func (it *arenaIterator) Next(r rune) int {
	if it.dead {
		return 0
	}
	dense, ok := it.t.runeToDense[r]
	if !ok {
		it.dead = true
		return 0
	}
	next, ok := it.t.nodes[it.id].children[dense]
	if !ok {
		it.dead = true
		return 0
	}
	it.id = next
	return int(next)
}

type datIterator struct {
	d     *dat.DAT
	state uint32
	dead  bool
}

func (it *datIterator) Next(r rune) int {
	if it.dead {
		return 0
	}
	next, ok := it.d.Transition(it.state, it.d.Dense(r))
	if !ok {
		it.dead = true
		return 0
	}
	it.state = next
	return int(next)
}

func sortedLabels(children map[uint16]int32) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// TrieStats reports size and density of a trie.
type TrieStats struct {
	Backend    string // "arena" before Compile, "dat" after
	States     int
	UsedSlots  int
	TotalSlots int
	Terminals  int
	Values     int // distinct terminal values
}

// FillRatio is the share of used slots.
func (s TrieStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// Stats returns size statistics for t.
func (t *Trie) Stats() TrieStats {
	stats := TrieStats{
		Terminals: t.values.Terminals(),
		Values:    t.values.Distinct(),
	}
	if !t.compiled {
		stats.Backend = "arena"
		stats.States = len(t.nodes) - rootID
		stats.UsedSlots = stats.States
		stats.TotalSlots = len(t.nodes)
		return stats
	}
	stats.Backend = "dat"
	stats.UsedSlots = t.da.UsedSlots()
	stats.States = stats.UsedSlots
	stats.TotalSlots = t.da.NStates()
	return stats
}

func (t *Trie) String() string {
	s := t.Stats()
	return fmt.Sprintf("Trie(%s,states=%d,sigma=%d,compiled=%v)", s.Backend, s.States, t.nextDenseID, t.compiled)
}
