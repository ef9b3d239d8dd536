package betacode

import "fmt"

const absentValue = -1
const initialValueStoreSlots = 2 // include slot 0 + root slot

// valueStore keeps terminal values directly indexed by trie position.
// Values are interned: the symbol table maps several hundred tokens to far
// fewer distinct strings (every capital has up to three spellings).
type valueStore struct {
	slots  []int32 // will grow with demand; absentValue marks non-terminals
	values []string
	intern map[string]int32
}

func newValueStore() *valueStore {
	s := &valueStore{
		slots:  make([]int32, initialValueStoreSlots),
		intern: make(map[string]int32),
	}
	for i := range s.slots {
		s.slots[i] = absentValue
	}
	return s
}

func (s *valueStore) ensure(pos int) {
	if pos < len(s.slots) {
		return
	}
	old := len(s.slots)
	s.slots = append(s.slots, make([]int32, pos+1-old)...)
	for i := old; i < len(s.slots); i++ {
		s.slots[i] = absentValue
	}
}

// Put stores value at trie position pos, replacing any previous value.
func (s *valueStore) Put(pos int, value string) error {
	if pos <= 0 {
		return fmt.Errorf("invalid trie position: %d", pos)
	}
	id, ok := s.intern[value]
	if !ok {
		id = int32(len(s.values))
		s.values = append(s.values, value)
		s.intern[value] = id
	}
	s.ensure(pos)
	s.slots[pos] = id
	return nil
}

// Value returns the terminal value at trie position pos.
// The empty string is a valid terminal value.
func (s *valueStore) Value(pos int) (string, bool) {
	if pos <= 0 || pos >= len(s.slots) {
		return "", false
	}
	id := s.slots[pos]
	if id == absentValue {
		return "", false
	}
	return s.values[id], true
}

// Terminals returns the number of positions carrying a value.
func (s *valueStore) Terminals() int {
	n := 0
	for _, id := range s.slots {
		if id != absentValue {
			n++
		}
	}
	return n
}

// Distinct returns the number of distinct values.
func (s *valueStore) Distinct() int {
	return len(s.values)
}
