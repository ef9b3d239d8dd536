package dat

// DAT is a frozen double-array trie over a dense alphabet of runes.
//   - States are indices into Base/Check (0 is unused; Root is typically 1).
//   - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
//   - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".
//
// The DAT does not carry payloads. Clients keep terminal values in a
// separate store indexed by state ID, which is stable after freezing.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint16

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Runes maps BMP code points to dense IDs [0..Sigma].
	Runes RuneMap
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) {
		return 0, false
	}
	t := d.Base[state] + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Dense maps a rune to its dense alphabet ID.
// Returns 0 if the rune is not in the alphabet.
func (d *DAT) Dense(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	return d.Runes.Dense(uint16(r))
}

// Grow extends Base and Check so that idx is a valid slot.
func (d *DAT) Grow(idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
}

// FreeBase finds the smallest base such that every label in labels lands on
// an unused slot. labels must be sorted ascending.
func (d *DAT) FreeBase(labels []uint16) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t == int(d.Root) || (t < len(d.Check) && d.Check[t] != 0) {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

// UsedSlots counts the slots occupied by a state, including the root.
func (d *DAT) UsedSlots() int {
	used := 0
	for i := range d.Check {
		if i == int(d.Root) || d.Check[i] != 0 {
			used++
		}
	}
	return used
}
