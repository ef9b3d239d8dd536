package dat

// RuneMap maps BMP code points (0..65535) to dense alphabet IDs.
// It is a two-level page table:
//   - top[hi] = page index (1..NumPages), or 0 meaning "page absent".
//   - pages is a flat array of NumPages*256 entries.
//
// Betacode input is ASCII with a handful of exceptions (the em dash), so in
// practice one or two pages are populated.
type RuneMap struct {
	top   [256]uint16 // page index (1-based); 0 means none
	pages []uint16    // flat: NumPages*256
}

// Dense returns the dense alphabet ID for a BMP code point.
// Returns 0 if absent.
func (m *RuneMap) Dense(bmp uint16) uint16 {
	pi := m.top[bmp>>8]
	if pi == 0 {
		return 0
	}
	return m.pages[int(pi-1)<<8+int(bmp&0xFF)]
}

// NumPages returns the number of allocated pages.
func (m *RuneMap) NumPages() int { return len(m.pages) >> 8 }

// Set sets mapping bmp -> dense (dense may be 0 to clear).
func (m *RuneMap) Set(bmp uint16, dense uint16) {
	hi := bmp >> 8
	pi := m.top[hi]
	if pi == 0 {
		if dense == 0 {
			return
		}
		m.pages = append(m.pages, make([]uint16, 256)...)
		pi = uint16(len(m.pages) >> 8)
		m.top[hi] = pi
	}
	m.pages[int(pi-1)<<8+int(bmp&0xFF)] = dense
}
