package text

import "sync"

// RuneToBoolMap memoizes per-rune glyph presence for one font.
// Each rune costs 2 bits (checked, hasGlyph) in 256-rune blocks that are
// allocated on first use, so sparse scripts stay cheap.
//
// RuneToBoolMap is safe for concurrent use.
// RuneToBoolMap must not be copied after creation (has mutex).
type RuneToBoolMap struct {
	mu     sync.RWMutex
	blocks map[uint32]*[8]uint64 // keyed by rune >> 8
}

// NewRuneToBoolMap creates a new rune-to-bool map.
func NewRuneToBoolMap() *RuneToBoolMap {
	return &RuneToBoolMap{
		blocks: make(map[uint32]*[8]uint64),
	}
}

// runeSlot returns the block key, word index and bit position of r.
func runeSlot(r rune) (key uint32, word, bit uint32) {
	idx := (uint32(r) & 0xFF) * 2
	return uint32(r) >> 8, idx / 64, idx % 64
}

// Get returns (hasGlyph, checked).
// If checked is false, the rune hasn't been recorded yet.
func (m *RuneToBoolMap) Get(r rune) (hasGlyph, checked bool) {
	key, word, bit := runeSlot(r)

	m.mu.RLock()
	b, ok := m.blocks[key]
	var w uint64
	if ok {
		w = b[word]
	}
	m.mu.RUnlock()

	if !ok {
		return false, false
	}
	return w>>(bit+1)&1 != 0, w>>bit&1 != 0
}

// Set records whether r has a glyph and marks it checked.
func (m *RuneToBoolMap) Set(r rune, hasGlyph bool) {
	key, word, bit := runeSlot(r)

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blocks[key]
	if !ok {
		b = new([8]uint64)
		m.blocks[key] = b
	}

	b[word] |= 1 << bit
	if hasGlyph {
		b[word] |= 1 << (bit + 1)
	} else {
		b[word] &^= 1 << (bit + 1)
	}
}

// Clear removes all entries from the map.
func (m *RuneToBoolMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = make(map[uint32]*[8]uint64)
}
