package engine

import (
	"math/bits"

	"github.com/lixenwraith/goop/core"
)

// Occupancy is a per-store chunked bitset mirroring the store's position map
// Words are chunk-major: chunk c occupies words[c*WordsPerChunk : (c+1)*WordsPerChunk]
type Occupancy struct {
	layout core.Layout
	words  []uint64
	valid  bool
}

// NewOccupancy allocates a cleared bitset for the layout
func NewOccupancy(layout core.Layout) *Occupancy {
	return &Occupancy{
		layout: layout,
		words:  make([]uint64, layout.ChunkCount()*layout.WordsPerChunk),
		valid:  true,
	}
}

func (o *Occupancy) word(p core.Point) (int, uint64) {
	c, w, mask := o.layout.Locate(p)
	assert(c >= 0 && int(c) < o.layout.ChunkCount(), "negative or overflowing chunk %d for %v", c, p)
	return int(c)*o.layout.WordsPerChunk + w, mask
}

// Test reports the bit for p, false out of bounds
func (o *Occupancy) Test(p core.Point) bool {
	if !o.layout.Dims.Contains(p) {
		return false
	}
	i, mask := o.word(p)
	return o.words[i]&mask != 0
}

// Set marks p occupied
func (o *Occupancy) Set(p core.Point) {
	i, mask := o.word(p)
	o.words[i] |= mask
}

// Clear marks p empty
func (o *Occupancy) Clear(p core.Point) {
	i, mask := o.word(p)
	o.words[i] &^= mask
}

// Invalidate drops the bitset contents, the next Rebuild restores them
func (o *Occupancy) Invalidate() {
	o.valid = false
}

// Valid reports whether the bitset reflects the store
func (o *Occupancy) Valid() bool {
	return o.valid
}

// Rebuild recomputes all bits from the authoritative position index
func (o *Occupancy) Rebuild(index map[core.Point]CellID) {
	clear(o.words)
	for p := range index {
		o.Set(p)
	}
	o.valid = true
}

// EachInChunk calls fn for every set position of chunk c in row-major order
func (o *Occupancy) EachInChunk(c core.ChunkID, fn func(p core.Point)) {
	wpc := o.layout.WordsPerChunk
	base := int(c) * wpc
	for w := 0; w < wpc; w++ {
		word := o.words[base+w]
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &= word - 1
			fn(o.layout.PointAt(c, w*core.WordBits+b))
		}
	}
}

// Count returns the number of set bits
func (o *Occupancy) Count() int {
	n := 0
	for _, w := range o.words {
		n += bits.OnesCount64(w)
	}
	return n
}
