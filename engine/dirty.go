package engine

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/goop/core"
)

// DirtyTracker collects chunks whose visual state changed since the last drain
type DirtyTracker struct {
	layout core.Layout
	set    mapset.Set[core.ChunkID]
}

func NewDirtyTracker(layout core.Layout) *DirtyTracker {
	return &DirtyTracker{
		layout: layout,
		set:    mapset.New[core.ChunkID](),
	}
}

// Mark flags the chunk owning p, plus adjacent chunks when p sits on a chunk edge
// A corner cell touches up to four chunks, and a cell of a 1x1 chunk touches nine
// Neighbors outside the grid are skipped
func (t *DirtyTracker) Mark(p core.Point) {
	if !t.layout.Dims.Contains(p) {
		return
	}
	cs := t.layout.ChunkSize
	cx, cy := t.layout.ChunkCoords(p)
	lx, ly := p.X%cs, p.Y%cs

	// Each edge is tested on its own: with cs == 1 a cell sits on all four
	x0, x1, y0, y1 := cx, cx, cy, cy
	if lx == 0 {
		x0--
	}
	if lx == cs-1 {
		x1++
	}
	if ly == 0 {
		y0--
	}
	if ly == cs-1 {
		y1++
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t.markAt(x, y)
		}
	}
}

func (t *DirtyTracker) markAt(cx, cy int) {
	if c, ok := t.layout.ChunkAt(cx, cy); ok {
		t.set.Put(c)
	}
}

// MarkChunk flags a single chunk
func (t *DirtyTracker) MarkChunk(c core.ChunkID) {
	if c >= 0 && int(c) < t.layout.ChunkCount() {
		t.set.Put(c)
	}
}

// MarkAll flags every chunk, used after resets
func (t *DirtyTracker) MarkAll() {
	for c := 0; c < t.layout.ChunkCount(); c++ {
		t.set.Put(core.ChunkID(c))
	}
}

// IsDirty reports whether c is pending
func (t *DirtyTracker) IsDirty(c core.ChunkID) bool {
	return t.set.Has(c)
}

// Len returns the pending chunk count
func (t *DirtyTracker) Len() int {
	return t.set.Size()
}

// Drain returns pending chunks in ascending order and clears the set
func (t *DirtyTracker) Drain() []core.ChunkID {
	if t.set.Size() == 0 {
		return nil
	}
	out := make([]core.ChunkID, 0, t.set.Size())
	t.set.Each(func(c core.ChunkID) {
		out = append(out, c)
	})
	slices.Sort(out)
	t.set = mapset.New[core.ChunkID]()
	return out
}
