package engine

import "github.com/lixenwraith/goop/core"

// CellID indexes a Cell inside its Store's arena
type CellID int32

// NoCell marks an empty neighbor slot
const NoCell CellID = -1

// Flags is the per-cell state bitset
type Flags uint8

const (
	FlagOnFire Flags = 1 << iota
	FlagFrozen
	FlagElectrified
	FlagExpiryPlayed
	FlagIgnitePending
)

// Cell is one grid position's substance state
// Neighbor links are symmetric: Neighbors[d] == b implies cells[b].Neighbors[d.Opposite()] == self
type Cell struct {
	Pos core.Point

	// Lifespan counts down to expiry in seconds, negative is permanent
	Lifespan          float64
	LastSourceID      int
	LastIgnitionFrame int64
	Flags             Flags

	Neighbors    [core.DirCount]CellID
	NeighborMask uint8 // bit d set iff Neighbors[d] != NoCell

	// RenderBaseIndex is owned by the renderer, -1 until assigned
	RenderBaseIndex int

	ElectrifyGeneration uint64
	ElectrifiedTime     float64
	IgniteDelay         float64
	FreezeTime          float64

	// serial increments on every slot reuse so queued references can detect staleness
	serial uint32
	alive  bool
}

// Has reports whether all bits of f are set
func (c *Cell) Has(f Flags) bool {
	return c.Flags&f == f
}

// Permanent reports whether the cell never expires
func (c *Cell) Permanent() bool {
	return c.Lifespan < 0
}

func (c *Cell) recomputeMask() {
	var m uint8
	for d, n := range c.Neighbors {
		if n != NoCell {
			m |= 1 << uint8(d)
		}
	}
	c.NeighborMask = m
}

// CellView is the renderer-facing projection of a Cell
type CellView struct {
	Pos              core.Point
	RenderBaseIndex  int
	OnFire           bool
	Frozen           bool
	Electrified      bool
	LifespanFraction float64 // 1 = fresh or permanent, 0 = expiring
}

// cellRef is a weak reference surviving slot reuse checks
type cellRef struct {
	id     CellID
	serial uint32
}
