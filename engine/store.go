package engine

import (
	"log"

	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/substance"
)

// Outcome reports what a placement did
type Outcome uint8

const (
	OutcomeRejected Outcome = iota
	OutcomeCreated
	OutcomeUpdated
	OutcomeIgnored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "rejected"
	}
}

// Store holds every cell of one substance
// The position index is authoritative, the occupancy bitset mirrors it and is only mutated through Store methods
type Store struct {
	id  StoreID
	def *substance.Definition
	eng *Engine

	cells []Cell
	free  []CellID
	index map[core.Point]CellID

	occ   *Occupancy
	dirty *DirtyTracker
	prop  *Propagator

	// busy is set while a propagation batch runs, mutations are refused meanwhile
	busy bool

	// Tick scratch, reused across frames
	expired  []CellID
	igniting []CellID
}

func newStore(id StoreID, def *substance.Definition, eng *Engine) *Store {
	s := &Store{
		id:    id,
		def:   def,
		eng:   eng,
		index: make(map[core.Point]CellID),
		occ:   NewOccupancy(eng.layout),
		dirty: NewDirtyTracker(eng.layout),
	}
	s.prop = newPropagator(s)
	return s
}

// ID returns the store's ownership id
func (s *Store) ID() StoreID { return s.id }

// Def returns the substance definition
func (s *Store) Def() *substance.Definition { return s.def }

// Propagator returns the store's propagation state
func (s *Store) Propagator() *Propagator { return s.prop }

// Len returns the live cell count
func (s *Store) Len() int { return len(s.index) }

// occupancy returns the bitset, rebuilding it after an invalidation
func (s *Store) occupancy() *Occupancy {
	if !s.occ.Valid() {
		s.occ.Rebuild(s.index)
	}
	return s.occ
}

// Occupied is the O(1) bitset test
func (s *Store) Occupied(p core.Point) bool {
	return s.occupancy().Test(p)
}

// Contains probes the authoritative index
func (s *Store) Contains(p core.Point) bool {
	_, ok := s.index[p]
	return ok
}

// Cell returns the live cell at p, nil when absent
// The pointer is invalidated by the next placement in this store
func (s *Store) Cell(p core.Point) *Cell {
	if !s.Occupied(p) {
		return nil
	}
	id, ok := s.index[p]
	if !ok {
		return nil
	}
	return &s.cells[id]
}

// CellByID resolves an arena id, nil for free slots
func (s *Store) CellByID(id CellID) *Cell {
	if id < 0 || int(id) >= len(s.cells) || !s.cells[id].alive {
		return nil
	}
	return &s.cells[id]
}

// Each visits every live cell, the callback must not mutate the store
func (s *Store) Each(fn func(id CellID, c *Cell)) {
	for i := range s.cells {
		if s.cells[i].alive {
			fn(CellID(i), &s.cells[i])
		}
	}
}

// EachInChunk visits live cells of one chunk via the occupancy bitset
func (s *Store) EachInChunk(c core.ChunkID, fn func(c *Cell)) {
	s.occupancy().EachInChunk(c, func(p core.Point) {
		if id, ok := s.index[p]; ok {
			fn(&s.cells[id])
		}
	})
}

// View projects the cell at p for renderers
func (s *Store) View(p core.Point) (CellView, bool) {
	c := s.Cell(p)
	if c == nil {
		return CellView{}, false
	}
	return s.Project(c), true
}

// Project builds the renderer view of a live cell
func (s *Store) Project(c *Cell) CellView {
	frac := 1.0
	if !c.Permanent() && s.def.Lifespan > 0 {
		frac = c.Lifespan / s.def.Lifespan
		if frac > 1 {
			frac = 1
		} else if frac < 0 {
			frac = 0
		}
	}
	return CellView{
		Pos:              c.Pos,
		RenderBaseIndex:  c.RenderBaseIndex,
		OnFire:           c.Has(FlagOnFire),
		Frozen:           c.Has(FlagFrozen),
		Electrified:      c.Has(FlagElectrified),
		LifespanFraction: frac,
	}
}

// SetRenderIndex stores the renderer-owned buffer offset for the cell at p
func (s *Store) SetRenderIndex(p core.Point, idx int) bool {
	c := s.Cell(p)
	if c == nil {
		return false
	}
	c.RenderBaseIndex = idx
	return true
}

// MarkDirty flags p's chunk and boundary neighbors
func (s *Store) MarkDirty(p core.Point) {
	s.dirty.Mark(p)
}

// DrainDirty returns and clears this store's dirty chunks
func (s *Store) DrainDirty() []core.ChunkID {
	return s.dirty.Drain()
}

// fading reports whether a cell is below the fade threshold, permanent cells never fade
func (s *Store) fading(c *Cell) bool {
	return !c.Permanent() && c.Lifespan < s.def.FadeThreshold
}

// Place creates or refreshes the cell at p
// fraction is the falloff fraction, 0 for full lifespan; suppress disables the splash roll
func (s *Store) Place(p core.Point, source int, frame int64, fraction float64, suppress bool) (Outcome, error) {
	if s.busy {
		return OutcomeRejected, ErrBusy
	}
	e := s.eng
	if e.loading {
		e.m.rejected.Add(1)
		return OutcomeRejected, ErrLoading
	}
	if !e.layout.Dims.Contains(p) {
		log.Printf("[goop] %s: placement at %v outside %dx%d grid", s.def.Name, p, e.layout.Dims.W, e.layout.Dims.H)
		e.m.rejected.Add(1)
		return OutcomeRejected, ErrOutOfBounds
	}
	if e.excluded(p) {
		e.m.rejected.Add(1)
		return OutcomeRejected, ErrExcluded
	}

	incoming := s.def.LifespanFor(fraction)

	if s.Occupied(p) {
		id := s.index[p]
		c := &s.cells[id]
		wasFading := s.fading(c)
		l, refused := s.def.MergeLifespan(c.Lifespan, incoming, c.Has(FlagOnFire))
		if refused {
			return OutcomeIgnored, ErrPermanent
		}
		c.Lifespan = l
		c.LastSourceID = source
		if wasFading && !s.fading(c) {
			c.Flags &^= FlagExpiryPlayed
			s.dirty.Mark(p)
		}
		e.m.updated.Add(1)
		return OutcomeUpdated, nil
	}

	if !e.terrain.IsEligible(p) || !s.def.Allows(e.terrain.Classify(p)) {
		e.m.rejected.Add(1)
		return OutcomeRejected, ErrIneligible
	}

	inheritedFire := false
	if owner := e.owners.Owner(p); owner != NoStore && owner != s.id {
		prev := e.stores[owner-1]
		if prev.busy {
			return OutcomeRejected, ErrBusy
		}
		if c := prev.Cell(p); c != nil {
			inheritedFire = c.Has(FlagOnFire)
		}
		prev.remove(p)
		e.m.evictions.Add(1)
		e.emit(event.EffectEvict, p, prev.id)
	}

	id := s.alloc(p, incoming, source)
	s.linkNeighbors(id)
	s.occupancy().Set(p)
	e.owners.Claim(p, s.id)
	s.dirty.Mark(p)
	e.m.created.Add(1)
	e.m.cellsLive.Add(1)

	c := &s.cells[id]
	switch {
	case inheritedFire && s.def.InheritFire && s.def.Flammable:
		s.ignite(id, frame)
	case s.def.SelfIgniteDelay > 0:
		c.Flags |= FlagIgnitePending
		c.IgniteDelay = s.def.SelfIgniteDelay
	case s.def.Flammable && s.burningNeighbor(c):
		c.Flags |= FlagIgnitePending
		c.IgniteDelay = s.def.IgniteSpreadDelay
	}

	if !suppress && e.rng.Float64() < s.def.SplashChance {
		e.emit(event.EffectSplash, p, s.id)
	}
	return OutcomeCreated, nil
}

// Remove destroys the cell at p, reporting whether one existed
func (s *Store) Remove(p core.Point) (bool, error) {
	if s.busy {
		return false, ErrBusy
	}
	return s.remove(p), nil
}

func (s *Store) remove(p core.Point) bool {
	if !s.Occupied(p) {
		return false
	}
	id, ok := s.index[p]
	if !ok {
		return false
	}
	s.unlinkNeighbors(id)
	delete(s.index, p)
	s.occ.Clear(p)
	s.eng.owners.Release(p, s.id)
	s.dirty.Mark(p)

	c := &s.cells[id]
	c.alive = false
	c.Flags = 0
	s.free = append(s.free, id)

	s.eng.m.removals.Add(1)
	s.eng.m.cellsLive.Add(-1)
	return true
}

func (s *Store) alloc(p core.Point, lifespan float64, source int) CellID {
	var id CellID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		id = CellID(len(s.cells))
		s.cells = append(s.cells, Cell{})
	}
	serial := s.cells[id].serial + 1
	s.cells[id] = Cell{
		Pos:               p,
		Lifespan:          lifespan,
		LastSourceID:      source,
		LastIgnitionFrame: -1,
		RenderBaseIndex:   -1,
		serial:            serial,
		alive:             true,
	}
	for d := range s.cells[id].Neighbors {
		s.cells[id].Neighbors[d] = NoCell
	}
	s.index[p] = id
	return id
}

// link is the only writer of neighbor slots, keeping both directions in step
func (s *Store) link(a CellID, d core.Direction, b CellID) {
	o := d.Opposite()
	ca, cb := &s.cells[a], &s.cells[b]
	assert(ca.Neighbors[d] == NoCell && cb.Neighbors[o] == NoCell, "relink %d->%d dir %s", a, b, d)
	ca.Neighbors[d] = b
	ca.NeighborMask |= d.Bit()
	cb.Neighbors[o] = a
	cb.NeighborMask |= o.Bit()
}

func (s *Store) unlink(a CellID, d core.Direction) {
	b := s.cells[a].Neighbors[d]
	if b == NoCell {
		return
	}
	o := d.Opposite()
	assert(s.cells[b].Neighbors[o] == a, "asymmetric link %d->%d dir %s", a, b, d)
	s.cells[a].Neighbors[d] = NoCell
	s.cells[a].NeighborMask &^= d.Bit()
	s.cells[b].Neighbors[o] = NoCell
	s.cells[b].NeighborMask &^= o.Bit()
}

func (s *Store) linkNeighbors(id CellID) {
	p := s.cells[id].Pos
	for d := core.Direction(0); d < core.DirCount; d++ {
		q := p.Add(core.DirVectors[d])
		if !s.occ.Test(q) {
			continue
		}
		if n, ok := s.index[q]; ok {
			s.link(id, d, n)
		}
	}
}

func (s *Store) unlinkNeighbors(id CellID) {
	for d := core.Direction(0); d < core.DirCount; d++ {
		s.unlink(id, d)
	}
}

func (s *Store) burningNeighbor(c *Cell) bool {
	for _, n := range c.Neighbors {
		if n != NoCell && s.cells[n].Has(FlagOnFire) {
			return true
		}
	}
	return false
}

// reset drops every cell; generations keep counting so stale references stay stale
func (s *Store) reset() {
	if n := len(s.index); n > 0 {
		s.eng.m.cellsLive.Add(int64(-n))
	}
	s.cells = s.cells[:0]
	s.free = s.free[:0]
	clear(s.index)
	s.occ.Invalidate()
	s.eng.owners.ReleaseAll(s.id)
	s.prop.reset()
	s.dirty.MarkAll()
	s.busy = false
}
