package engine

import (
	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/event"
)

// ignite sets the cell burning and schedules its flammable neighbors
// Returns false when the cell cannot burn or already ignited this frame
func (s *Store) ignite(id CellID, frame int64) bool {
	c := &s.cells[id]
	if !s.def.Flammable || c.Has(FlagFrozen) || c.Has(FlagOnFire) {
		return false
	}
	if c.LastIgnitionFrame == frame {
		return false
	}
	c.Flags |= FlagOnFire
	c.Flags &^= FlagIgnitePending
	c.IgniteDelay = 0
	c.LastIgnitionFrame = frame

	// Permanent cells burn until extinguished
	if !c.Permanent() {
		if s.def.FireOverridesLifespan || c.Lifespan > s.def.BurnDuration {
			c.Lifespan = s.def.BurnDuration
		}
	}

	for _, n := range c.Neighbors {
		if n == NoCell {
			continue
		}
		nc := &s.cells[n]
		if nc.Flags&(FlagOnFire|FlagFrozen|FlagIgnitePending) != 0 {
			continue
		}
		nc.Flags |= FlagIgnitePending
		nc.IgniteDelay = s.def.IgniteSpreadDelay
	}

	s.dirty.Mark(c.Pos)
	s.eng.m.ignitions.Add(1)
	s.eng.emit(event.EffectIgnite, c.Pos, s.id)
	return true
}

// Ignite sets the cell at p on fire
func (s *Store) Ignite(p core.Point) (bool, error) {
	if s.busy {
		return false, ErrBusy
	}
	id, ok := s.lookup(p)
	if !ok {
		return false, nil
	}
	return s.ignite(id, s.eng.frame), nil
}

// Freeze stops fire, pending ignition and charge on the cell at p for the substance's freeze duration
func (s *Store) Freeze(p core.Point) (bool, error) {
	if s.busy {
		return false, ErrBusy
	}
	id, ok := s.lookup(p)
	if !ok || !s.def.Freezable {
		return false, nil
	}
	c := &s.cells[id]
	c.Flags |= FlagFrozen
	c.Flags &^= FlagOnFire | FlagIgnitePending | FlagElectrified
	c.FreezeTime = s.def.FreezeDuration
	c.IgniteDelay = 0
	c.ElectrifiedTime = 0
	s.dirty.Mark(p)
	s.eng.emit(event.EffectFreeze, p, s.id)
	return true, nil
}

// Extinguish clears fire and pending ignition on the cell at p
func (s *Store) Extinguish(p core.Point) (bool, error) {
	if s.busy {
		return false, ErrBusy
	}
	id, ok := s.lookup(p)
	if !ok {
		return false, nil
	}
	c := &s.cells[id]
	if c.Flags&(FlagOnFire|FlagIgnitePending) == 0 {
		return false, nil
	}
	c.Flags &^= FlagOnFire | FlagIgnitePending
	c.IgniteDelay = 0
	s.dirty.Mark(p)
	return true, nil
}

func (s *Store) lookup(p core.Point) (CellID, bool) {
	if !s.Occupied(p) {
		return NoCell, false
	}
	id, ok := s.index[p]
	return id, ok
}

// tick advances every timer by dt seconds
// Ignitions and removals are collected during the sweep and applied after it
func (s *Store) tick(dt float64, frame int64) {
	if s.busy {
		return
	}
	s.expired = s.expired[:0]
	s.igniting = s.igniting[:0]

	for i := range s.cells {
		c := &s.cells[i]
		if !c.alive {
			continue
		}

		if !c.Permanent() {
			before := c.Lifespan
			c.Lifespan -= dt
			if before >= s.def.FadeThreshold && c.Lifespan < s.def.FadeThreshold {
				s.dirty.Mark(c.Pos)
				if !c.Has(FlagExpiryPlayed) {
					c.Flags |= FlagExpiryPlayed
					s.eng.emit(event.EffectFade, c.Pos, s.id)
				}
			}
			if c.Lifespan <= 0 {
				s.expired = append(s.expired, CellID(i))
				continue
			}
		}

		if c.Has(FlagIgnitePending) {
			c.IgniteDelay -= dt
			if c.IgniteDelay <= 0 {
				s.igniting = append(s.igniting, CellID(i))
			}
		}

		if c.Has(FlagElectrified) {
			c.ElectrifiedTime -= dt
			if c.ElectrifiedTime <= 0 {
				c.ElectrifiedTime = 0
				c.Flags &^= FlagElectrified
				s.dirty.Mark(c.Pos)
			}
		}

		if c.Has(FlagFrozen) {
			c.FreezeTime -= dt
			if c.FreezeTime <= 0 {
				c.FreezeTime = 0
				c.Flags &^= FlagFrozen
				s.dirty.Mark(c.Pos)
			}
		}
	}

	for _, id := range s.igniting {
		if s.cells[id].alive && s.cells[id].Has(FlagIgnitePending) {
			s.ignite(id, frame)
		}
	}
	for _, id := range s.expired {
		if s.cells[id].alive {
			s.remove(s.cells[id].Pos)
		}
	}
}
