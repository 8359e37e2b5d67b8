package engine

import (
	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/parameter"
)

// Status reports whether a resumable computation finished
type Status uint8

const (
	StatusDone Status = iota
	StatusInProgress
)

func (s Status) String() string {
	if s == StatusDone {
		return "done"
	}
	return "in_progress"
}

// spreadEvent is one triggered propagation, owning its queue and generation
type spreadEvent struct {
	generation uint64
	queue      []cellRef
	head       int
	processed  int
}

func (ev *spreadEvent) empty() bool {
	return ev.head >= len(ev.queue)
}

// Propagator spreads electrification through a store's neighbor graph in bounded batches
// Each trigger gets a fresh generation; a cell stamped with the current generation is never enqueued twice
type Propagator struct {
	store *Store

	// generation survives reset so stamps left on reused slots stay older than any new event
	generation uint64
	events     []*spreadEvent

	// Processed counts dequeued live cells since construction
	Processed int
	// Resumptions counts Resume calls that found work
	Resumptions int
}

func newPropagator(s *Store) *Propagator {
	return &Propagator{store: s}
}

// Active reports pending event count
func (pr *Propagator) Active() int {
	return len(pr.events)
}

// Generation returns the most recently assigned generation
func (pr *Propagator) Generation() uint64 {
	return pr.generation
}

// QueueLen returns the number of queued references across events
func (pr *Propagator) QueueLen() int {
	n := 0
	for _, ev := range pr.events {
		n += len(ev.queue) - ev.head
	}
	return n
}

func (pr *Propagator) eligible(c *Cell) bool {
	return !c.Has(FlagFrozen) && !pr.store.fading(c)
}

// Trigger starts a new event at p, returning false when p cannot conduct
func (pr *Propagator) Trigger(p core.Point) bool {
	s := pr.store
	if s.busy || !s.def.Electrifiable {
		return false
	}
	id, ok := s.lookup(p)
	if !ok {
		return false
	}
	c := &s.cells[id]
	if !pr.eligible(c) {
		return false
	}

	pr.generation++
	c.ElectrifyGeneration = pr.generation
	ev := &spreadEvent{generation: pr.generation}
	ev.queue = append(ev.queue, cellRef{id: id, serial: c.serial})
	pr.events = append(pr.events, ev)

	s.eng.m.propActive.Add(1)
	s.eng.emit(event.EffectElectrify, p, s.id)
	return true
}

// Resume processes up to budget cells across pending events in trigger order
// Suspension happens only between cells; Done is returned once every queue has drained
func (pr *Propagator) Resume(budget int) Status {
	if len(pr.events) == 0 {
		return StatusDone
	}
	if budget <= 0 {
		budget = parameter.PropagationBatchSize
	}

	s := pr.store
	s.busy = true
	pr.Resumptions++
	s.eng.m.propBatches.Add(1)
	s.eng.m.propPeak.Max(float64(pr.QueueLen()))

	full := s.def.ElectrifyDuration
	for budget > 0 && len(pr.events) > 0 {
		ev := pr.events[0]
		for budget > 0 && !ev.empty() {
			ref := ev.queue[ev.head]
			ev.head++
			budget--

			c := s.CellByID(ref.id)
			if c == nil || c.serial != ref.serial || !pr.eligible(c) {
				continue
			}
			ev.processed++
			pr.Processed++
			s.eng.m.propCells.Add(1)

			if !c.Has(FlagElectrified) {
				s.dirty.Mark(c.Pos)
			}
			c.Flags |= FlagElectrified
			c.ElectrifiedTime = full

			for _, n := range c.Neighbors {
				if n == NoCell {
					continue
				}
				nc := &s.cells[n]
				if nc.ElectrifyGeneration >= ev.generation {
					continue
				}
				if nc.Has(FlagElectrified) && nc.ElectrifiedTime >= full-parameter.ElectrifyTopOffEpsilon {
					continue
				}
				nc.ElectrifyGeneration = ev.generation
				ev.queue = append(ev.queue, cellRef{id: n, serial: nc.serial})
			}
		}
		if ev.empty() {
			pr.events[0] = nil
			pr.events = pr.events[1:]
			s.eng.m.propActive.Add(-1)
		}
	}

	s.busy = false
	if len(pr.events) == 0 {
		pr.events = nil
		return StatusDone
	}
	return StatusInProgress
}

// reset drops pending events, generation keeps counting
func (pr *Propagator) reset() {
	if n := len(pr.events); n > 0 {
		pr.store.eng.m.propActive.Add(int64(-n))
	}
	pr.events = nil
}
