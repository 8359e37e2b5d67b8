package engine

import (
	"testing"

	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/status"
	"github.com/lixenwraith/goop/substance"
)

func TestPropagationSpreadsSquare(t *testing.T) {
	e, _, st := newTestEngine(t, 30, 30, goopDef())
	s := st[0]
	fillRect(t, s, 10, 10, 15, 15)
	e.Effects().Consume()

	if !e.TriggerPropagation(pt(12, 12)) {
		t.Fatal("trigger refused")
	}
	if n := countEffects(e, event.EffectElectrify); n != 1 {
		t.Errorf("electrify effects = %d, want 1", n)
	}

	resumes := 0
	for e.ResumePropagation(200) == StatusInProgress {
		resumes++
		if resumes > 10 {
			t.Fatal("propagation did not terminate")
		}
	}

	full := s.Def().ElectrifyDuration
	s.Each(func(_ CellID, c *Cell) {
		if !c.Has(FlagElectrified) || c.ElectrifiedTime != full {
			t.Errorf("%v: flags %b time %v", c.Pos, c.Flags, c.ElectrifiedTime)
		}
	})
	if s.prop.Processed != 25 {
		t.Errorf("Processed = %d, want 25", s.prop.Processed)
	}

	// Re-trigger in the same tick only tops off the start cell
	gen := s.prop.Generation()
	if !e.TriggerPropagation(pt(12, 12)) {
		t.Fatal("re-trigger refused")
	}
	if s.prop.Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", s.prop.Generation(), gen+1)
	}
	if e.ResumePropagation(200) != StatusDone {
		t.Fatal("re-trigger not done in one batch")
	}
	if s.prop.Processed != 26 {
		t.Errorf("Processed after re-trigger = %d, want 26", s.prop.Processed)
	}
	s.Each(func(_ CellID, c *Cell) {
		if c.ElectrifiedTime != full {
			t.Errorf("%v: time %v after re-trigger", c.Pos, c.ElectrifiedTime)
		}
	})
}

func TestPropagationTerminationBound(t *testing.T) {
	e, _, st := newTestEngine(t, 60, 60, goopDef())
	s := st[0]
	fillRect(t, s, 5, 5, 35, 35) // 900 cells

	const batch = 200
	if !s.Propagator().Trigger(pt(20, 20)) {
		t.Fatal("trigger refused")
	}
	resumes := 0
	for {
		resumes++
		if s.Propagator().Resume(batch) == StatusDone {
			break
		}
		if resumes > 100 {
			t.Fatal("propagation did not terminate")
		}
	}

	if want := (900 + batch - 1) / batch; resumes > want {
		t.Errorf("resumptions = %d, want <= %d", resumes, want)
	}
	if s.prop.Processed != 900 {
		t.Errorf("Processed = %d, want 900 (no cell twice)", s.prop.Processed)
	}
	if got := e.Metrics().Int(status.KeyPropagationCells); got != 900 {
		t.Errorf("metric = %d, want 900", got)
	}
	if s.Propagator().Active() != 0 {
		t.Errorf("Active = %d after done", s.Propagator().Active())
	}
}

func TestPropagationBlockedByFrozenWall(t *testing.T) {
	e, _, st := newTestEngine(t, 30, 30, goopDef())
	s := st[0]
	fillRect(t, s, 10, 10, 15, 15)
	for y := 10; y < 15; y++ {
		if ok, _ := e.Freeze(pt(12, y)); !ok {
			t.Fatalf("freeze (12,%d) failed", y)
		}
	}

	e.TriggerPropagation(pt(10, 12))
	for e.ResumePropagation(200) == StatusInProgress {
	}

	s.Each(func(_ CellID, c *Cell) {
		want := c.Pos.X < 12
		if c.Has(FlagElectrified) != want {
			t.Errorf("%v electrified = %v, want %v", c.Pos, c.Has(FlagElectrified), want)
		}
	})
}

func TestPropagationTriggerRejects(t *testing.T) {
	plain := &substance.Definition{Name: "oil"}
	e, _, st := newTestEngine(t, 30, 30, goopDef(), plain)
	g, o := st[0], st[1]
	mustPlace(t, g, pt(1, 1))
	mustPlace(t, g, pt(2, 2))
	mustPlace(t, o, pt(5, 5))
	g.Cell(pt(2, 2)).Lifespan = 1 // fading

	tests := []struct {
		name string
		fn   func() bool
	}{
		{"empty position", func() bool { return e.TriggerPropagation(pt(20, 20)) }},
		{"not electrifiable", func() bool { return e.TriggerPropagation(pt(5, 5)) }},
		{"fading", func() bool { return e.TriggerPropagation(pt(2, 2)) }},
		{"frozen", func() bool {
			_, _ = e.Freeze(pt(1, 1))
			return e.TriggerPropagation(pt(1, 1))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn() {
				t.Error("trigger accepted")
			}
		})
	}
	if g.Propagator().Active() != 0 {
		t.Errorf("Active = %d", g.Propagator().Active())
	}
}

func TestPropagationSkipsStaleReferences(t *testing.T) {
	e, _, st := newTestEngine(t, 40, 40, goopDef())
	s := st[0]
	fillRect(t, s, 10, 10, 13, 13)

	e.TriggerPropagation(pt(11, 11))
	if s.prop.Resume(1) != StatusInProgress {
		t.Fatal("single-cell budget finished a 9-cell region")
	}

	// Free a queued neighbor and reuse its slot far away
	_, _ = s.Remove(pt(12, 12))
	mustPlace(t, s, pt(30, 30))

	for s.prop.Resume(1) == StatusInProgress {
	}
	if s.Cell(pt(30, 30)).Has(FlagElectrified) {
		t.Error("reused slot was electrified through a stale reference")
	}
	if s.prop.Processed != 8 {
		t.Errorf("Processed = %d, want 8", s.prop.Processed)
	}
	mustValidate(t, e)
}

func TestPropagationMultipleEvents(t *testing.T) {
	e, _, st := newTestEngine(t, 40, 40, goopDef())
	s := st[0]
	fillRect(t, s, 1, 1, 4, 4)
	fillRect(t, s, 20, 20, 23, 23)

	e.TriggerPropagation(pt(2, 2))
	e.TriggerPropagation(pt(21, 21))
	if s.prop.Active() != 2 {
		t.Fatalf("Active = %d, want 2", s.prop.Active())
	}
	if e.ResumePropagation(200) != StatusDone {
		t.Fatal("two small events not done in one batch")
	}
	if s.prop.Processed != 18 {
		t.Errorf("Processed = %d, want 18", s.prop.Processed)
	}
}

func TestResetDropsPropagation(t *testing.T) {
	e, _, st := newTestEngine(t, 60, 60, goopDef())
	s := st[0]
	fillRect(t, s, 0, 0, 30, 30)
	e.TriggerPropagation(pt(15, 15))
	e.ResumePropagation(10)
	gen := s.prop.Generation()

	e.ResetAll()
	if s.prop.Active() != 0 {
		t.Errorf("Active = %d after reset", s.prop.Active())
	}
	if e.ResumePropagation(10) != StatusDone {
		t.Error("resume after reset found work")
	}

	mustPlace(t, s, pt(1, 1))
	e.TriggerPropagation(pt(1, 1))
	if s.prop.Generation() <= gen {
		t.Errorf("generation reused: %d <= %d", s.prop.Generation(), gen)
	}
	if got := e.Metrics().Int(status.KeyPropagationActive); got != 1 {
		t.Errorf("active metric = %d, want 1", got)
	}
}
