package engine

import (
	"testing"

	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/substance"
)

func TestExpiryCascade(t *testing.T) {
	e, _, st := newTestEngine(t, 30, 30, goopDef())
	s := st[0]
	mustPlace(t, s, pt(5, 5))
	mustPlace(t, s, pt(6, 5))
	mustPlace(t, s, pt(5, 6))
	s.Cell(pt(5, 5)).Lifespan = 0.01

	e.Tick(0.02)

	if s.Contains(pt(5, 5)) || s.Occupied(pt(5, 5)) {
		t.Fatal("expired cell still present")
	}
	if s.Cell(pt(6, 5)).Neighbors[core.DirW] != NoCell {
		t.Error("(6,5) still links west")
	}
	if s.Cell(pt(5, 6)).Neighbors[core.DirN] != NoCell {
		t.Error("(5,6) still links north")
	}
	if s.Cell(pt(6, 5)).Neighbors[core.DirSW] != s.index[pt(5, 6)] {
		t.Error("surviving diagonal link lost")
	}
	if e.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", e.Frame())
	}
	mustValidate(t, e)
}

func TestFadeCrossingOnce(t *testing.T) {
	e, _, st := newTestEngine(t, 30, 30, goopDef())
	s := st[0]
	mustPlace(t, s, pt(5, 5))
	s.Cell(pt(5, 5)).Lifespan = 1.6
	e.DrainDirty()
	e.Effects().Consume()

	e.Tick(0.2)
	if got := e.DrainDirty(); len(got) != 1 {
		t.Errorf("dirty after fade crossing = %v", got)
	}
	if n := countEffects(e, event.EffectFade); n != 1 {
		t.Errorf("fade effects = %d, want 1", n)
	}
	if !s.Cell(pt(5, 5)).Has(FlagExpiryPlayed) {
		t.Error("expiry flag not set")
	}

	e.Tick(0.2)
	if n := countEffects(e, event.EffectFade); n != 0 {
		t.Errorf("fade effect repeated %d times", n)
	}
	if got := e.DrainDirty(); got != nil {
		t.Errorf("dirty without crossing = %v", got)
	}
}

func TestPermanentCellsDoNotDecay(t *testing.T) {
	tar := &substance.Definition{Name: "tar", Lifespan: -1}
	e, _, st := newTestEngine(t, 10, 10, tar)
	mustPlace(t, st[0], pt(1, 1))
	for i := 0; i < 100; i++ {
		e.Tick(1)
	}
	c := st[0].Cell(pt(1, 1))
	if c == nil || c.Lifespan != -1 {
		t.Fatalf("permanent cell decayed: %+v", c)
	}
}

func TestFireSpreadsAlongLine(t *testing.T) {
	e, _, st := newTestEngine(t, 30, 30, oilDef())
	s := st[0]
	for x := 1; x <= 3; x++ {
		mustPlace(t, s, pt(x, 1))
	}

	ok, err := e.Ignite(pt(1, 1))
	if !ok || err != nil {
		t.Fatalf("Ignite = %v, %v", ok, err)
	}
	first := s.Cell(pt(1, 1))
	if !first.Has(FlagOnFire) || first.Lifespan != 3 {
		t.Errorf("burning cell: flags %b lifespan %v", first.Flags, first.Lifespan)
	}
	if !s.Cell(pt(2, 1)).Has(FlagIgnitePending) {
		t.Fatal("neighbor not pending")
	}
	if s.Cell(pt(3, 1)).Has(FlagIgnitePending) {
		t.Fatal("fire skipped a cell")
	}

	e.Tick(0.15)
	if !s.Cell(pt(2, 1)).Has(FlagOnFire) {
		t.Fatal("fire did not spread to (2,1)")
	}
	e.Tick(0.15)
	if !s.Cell(pt(3, 1)).Has(FlagOnFire) {
		t.Fatal("fire did not spread to (3,1)")
	}

	// Burn out
	for i := 0; i < 40; i++ {
		e.Tick(0.1)
	}
	if s.Len() != 0 {
		t.Errorf("%d cells survived burning", s.Len())
	}
	mustValidate(t, e)
}

func TestIgniteDedupWithinFrame(t *testing.T) {
	e, _, st := newTestEngine(t, 10, 10, oilDef())
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	if ok, _ := e.Ignite(pt(1, 1)); !ok {
		t.Fatal("first ignite failed")
	}
	_, _ = e.Extinguish(pt(1, 1))
	if ok, _ := e.Ignite(pt(1, 1)); ok {
		t.Error("second ignite in the same frame accepted")
	}
	e.Tick(0.01)
	if ok, _ := e.Ignite(pt(1, 1)); !ok {
		t.Error("ignite in a later frame refused")
	}
}

func TestFireOverridesLifespan(t *testing.T) {
	def := &substance.Definition{Name: "oil", Flammable: true, FireOverridesLifespan: true, BurnDuration: 2}
	_, _, st := newTestEngine(t, 10, 10, def)
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	s.Cell(pt(1, 1)).Lifespan = 1
	_, _ = s.Ignite(pt(1, 1))
	if got := s.Cell(pt(1, 1)).Lifespan; got != 2 {
		t.Errorf("Lifespan on ignition = %v, want 2", got)
	}

	// Refreshing a burning cell keeps its lifespan
	if _, err := s.Place(pt(1, 1), 1, 0, 0, true); err != nil {
		t.Fatal(err)
	}
	if got := s.Cell(pt(1, 1)).Lifespan; got != 2 {
		t.Errorf("Lifespan after refresh = %v, want 2", got)
	}
}

func TestPermanentCellBurnsUntilExtinguished(t *testing.T) {
	tar := &substance.Definition{Name: "tar", Lifespan: -1, Flammable: true}
	e, _, st := newTestEngine(t, 10, 10, tar)
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	_, _ = e.Ignite(pt(1, 1))
	for i := 0; i < 50; i++ {
		e.Tick(1)
	}
	c := s.Cell(pt(1, 1))
	if c == nil || !c.Has(FlagOnFire) || !c.Permanent() {
		t.Fatalf("permanent burning cell changed: %+v", c)
	}
	if ok, _ := e.Extinguish(pt(1, 1)); !ok || c.Has(FlagOnFire) {
		t.Error("Extinguish failed")
	}
}

func TestSelfIgnition(t *testing.T) {
	napalm := &substance.Definition{Name: "napalm", Flammable: true, SelfIgniteDelay: 0.5}
	e, _, st := newTestEngine(t, 10, 10, napalm)
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	e.Effects().Consume()

	e.Tick(0.3)
	if s.Cell(pt(1, 1)).Has(FlagOnFire) {
		t.Fatal("ignited early")
	}
	e.Tick(0.3)
	if !s.Cell(pt(1, 1)).Has(FlagOnFire) {
		t.Fatal("did not self-ignite")
	}
	if n := countEffects(e, event.EffectIgnite); n != 1 {
		t.Errorf("ignite effects = %d, want 1", n)
	}
}

func TestPlacementNextToFireCatches(t *testing.T) {
	e, _, st := newTestEngine(t, 10, 10, oilDef())
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	_, _ = e.Ignite(pt(1, 1))
	mustPlace(t, s, pt(2, 1))
	if !s.Cell(pt(2, 1)).Has(FlagIgnitePending) {
		t.Error("cell placed next to fire not pending")
	}
}

func TestFreezeStopsFireAndThaws(t *testing.T) {
	def := &substance.Definition{Name: "oil", Flammable: true, Freezable: true, FreezeDuration: 1}
	e, _, st := newTestEngine(t, 10, 10, def)
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	mustPlace(t, s, pt(2, 1))
	_, _ = e.Ignite(pt(1, 1))

	if ok, _ := e.Freeze(pt(1, 1)); !ok {
		t.Fatal("Freeze failed")
	}
	c := s.Cell(pt(1, 1))
	if c.Has(FlagOnFire) || !c.Has(FlagFrozen) {
		t.Fatalf("flags after freeze = %b", c.Flags)
	}

	e.Tick(0.5)
	if ok, _ := e.Ignite(pt(1, 1)); ok {
		t.Error("frozen cell ignited")
	}
	e.Tick(0.6)
	if s.Cell(pt(1, 1)).Has(FlagFrozen) {
		t.Error("cell did not thaw")
	}
}

func TestFreezeRequiresFreezable(t *testing.T) {
	e, _, st := newTestEngine(t, 10, 10, oilDef())
	mustPlace(t, st[0], pt(1, 1))
	if ok, _ := e.Freeze(pt(1, 1)); ok {
		t.Error("non-freezable substance froze")
	}
}

func TestElectrifiedTimerDecays(t *testing.T) {
	e, _, st := newTestEngine(t, 10, 10, goopDef())
	s := st[0]
	mustPlace(t, s, pt(1, 1))
	if !e.TriggerPropagation(pt(1, 1)) {
		t.Fatal("trigger refused")
	}
	e.ResumePropagation(0)
	if !s.Cell(pt(1, 1)).Has(FlagElectrified) {
		t.Fatal("not electrified")
	}
	e.Tick(2.5)
	if s.Cell(pt(1, 1)).Has(FlagElectrified) {
		t.Error("charge did not decay")
	}
}
