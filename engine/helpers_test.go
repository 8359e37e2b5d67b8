package engine

import (
	"io"
	"log"
	"os"
	"testing"

	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/substance"
	"github.com/lixenwraith/goop/terrain"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func goopDef() *substance.Definition {
	return &substance.Definition{Name: "goop", Electrifiable: true, Freezable: true}
}

func oilDef() *substance.Definition {
	return &substance.Definition{Name: "oil", Flammable: true, BurnDuration: 3, IgniteSpreadDelay: 0.1}
}

// newTestEngine builds an all-floor engine with one store per definition
func newTestEngine(t *testing.T, w, h int, defs ...*substance.Definition) (*Engine, *terrain.Map, []*Store) {
	t.Helper()
	dims := core.Dims{W: w, H: h}
	tm := terrain.NewMap(dims)
	e := New(Config{Dims: dims, Terrain: tm, Seed: 1})
	stores := make([]*Store, 0, len(defs))
	for _, d := range defs {
		s, err := e.AddStore(d)
		if err != nil {
			t.Fatalf("AddStore(%s): %v", d.Name, err)
		}
		stores = append(stores, s)
	}
	return e, tm, stores
}

func pt(x, y int) core.Point { return core.Point{X: x, Y: y} }

func mustPlace(t *testing.T, s *Store, p core.Point) {
	t.Helper()
	out, err := s.Place(p, 1, 0, 0, true)
	if err != nil || out != OutcomeCreated {
		t.Fatalf("Place(%v) = %v, %v; want created", p, out, err)
	}
}

func fillRect(t *testing.T, s *Store, x0, y0, x1, y1 int) {
	t.Helper()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mustPlace(t, s, pt(x, y))
		}
	}
}

func countEffects(e *Engine, typ event.EffectType) int {
	n := 0
	for _, ef := range e.Effects().Consume() {
		if ef.Type == typ {
			n++
		}
	}
	return n
}

func mustValidate(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
