package engine

import (
	"fmt"
	"log"
	"math/rand"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/parameter"
	"github.com/lixenwraith/goop/raster"
	"github.com/lixenwraith/goop/status"
	"github.com/lixenwraith/goop/substance"
	"github.com/lixenwraith/goop/terrain"
)

// Config configures an Engine, zero values take parameter defaults
type Config struct {
	Dims      core.Dims
	ChunkSize int
	BatchSize int

	// Terrain defaults to an all-floor map of Dims
	Terrain terrain.Oracle

	// Seed drives the splash roll
	Seed int64

	// Metrics and Effects are optional sinks, created when nil
	Metrics *status.Registry
	Effects *event.EffectQueue
}

// ZoneID identifies an exclusion zone
type ZoneID int

type zone struct {
	center core.Point
	r2     int
}

// metrics caches registry pointers so hot paths skip map lookups
type metrics struct {
	cellsLive   *atomic.Int64
	created     *atomic.Int64
	updated     *atomic.Int64
	rejected    *atomic.Int64
	removals    *atomic.Int64
	evictions   *atomic.Int64
	ignitions   *atomic.Int64
	propActive  *atomic.Int64
	propCells   *atomic.Int64
	propBatches *atomic.Int64
	ticks       *atomic.Int64
	dirty       *atomic.Int64
	tickSeconds *status.AtomicFloat
	propPeak    *status.AtomicFloat
}

func newMetrics(r *status.Registry) metrics {
	return metrics{
		cellsLive:   r.Ints.Get(status.KeyCellsLive),
		created:     r.Ints.Get(status.KeyPlacementsCreated),
		updated:     r.Ints.Get(status.KeyPlacementsUpdated),
		rejected:    r.Ints.Get(status.KeyPlacementsRejected),
		removals:    r.Ints.Get(status.KeyRemovals),
		evictions:   r.Ints.Get(status.KeyEvictions),
		ignitions:   r.Ints.Get(status.KeyIgnitions),
		propActive:  r.Ints.Get(status.KeyPropagationActive),
		propCells:   r.Ints.Get(status.KeyPropagationCells),
		propBatches: r.Ints.Get(status.KeyPropagationBatches),
		ticks:       r.Ints.Get(status.KeyTicks),
		dirty:       r.Ints.Get(status.KeyDirtyChunks),
		tickSeconds: r.Floats.Get(status.KeyTickSeconds),
		propPeak:    r.Floats.Get(status.KeyPropagationPeak),
	}
}

// Engine owns every store, the ownership map and the shared scratch state
// Not safe for concurrent use; only Effects and Metrics may be read from other goroutines
type Engine struct {
	layout    core.Layout
	batchSize int
	terrain   terrain.Oracle
	owners    *Ownership
	stores    []*Store
	byName    map[string]*Store

	zones    map[ZoneID]zone
	nextZone ZoneID
	loading  bool
	frame    int64

	rng     *rand.Rand
	scratch *raster.Field

	effects  *event.EffectQueue
	registry *status.Registry
	m        metrics
}

// New creates an engine with no stores
func New(cfg Config) *Engine {
	if cfg.Dims.W <= 0 || cfg.Dims.H <= 0 {
		cfg.Dims = core.Dims{W: parameter.DefaultGridWidth, H: parameter.DefaultGridHeight}
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = parameter.ChunkSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = parameter.PropagationBatchSize
	}
	if cfg.Terrain == nil {
		cfg.Terrain = terrain.NewMap(cfg.Dims)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry()
	}
	if cfg.Effects == nil {
		cfg.Effects = event.NewEffectQueue()
	}

	return &Engine{
		layout:    core.NewLayout(cfg.Dims, cfg.ChunkSize),
		batchSize: cfg.BatchSize,
		terrain:   cfg.Terrain,
		owners:    NewOwnership(cfg.Dims),
		byName:    make(map[string]*Store),
		zones:     make(map[ZoneID]zone),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		scratch:   &raster.Field{},
		effects:   cfg.Effects,
		registry:  cfg.Metrics,
		m:         newMetrics(cfg.Metrics),
	}
}

// Layout returns the grid and chunk geometry
func (e *Engine) Layout() core.Layout { return e.layout }

// Effects returns the effect trigger queue
func (e *Engine) Effects() *event.EffectQueue { return e.effects }

// Metrics returns the metrics registry
func (e *Engine) Metrics() *status.Registry { return e.registry }

// Frame returns the tick counter
func (e *Engine) Frame() int64 { return e.frame }

// Stores returns stores in id order
func (e *Engine) Stores() []*Store { return e.stores }

// Owner returns the store claiming p, nil when free
func (e *Engine) Owner(p core.Point) *Store {
	id := e.owners.Owner(p)
	if id == NoStore {
		return nil
	}
	return e.stores[id-1]
}

// AddStore registers a substance, the definition is normalized in place
func (e *Engine) AddStore(def *substance.Definition) (*Store, error) {
	if len(e.stores) >= parameter.MaxStores {
		return nil, ErrStoreLimit
	}
	if err := def.Normalize(); err != nil {
		return nil, err
	}
	if _, dup := e.byName[def.Name]; dup {
		return nil, fmt.Errorf("store %q already registered", def.Name)
	}
	s := newStore(StoreID(len(e.stores)+1), def, e)
	e.stores = append(e.stores, s)
	e.byName[def.Name] = s
	log.Printf("[goop] store %d registered: %s", s.id, def.Name)
	return s, nil
}

// Store returns the store with id, nil when unknown
func (e *Engine) Store(id StoreID) *Store {
	if id == NoStore || int(id) > len(e.stores) {
		return nil
	}
	return e.stores[id-1]
}

// StoreByName returns the store for a substance name
func (e *Engine) StoreByName(name string) *Store {
	return e.byName[name]
}

func (e *Engine) store(id StoreID) (*Store, error) {
	s := e.Store(id)
	if s == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStore, id)
	}
	return s, nil
}

func (e *Engine) emit(t event.EffectType, p core.Point, id StoreID) {
	e.effects.Push(event.Effect{Type: t, Pos: p, Store: uint8(id), Frame: e.frame})
}

// SetLoading toggles the loading gate, placements fail with ErrLoading while set
func (e *Engine) SetLoading(loading bool) {
	e.loading = loading
}

// Loading reports the loading gate
func (e *Engine) Loading() bool { return e.loading }

// AddExclusionZone registers a circular keep-out region
func (e *Engine) AddExclusionZone(center core.Point, radius int) ZoneID {
	e.nextZone++
	e.zones[e.nextZone] = zone{center: center, r2: radius * radius}
	return e.nextZone
}

// RemoveExclusionZone drops a zone, unknown ids are ignored
func (e *Engine) RemoveExclusionZone(id ZoneID) {
	delete(e.zones, id)
}

func (e *Engine) excluded(p core.Point) bool {
	for _, z := range e.zones {
		if p.DistSq(z.center) <= z.r2 {
			return true
		}
	}
	return false
}

// PlacePoint places one cell at full lifespan with a splash roll
func (e *Engine) PlacePoint(id StoreID, p core.Point, source int, frame int64) (Outcome, error) {
	s, err := e.store(id)
	if err != nil {
		return OutcomeRejected, err
	}
	return s.Place(p, source, frame, 0, false)
}

// AreaFill describes a batched circular placement
type AreaFill struct {
	Points []core.Point
	Radius int

	// Exclude carves a circle of ExcludeRadius around ExcludeCenter after the fill
	// ExcludeRadius 0 carves only the center
	Exclude       bool
	ExcludeCenter core.Point
	ExcludeRadius int

	SourceID int
	Frame    int64
}

// AreaResult tallies placement outcomes of one fill
type AreaResult struct {
	Created  int
	Updated  int
	Ignored  int
	Rejected int
}

// PlaceArea rasterizes fill and places every covered in-bounds position
// Per-cell rejections are counted, not returned; at most one splash is rolled per fill
func (e *Engine) PlaceArea(id StoreID, fill AreaFill) (AreaResult, error) {
	var res AreaResult
	s, err := e.store(id)
	if err != nil {
		return res, err
	}
	if e.loading {
		return res, ErrLoading
	}
	if s.busy {
		return res, ErrBusy
	}
	if len(fill.Points) == 0 || fill.Radius < 0 {
		return res, nil
	}

	exclude := -1
	if fill.Exclude {
		exclude = fill.ExcludeRadius
	}
	e.scratch.Fill(fill.Points, fill.Radius, fill.ExcludeCenter, exclude)
	splashed := false
	e.scratch.Each(func(p core.Point, fraction float64) {
		if !e.layout.Dims.Contains(p) {
			return
		}
		out, _ := s.Place(p, fill.SourceID, fill.Frame, fraction, splashed)
		switch out {
		case OutcomeCreated:
			res.Created++
			splashed = true
		case OutcomeUpdated:
			res.Updated++
		case OutcomeIgnored:
			res.Ignored++
		default:
			res.Rejected++
		}
	})
	return res, nil
}

// RemovePoint removes whatever cell owns p
func (e *Engine) RemovePoint(p core.Point) (bool, error) {
	s := e.Owner(p)
	if s == nil {
		return false, nil
	}
	return s.Remove(p)
}

// RemoveCircle removes every owned cell within radius of center, returning the count
func (e *Engine) RemoveCircle(center core.Point, radius int) (int, error) {
	return e.eachInDisc(center, radius, func(s *Store, p core.Point) (bool, error) {
		return s.Remove(p)
	})
}

// Ignite sets the cell owning p on fire
func (e *Engine) Ignite(p core.Point) (bool, error) {
	s := e.Owner(p)
	if s == nil {
		return false, nil
	}
	return s.Ignite(p)
}

// IgniteCircle ignites every flammable owned cell within radius of center
func (e *Engine) IgniteCircle(center core.Point, radius int) (int, error) {
	return e.eachInDisc(center, radius, func(s *Store, p core.Point) (bool, error) {
		return s.Ignite(p)
	})
}

// Freeze freezes the cell owning p
func (e *Engine) Freeze(p core.Point) (bool, error) {
	s := e.Owner(p)
	if s == nil {
		return false, nil
	}
	return s.Freeze(p)
}

// FreezeCircle freezes every freezable owned cell within radius of center
func (e *Engine) FreezeCircle(center core.Point, radius int) (int, error) {
	return e.eachInDisc(center, radius, func(s *Store, p core.Point) (bool, error) {
		return s.Freeze(p)
	})
}

// Extinguish puts out fire on the cell owning p
func (e *Engine) Extinguish(p core.Point) (bool, error) {
	s := e.Owner(p)
	if s == nil {
		return false, nil
	}
	return s.Extinguish(p)
}

func (e *Engine) eachInDisc(center core.Point, radius int, fn func(s *Store, p core.Point) (bool, error)) (int, error) {
	if radius < 0 {
		return 0, nil
	}
	e.scratch.Disc(center, radius)
	n := 0
	var firstErr error
	e.scratch.Each(func(p core.Point, _ float64) {
		s := e.Owner(p)
		if s == nil {
			return
		}
		ok, err := fn(s, p)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if ok {
			n++
		}
	})
	return n, firstErr
}

// TriggerPropagation starts electrification at p in the owning store
func (e *Engine) TriggerPropagation(p core.Point) bool {
	s := e.Owner(p)
	if s == nil {
		return false
	}
	return s.prop.Trigger(p)
}

// ResumePropagation runs one batch per store with pending events
// budget <= 0 uses the configured batch size
func (e *Engine) ResumePropagation(budget int) Status {
	if budget <= 0 {
		budget = e.batchSize
	}
	st := StatusDone
	for _, s := range e.stores {
		if s.prop.Resume(budget) == StatusInProgress {
			st = StatusInProgress
		}
	}
	return st
}

// Tick advances the frame counter and every store's timers by dt seconds
func (e *Engine) Tick(dt float64) {
	e.frame++
	for _, s := range e.stores {
		s.tick(dt, e.frame)
	}
	e.m.ticks.Add(1)
	e.m.tickSeconds.Add(dt)
}

// DrainDirty returns the sorted union of every store's dirty chunks and clears them
func (e *Engine) DrainDirty() []core.ChunkID {
	if len(e.stores) == 1 {
		out := e.stores[0].DrainDirty()
		e.m.dirty.Store(int64(len(out)))
		return out
	}
	seen := make([]bool, e.layout.ChunkCount())
	var out []core.ChunkID
	for _, s := range e.stores {
		for _, c := range s.DrainDirty() {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	slices.Sort(out)
	e.m.dirty.Store(int64(len(out)))
	return out
}

// SetTerrain swaps the terrain oracle for a new level, existing cells are not re-validated
func (e *Engine) SetTerrain(oracle terrain.Oracle) {
	e.terrain = oracle
}

// ResetAll is the level-transition hook: every store, the ownership map and all zones are cleared
// Pending propagation is dropped; generation counters keep increasing
func (e *Engine) ResetAll() {
	for _, s := range e.stores {
		s.reset()
	}
	e.owners.Reset()
	clear(e.zones)
	log.Printf("[goop] reset %d stores", len(e.stores))
}
