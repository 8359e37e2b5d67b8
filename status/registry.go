package status

import "sync/atomic"

// Metric keys published by the engine
const (
	KeyCellsLive          = "goop.cells.live"
	KeyPlacementsCreated  = "goop.place.created"
	KeyPlacementsUpdated  = "goop.place.updated"
	KeyPlacementsRejected = "goop.place.rejected"
	KeyRemovals           = "goop.remove"
	KeyEvictions          = "goop.evict"
	KeyIgnitions          = "goop.ignite"
	KeyPropagationActive  = "goop.prop.active"
	KeyPropagationCells   = "goop.prop.cells"
	KeyPropagationBatches = "goop.prop.batches"
	KeyTicks              = "goop.ticks"
	KeyTickSeconds        = "goop.tick.seconds"
	KeyDirtyChunks        = "goop.dirty.chunks"
	KeyPropagationPeak    = "goop.prop.peak"
)

// Registry is the central metrics facade
// The engine caches pointers at construction; hot paths write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Int returns the current value of an integer metric, 0 if never registered
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}
