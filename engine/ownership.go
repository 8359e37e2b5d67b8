package engine

import "github.com/lixenwraith/goop/core"

// StoreID identifies a store in the ownership map, 0 is reserved for unowned
type StoreID uint8

const NoStore StoreID = 0

// Ownership is the dense cross-store claim map, at most one owner per position
type Ownership struct {
	dims   core.Dims
	owners []StoreID
}

func NewOwnership(dims core.Dims) *Ownership {
	return &Ownership{
		dims:   dims,
		owners: make([]StoreID, dims.Area()),
	}
}

// Owner returns the claiming store, NoStore when free or out of bounds
func (o *Ownership) Owner(p core.Point) StoreID {
	if !o.dims.Contains(p) {
		return NoStore
	}
	return o.owners[o.dims.Index(p)]
}

// Claim assigns p to id, the caller must have evicted any previous owner
func (o *Ownership) Claim(p core.Point, id StoreID) {
	i := o.dims.Index(p)
	assert(o.owners[i] == NoStore || o.owners[i] == id, "double claim at %v: %d over %d", p, id, o.owners[i])
	o.owners[i] = id
}

// Release frees p if it is held by id
func (o *Ownership) Release(p core.Point, id StoreID) {
	if !o.dims.Contains(p) {
		return
	}
	i := o.dims.Index(p)
	if o.owners[i] == id {
		o.owners[i] = NoStore
	}
}

// ReleaseAll frees every position held by id
func (o *Ownership) ReleaseAll(id StoreID) {
	for i, s := range o.owners {
		if s == id {
			o.owners[i] = NoStore
		}
	}
}

// Reset frees every position
func (o *Ownership) Reset() {
	clear(o.owners)
}

// Count returns the number of positions held by id
func (o *Ownership) Count(id StoreID) int {
	n := 0
	for _, s := range o.owners {
		if s == id {
			n++
		}
	}
	return n
}
