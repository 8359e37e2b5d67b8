package engine

import "errors"

// Placement and mutation errors, none is fatal; callers routinely ignore them
var (
	ErrOutOfBounds  = errors.New("position outside grid")
	ErrIneligible   = errors.New("terrain rejects substance")
	ErrPermanent    = errors.New("permanent cell cannot shrink")
	ErrExcluded     = errors.New("position inside exclusion zone")
	ErrLoading      = errors.New("placement rejected while loading")
	ErrBusy         = errors.New("store mutated during propagation batch")
	ErrUnknownStore = errors.New("unknown store")
	ErrStoreLimit   = errors.New("store limit reached")
)
