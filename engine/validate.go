package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/goop/core"
)

// ErrInvariant wraps every Validate failure
var ErrInvariant = errors.New("invariant violated")

// Validate checks neighbor symmetry and completeness, cached masks, occupancy against the index, and ownership
// Intended for tests and debug tooling; cost is linear in grid area plus live cells
func (e *Engine) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
	}

	for _, s := range e.stores {
		occ := s.occupancy()
		if n := occ.Count(); n != len(s.index) {
			fail("store %s: %d occupancy bits for %d cells", s.def.Name, n, len(s.index))
		}

		for p, id := range s.index {
			c := s.CellByID(id)
			if c == nil || c.Pos != p {
				fail("store %s: index %v -> dead or moved slot %d", s.def.Name, p, id)
				continue
			}
			if !occ.Test(p) {
				fail("store %s: %v indexed but not occupied", s.def.Name, p)
			}
			if o := e.owners.Owner(p); o != s.id {
				fail("store %s: %v owned by %d", s.def.Name, p, o)
			}

			mask := c.NeighborMask
			c.recomputeMask()
			if mask != c.NeighborMask {
				fail("store %s: %v mask %08b, links say %08b", s.def.Name, p, mask, c.NeighborMask)
			}

			for d := core.Direction(0); d < core.DirCount; d++ {
				q := p.Add(core.DirVectors[d])
				want, present := s.index[q]
				got := c.Neighbors[d]
				switch {
				case present && got != want:
					fail("store %s: %v missing %s link to %v", s.def.Name, p, d, q)
				case !present && got != NoCell:
					fail("store %s: %v stale %s link", s.def.Name, p, d)
				case got != NoCell && s.cells[got].Neighbors[d.Opposite()] != id:
					fail("store %s: %v %s link not reciprocated", s.def.Name, p, d)
				}
			}
		}
	}

	dims := e.layout.Dims
	for y := 0; y < dims.H; y++ {
		for x := 0; x < dims.W; x++ {
			p := core.Point{X: x, Y: y}
			o := e.owners.Owner(p)
			if o == NoStore {
				continue
			}
			if int(o) > len(e.stores) || !e.stores[o-1].Contains(p) {
				fail("ownership %v -> store %d without a cell", p, o)
			}
		}
	}

	return errors.Join(errs...)
}
