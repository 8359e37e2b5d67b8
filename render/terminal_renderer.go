package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/engine"
	"github.com/lixenwraith/goop/status"
	"github.com/lixenwraith/goop/terrain"
)

// TerminalRenderer mirrors the engine grid onto a tcell screen, one terminal cell per grid cell
// Chunks drained from the engine are redrawn, plus chunks whose decaying cells moved to a new shade
type TerminalRenderer struct {
	screen   tcell.Screen
	eng      *engine.Engine
	terrain  terrain.Oracle
	originX  int
	originY  int
	palettes []Palette

	// shades holds the last drawn Shade per store and grid index, 0 when never drawn
	shades [][]uint8
}

// NewTerminalRenderer creates a renderer drawing the grid at (originX, originY)
func NewTerminalRenderer(screen tcell.Screen, eng *engine.Engine, oracle terrain.Oracle, originX, originY int) *TerminalRenderer {
	return &TerminalRenderer{
		screen:  screen,
		eng:     eng,
		terrain: oracle,
		originX: originX,
		originY: originY,
	}
}

// SetTerrain swaps the terrain source after a level change, callers follow with DrawAll
func (r *TerminalRenderer) SetTerrain(oracle terrain.Oracle) {
	r.terrain = oracle
}

func (r *TerminalRenderer) palette(i int) Palette {
	r.grow()
	return r.palettes[i]
}

// grow extends per-store state when stores were added after construction
func (r *TerminalRenderer) grow() {
	stores := r.eng.Stores()
	area := r.eng.Layout().Dims.Area()
	for len(r.palettes) < len(stores) {
		n := len(r.palettes)
		r.palettes = append(r.palettes, NewPalette(stores[n].Def().Color, n))
		r.shades = append(r.shades, make([]uint8, area))
	}
}

// Palette returns the palette used for a store
func (r *TerminalRenderer) Palette(s *engine.Store) Palette {
	return r.palette(int(s.ID()) - 1)
}

// DrawAll redraws every chunk and discards pending dirty state
func (r *TerminalRenderer) DrawAll() {
	r.eng.DrainDirty()
	layout := r.eng.Layout()
	for c := 0; c < layout.ChunkCount(); c++ {
		r.drawChunk(core.ChunkID(c))
	}
	r.screen.Show()
}

// RenderDirty redraws chunks changed since the last call and returns how many were drawn
// The engine only reports discrete changes, so lifespan decay is detected here by shade
func (r *TerminalRenderer) RenderDirty() int {
	redraw := mapset.New[core.ChunkID]()
	for _, c := range r.eng.DrainDirty() {
		redraw.Put(c)
	}
	r.collectFaded(redraw)

	if redraw.Size() == 0 {
		return 0
	}
	redraw.Each(func(c core.ChunkID) {
		r.drawChunk(c)
	})
	r.screen.Show()
	return redraw.Size()
}

// collectFaded adds chunks holding a decaying cell whose shade differs from the drawn one
func (r *TerminalRenderer) collectFaded(redraw mapset.Set[core.ChunkID]) {
	r.grow()
	layout := r.eng.Layout()
	for i, s := range r.eng.Stores() {
		drawn := r.shades[i]
		s.Each(func(_ engine.CellID, c *engine.Cell) {
			if c.Permanent() {
				return
			}
			if drawn[layout.Dims.Index(c.Pos)] != Shade(s.Project(c).LifespanFraction) {
				redraw.Put(layout.ChunkOf(c.Pos))
			}
		})
	}
}

func (r *TerminalRenderer) drawChunk(c core.ChunkID) {
	layout := r.eng.Layout()
	cs := layout.ChunkSize
	o := layout.ChunkOrigin(c)

	for y := o.Y; y < o.Y+cs && y < layout.Dims.H; y++ {
		for x := o.X; x < o.X+cs && x < layout.Dims.W; x++ {
			ch, fg, bg := TerrainCell(r.terrain.Classify(core.Point{X: x, Y: y}))
			style := tcell.StyleDefault.Foreground(fg.Color()).Background(bg.Color())
			r.screen.SetContent(r.originX+x, r.originY+y, ch, nil, style)
		}
	}

	base := int(c) * cs * cs
	for i, s := range r.eng.Stores() {
		pal := r.palette(i)
		drawn := r.shades[i]
		s.EachInChunk(c, func(cell *engine.Cell) {
			if cell.RenderBaseIndex < 0 {
				cell.RenderBaseIndex = base + layout.BitOffset(cell.Pos)
			}
			_, _, bg := TerrainCell(r.terrain.Classify(cell.Pos))
			v := s.Project(cell)
			ch, style := pal.Cell(v, bg)
			drawn[layout.Dims.Index(cell.Pos)] = Shade(v.LifespanFraction)
			r.screen.SetContent(r.originX+cell.Pos.X, r.originY+cell.Pos.Y, ch, nil, style)
		})
	}
}

// DrawStatus writes a one-line metrics summary at row y, suffix is appended verbatim
func (r *TerminalRenderer) DrawStatus(y int, suffix string) {
	m := r.eng.Metrics()
	line := fmt.Sprintf("frame %d  cells %d  ignitions %d  propagating %d  dirty %d  %s",
		r.eng.Frame(),
		m.Int(status.KeyCellsLive),
		m.Int(status.KeyIgnitions),
		m.Int(status.KeyPropagationActive),
		m.Int(status.KeyDirtyChunks),
		suffix,
	)

	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(RGBStatus.Color()).Background(RGBBlack.Color())
	x := 0
	for _, ch := range line {
		if x >= w {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
	r.screen.Show()
}
