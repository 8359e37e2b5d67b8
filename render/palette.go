package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/goop/engine"
	"github.com/lixenwraith/goop/terrain"
)

// Fallback substance colors when a definition carries none or an invalid one
var fallbackColors = []RGB{
	{111, 191, 63},
	{63, 127, 223},
	{223, 111, 31},
	{191, 63, 191},
	{200, 200, 60},
}

// Lifespan glyph ramp, densest first
var lifeGlyphs = [...]rune{'█', '▓', '▒', '░'}

// Palette maps cell views of one store to glyphs and styles
type Palette struct {
	Base RGB
}

// NewPalette picks the definition color, falling back by store index
func NewPalette(hex string, index int) Palette {
	if c, err := ParseHex(hex); err == nil {
		return Palette{Base: c}
	}
	return Palette{Base: fallbackColors[index%len(fallbackColors)]}
}

// fadeLevels quantizes the lifespan color ramp so a drawn cell only changes at known steps
const fadeLevels = 16

func glyphIndex(fraction float64) int {
	switch {
	case fraction >= 0.66:
		return 0
	case fraction >= 0.33:
		return 1
	case fraction >= 0.1:
		return 2
	default:
		return 3
	}
}

// Glyph selects the block density for a lifespan fraction
func Glyph(fraction float64) rune {
	return lifeGlyphs[glyphIndex(fraction)]
}

func fadeLevel(fraction float64) int {
	fraction = max(0, min(1, fraction))
	return int(fraction*(fadeLevels-1) + 0.5)
}

// Shade identifies the glyph and color step drawn for a lifespan fraction, never 0
// Two fractions with the same Shade render identically absent state overlays
func Shade(fraction float64) uint8 {
	return uint8(glyphIndex(fraction)*fadeLevels + fadeLevel(fraction) + 1)
}

// Cell returns the glyph and style for a view over background bg
// State overlays take priority: frozen, then fire, then charge
func (p Palette) Cell(v engine.CellView, bg RGB) (rune, tcell.Style) {
	fg := Lerp(Scale(p.Base, 0.35), p.Base, float64(fadeLevel(v.LifespanFraction))/(fadeLevels-1))
	switch {
	case v.Frozen:
		fg = Lerp(fg, RGBFrozen, 0.7)
	case v.OnFire:
		fg = Lerp(fg, RGBFire, 0.8)
	case v.Electrified:
		fg = Lerp(fg, RGBCharge, 0.6)
	}
	style := tcell.StyleDefault.Foreground(fg.Color()).Background(bg.Color())
	if v.Electrified && !v.Frozen {
		style = style.Bold(true)
	}
	return Glyph(v.LifespanFraction), style
}

// TerrainCell returns the empty-cell glyph, foreground and background for a terrain class
func TerrainCell(c terrain.Class) (rune, RGB, RGB) {
	switch c {
	case terrain.Wall:
		return '#', RGBWall, RGBBlack
	case terrain.FaceWall:
		return '▀', RGBFaceWall, RGBBlack
	case terrain.Pit:
		return ' ', RGBBlack, RGBPit
	case terrain.Occupied:
		return '·', RGBWall, RGBFloor
	default:
		return ' ', RGBBlack, RGBFloor
	}
}
