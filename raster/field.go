// Package raster rasterizes area fills into a scratch bitfield with per-cell falloff
package raster

import (
	"math/bits"

	"github.com/lixenwraith/goop/core"
)

// Field is a rectangular scratch bitfield in local coordinates offset by Origin
// Each set bit carries a falloff fraction, 0 at a fill center and 1 at its rim
type Field struct {
	Origin core.Point
	W, H   int

	words   []uint64
	falloff []float64
}

// NewField allocates a field covering the bounding box of points expanded by radius
func NewField(points []core.Point, radius int) *Field {
	f := &Field{}
	f.Reset(points, radius)
	return f
}

// Reset resizes and clears the field for a new fill, reusing backing storage when it fits
func (f *Field) Reset(points []core.Point, radius int) {
	if radius < 0 {
		radius = 0
	}
	if len(points) == 0 {
		f.Origin = core.Point{}
		f.W, f.H = 0, 0
		f.words = f.words[:0]
		f.falloff = f.falloff[:0]
		return
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	f.Origin = core.Point{X: minX - radius, Y: minY - radius}
	f.W = maxX - minX + 2*radius + 1
	f.H = maxY - minY + 2*radius + 1

	n := f.W * f.H
	nw := (n + core.WordBits - 1) / core.WordBits
	if cap(f.words) < nw {
		f.words = make([]uint64, nw)
	} else {
		f.words = f.words[:nw]
		clear(f.words)
	}
	if cap(f.falloff) < n {
		f.falloff = make([]float64, n)
	} else {
		f.falloff = f.falloff[:n]
	}
	for i := range f.falloff {
		f.falloff[i] = 1
	}
}

// Local converts a world position to field coordinates
func (f *Field) Local(p core.Point) core.Point {
	return core.Point{X: p.X - f.Origin.X, Y: p.Y - f.Origin.Y}
}

func (f *Field) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.W && y < f.H
}

// Has reports whether local (x, y) is set
func (f *Field) Has(x, y int) bool {
	if !f.inside(x, y) {
		return false
	}
	i := y*f.W + x
	return f.words[i/core.WordBits]&(1<<uint(i%core.WordBits)) != 0
}

// Fraction returns the stored falloff at local (x, y), 1 when unset
func (f *Field) Fraction(x, y int) float64 {
	if !f.inside(x, y) {
		return 1
	}
	return f.falloff[y*f.W+x]
}

func (f *Field) set(i int) {
	f.words[i/core.WordBits] |= 1 << uint(i%core.WordBits)
}

func (f *Field) unset(i int) {
	f.words[i/core.WordBits] &^= 1 << uint(i%core.WordBits)
}

// Count returns the number of set bits
func (f *Field) Count() int {
	n := 0
	for _, w := range f.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Each calls fn for every set bit in row-major order with its world position and falloff fraction
func (f *Field) Each(fn func(p core.Point, fraction float64)) {
	for wi, w := range f.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			w &= w - 1
			i := wi*core.WordBits + b
			fn(core.Point{X: f.Origin.X + i%f.W, Y: f.Origin.Y + i/f.W}, f.falloff[i])
		}
	}
}
