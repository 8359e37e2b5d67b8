package raster

import "github.com/lixenwraith/goop/core"

// Fill rasterizes one falloff circle per point, then carves an optional exclusion circle
// excludeRadius < 0 disables the exclusion pass
func (f *Field) Fill(points []core.Point, radius int, excludeCenter core.Point, excludeRadius int) {
	f.Reset(points, radius)
	for _, p := range points {
		l := f.Local(p)
		f.FillCircle(l.X, l.Y, radius, true, true)
	}
	if excludeRadius >= 0 {
		l := f.Local(excludeCenter)
		f.FillCircle(l.X, l.Y, excludeRadius, false, false)
	}
}

// Disc rasterizes a single solid circle with no falloff
func (f *Field) Disc(center core.Point, radius int) {
	f.Reset([]core.Point{center}, radius)
	l := f.Local(center)
	f.FillCircle(l.X, l.Y, radius, true, false)
}
