package raster

import (
	"math"
	"testing"

	"github.com/lixenwraith/goop/core"
)

func TestFalloffCurve(t *testing.T) {
	if Falloff(0) != 0 {
		t.Errorf("Falloff(0) = %v, want 0", Falloff(0))
	}
	if math.Abs(Falloff(1)-1) > 1e-12 {
		t.Errorf("Falloff(1) = %v, want 1", Falloff(1))
	}
	prev := Falloff(0)
	for i := 1; i <= 1000; i++ {
		v := Falloff(float64(i) / 1000)
		if v < prev {
			t.Fatalf("Falloff not monotone at t=%v: %v < %v", float64(i)/1000, v, prev)
		}
		prev = v
	}
}

func TestRadiusZeroSingleCell(t *testing.T) {
	center := core.Point{X: 5, Y: 5}
	f := NewField([]core.Point{center}, 0)
	f.Disc(center, 0)
	if f.Count() != 1 {
		t.Fatalf("Count = %d, want 1", f.Count())
	}
	var got core.Point
	f.Each(func(p core.Point, fraction float64) {
		got = p
		if fraction != 0 {
			t.Errorf("fraction = %v, want 0", fraction)
		}
	})
	if got != center {
		t.Errorf("set cell %v, want %v", got, center)
	}
}

func TestDiscCoverage(t *testing.T) {
	for r := 1; r <= 12; r++ {
		center := core.Point{X: 100, Y: 50}
		var f Field
		f.Disc(center, r)

		for dy := -r - 2; dy <= r+2; dy++ {
			for dx := -r - 2; dx <= r+2; dx++ {
				l := f.Local(core.Point{X: center.X + dx, Y: center.Y + dy})
				d2 := dx*dx + dy*dy
				has := f.Has(l.X, l.Y)
				if d2 <= (r-1)*(r-1) && !has {
					t.Fatalf("r=%d: interior (%d,%d) not filled", r, dx, dy)
				}
				if d2 > (r+1)*(r+1) && has {
					t.Fatalf("r=%d: exterior (%d,%d) filled", r, dx, dy)
				}
			}
		}
	}
}

func TestDiscSymmetry(t *testing.T) {
	r := 7
	center := core.Point{X: 0, Y: 0}
	var f Field
	f.Disc(center, r)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			a := f.Local(core.Point{X: dx, Y: dy})
			b := f.Local(core.Point{X: -dx, Y: dy})
			c := f.Local(core.Point{X: dx, Y: -dy})
			if f.Has(a.X, a.Y) != f.Has(b.X, b.Y) || f.Has(a.X, a.Y) != f.Has(c.X, c.Y) {
				t.Fatalf("asymmetric fill at (%d,%d)", dx, dy)
			}
		}
	}
}

func TestFalloffMonotonicity(t *testing.T) {
	center := core.Point{X: 20, Y: 20}
	var f Field
	f.Fill([]core.Point{center}, 9, core.Point{}, -1)

	type sample struct {
		d2 int
		v  float64
	}
	var samples []sample
	f.Each(func(p core.Point, fraction float64) {
		samples = append(samples, sample{d2: p.DistSq(center), v: fraction})
	})
	if len(samples) == 0 {
		t.Fatal("fill produced no cells")
	}
	for _, a := range samples {
		for _, b := range samples {
			if a.d2 < b.d2 && a.v > b.v {
				t.Fatalf("closer cell (d²=%d, f=%v) has larger falloff than farther (d²=%d, f=%v)", a.d2, a.v, b.d2, b.v)
			}
		}
	}

	l := f.Local(center)
	if f.Fraction(l.X, l.Y) != 0 {
		t.Errorf("center fraction = %v, want 0", f.Fraction(l.X, l.Y))
	}
}

func TestFillKeepsMinimum(t *testing.T) {
	a := core.Point{X: 10, Y: 10}
	b := core.Point{X: 14, Y: 10}
	var f Field
	f.Fill([]core.Point{a, b}, 4, core.Point{}, -1)

	lb := f.Local(b)
	if f.Fraction(lb.X, lb.Y) != 0 {
		t.Errorf("second center fraction = %v, want 0", f.Fraction(lb.X, lb.Y))
	}
	mid := f.Local(core.Point{X: 12, Y: 10})
	want := Falloff(2.0 / 4.0)
	if math.Abs(f.Fraction(mid.X, mid.Y)-want) > 1e-9 {
		t.Errorf("midpoint fraction = %v, want %v", f.Fraction(mid.X, mid.Y), want)
	}
}

func TestFillExclusion(t *testing.T) {
	center := core.Point{X: 30, Y: 30}
	var f Field
	f.Fill([]core.Point{center}, 8, center, 3)

	f.Each(func(p core.Point, _ float64) {
		if p.DistSq(center) <= 2*2 {
			t.Fatalf("cell %v inside exclusion zone is still set", p)
		}
	})
	far := f.Local(core.Point{X: 36, Y: 30})
	if !f.Has(far.X, far.Y) {
		t.Error("cell outside exclusion zone was cleared")
	}
}

func TestResetReusesStorage(t *testing.T) {
	var f Field
	f.Disc(core.Point{X: 0, Y: 0}, 10)
	big := f.Count()
	f.Disc(core.Point{X: 0, Y: 0}, 1)
	if f.Count() >= big {
		t.Errorf("reset did not clear previous fill: %d >= %d", f.Count(), big)
	}
	f.Reset(nil, 3)
	if f.Count() != 0 || f.W != 0 {
		t.Errorf("empty reset left %d bits, W=%d", f.Count(), f.W)
	}
}
