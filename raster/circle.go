package raster

import "math"

// Falloff is the smooth distance curve f(t) = t²(2t² − 5t + 4), f(0)=0, f(1)=1, monotone on [0,1]
func Falloff(t float64) float64 {
	return t * t * (2*t*t - 5*t + 4)
}

// FillCircle rasterizes a filled midpoint circle around local center (cx, cy)
// set=false clears bits instead; with falloff, every touched bit keeps the minimum f seen
func (f *Field) FillCircle(cx, cy, radius int, set, falloff bool) {
	if radius < 0 || f.W == 0 {
		return
	}
	c := circle{f: f, cx: cx, cy: cy, r: radius, set: set, falloff: falloff}
	if radius == 0 {
		c.span(0, 0)
		return
	}

	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		// Four rows per step cover all eight octants
		c.span(x, y)
		c.span(x, -y)
		c.span(y, x)
		c.span(y, -x)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

type circle struct {
	f       *Field
	cx, cy  int
	r       int
	set     bool
	falloff bool
}

// span writes the run [cx-half, cx+half] on row cy+dy, clipped to the field
func (c *circle) span(half, dy int) {
	f := c.f
	row := c.cy + dy
	if row < 0 || row >= f.H {
		return
	}
	x0 := max(c.cx-half, 0)
	x1 := min(c.cx+half, f.W-1)
	for x := x0; x <= x1; x++ {
		i := row*f.W + x
		if !c.set {
			f.unset(i)
			continue
		}
		f.set(i)

		v := 0.0
		if c.falloff && c.r > 0 {
			dx := x - c.cx
			t := math.Sqrt(float64(dx*dx+dy*dy)) / float64(c.r)
			if t > 1 {
				t = 1
			}
			v = Falloff(t)
		}
		if v < f.falloff[i] {
			f.falloff[i] = v
		}
	}
}
