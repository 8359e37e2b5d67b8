package core

// Point is an integer grid position
type Point struct {
	X, Y int
}

// Add returns p offset by v
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// DistSq returns squared euclidean distance between p and q
func (p Point) DistSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Dims is the bounded rectangular domain of the simulation grid
type Dims struct {
	W, H int
}

// Contains reports whether p lies inside the grid
func (d Dims) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < d.W && p.Y < d.H
}

// Index returns the row-major flat index of p, caller checks bounds
func (d Dims) Index(p Point) int {
	return p.Y*d.W + p.X
}

// Area returns the total cell count
func (d Dims) Area() int {
	return d.W * d.H
}
