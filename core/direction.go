package core

// Direction indexes the 8 compass neighbors of a cell
// Order: N=0, NE=1, E=2, SE=3, S=4, SW=5, W=6, NW=7
type Direction int8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
	DirCount
)

// DirVectors holds the grid offset for each Direction, Y grows downward
var DirVectors = [DirCount]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Opposite returns the reciprocal direction, (d+4) mod 8
func (d Direction) Opposite() Direction {
	return (d + 4) & 7
}

// Bit returns the single-bit mask for d in an 8-bit neighbor mask
func (d Direction) Bit() uint8 {
	return 1 << uint8(d)
}

var dirNames = [DirCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) String() string {
	if d < 0 || d >= DirCount {
		return "?"
	}
	return dirNames[d]
}
