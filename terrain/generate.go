package terrain

import (
	"math/rand"

	"github.com/lixenwraith/goop/core"
)

// GenConfig controls the corridor-dungeon generator
type GenConfig struct {
	Dims core.Dims

	// Scale is the side length in grid cells of one maze node, corridors are Scale wide
	Scale int

	// Braiding: 0.0 keeps the maze a tree, 1.0 opens every dead end into a loop
	Braiding float64

	// PitChance is the probability that an open node becomes a pit
	PitChance float64

	Seed int64
}

// Generate carves a braided maze into a map and upscales it so substance has room to spread
// Wall cells directly above floor become FaceWall
func Generate(cfg GenConfig) *Map {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	cols := ensureOdd(cfg.Dims.W / cfg.Scale)
	rows := ensureOdd(cfg.Dims.H / cfg.Scale)

	// true = open
	nodes := make([][]bool, rows)
	for i := range nodes {
		nodes[i] = make([]bool, cols)
	}

	carve(nodes, rng)
	if cfg.Braiding > 0 {
		braid(nodes, cfg.Braiding, rng)
	}

	m := NewMap(cfg.Dims)
	m.Fill(0, 0, cfg.Dims.W, cfg.Dims.H, Wall)
	for ny := 0; ny < rows; ny++ {
		for nx := 0; nx < cols; nx++ {
			if !nodes[ny][nx] {
				continue
			}
			class := Floor
			// Pits only on room nodes, never on connecting corridors
			if nx%2 == 1 && ny%2 == 1 && cfg.PitChance > 0 && rng.Float64() < cfg.PitChance {
				class = Pit
			}
			x0, y0 := nx*cfg.Scale, ny*cfg.Scale
			m.Fill(x0, y0, x0+cfg.Scale, y0+cfg.Scale, class)
		}
	}

	markFaceWalls(m)
	return m
}

// carve runs an iterative recursive backtracker from node (1,1)
func carve(nodes [][]bool, rng *rand.Rand) {
	rows, cols := len(nodes), len(nodes[0])
	start := core.Point{X: 1, Y: 1}
	stack := []core.Point{start}
	nodes[start.Y][start.X] = true

	jumps := [4]core.Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	var candidates [4]core.Point

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		n := 0
		for _, d := range jumps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && !nodes[ny][nx] {
				candidates[n] = d
				n++
			}
		}

		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(n)]
		nodes[curr.Y+d.Y/2][curr.X+d.X/2] = true
		next := curr.Add(d)
		nodes[next.Y][next.X] = true
		stack = append(stack, next)
	}
}

// braid opens a wall next to dead ends with the given probability, skipping walls
// whose removal would create a 2x2 open plaza
func braid(nodes [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(nodes), len(nodes[0])
	ortho := [4]core.Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if !nodes[y][x] {
				continue
			}
			exits := 0
			for _, d := range ortho {
				if nodes[y+d.Y][x+d.X] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			var walls [4]core.Point
			n := 0
			for _, d := range ortho {
				wx, wy := x+d.X, y+d.Y
				tx, ty := x+2*d.X, y+2*d.Y
				if tx <= 0 || ty <= 0 || tx >= cols-1 || ty >= rows-1 {
					continue
				}
				if nodes[ty][tx] && !nodes[wy][wx] && !formsPlaza(nodes, wx, wy) {
					walls[n] = core.Point{X: wx, Y: wy}
					n++
				}
			}
			if n > 0 {
				w := walls[rng.Intn(n)]
				nodes[w.Y][w.X] = true
			}
		}
	}
}

func formsPlaza(nodes [][]bool, x, y int) bool {
	open := func(tx, ty int) bool {
		if ty < 0 || ty >= len(nodes) || tx < 0 || tx >= len(nodes[0]) {
			return false
		}
		return nodes[ty][tx]
	}
	return (open(x-1, y-1) && open(x, y-1) && open(x-1, y)) ||
		(open(x, y-1) && open(x+1, y-1) && open(x+1, y)) ||
		(open(x-1, y) && open(x-1, y+1) && open(x, y+1)) ||
		(open(x+1, y) && open(x, y+1) && open(x+1, y+1))
}

func markFaceWalls(m *Map) {
	for y := 0; y < m.dims.H-1; y++ {
		for x := 0; x < m.dims.W; x++ {
			p := core.Point{X: x, Y: y}
			below := core.Point{X: x, Y: y + 1}
			if m.Classify(p) == Wall && m.Classify(below) == Floor {
				m.Set(p, FaceWall)
			}
		}
	}
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
