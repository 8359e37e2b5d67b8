package core

// WordBits is the width of one occupancy word
const WordBits = 64

// ChunkID identifies a square sub-grid, cy*ChunksX + cx
type ChunkID int32

// Layout maps grid positions to chunks and in-chunk bit offsets
type Layout struct {
	Dims          Dims
	ChunkSize     int
	ChunksX       int
	ChunksY       int
	WordsPerChunk int // ceil(ChunkSize² / WordBits)
}

// NewLayout computes chunk counts for the grid, a non-positive chunkSize is treated as 1
func NewLayout(dims Dims, chunkSize int) Layout {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	bits := chunkSize * chunkSize
	return Layout{
		Dims:          dims,
		ChunkSize:     chunkSize,
		ChunksX:       (dims.W + chunkSize - 1) / chunkSize,
		ChunksY:       (dims.H + chunkSize - 1) / chunkSize,
		WordsPerChunk: (bits + WordBits - 1) / WordBits,
	}
}

// ChunkCount returns the number of chunks covering the grid
func (l Layout) ChunkCount() int {
	return l.ChunksX * l.ChunksY
}

// ChunkCoords returns the chunk column and row of p
func (l Layout) ChunkCoords(p Point) (cx, cy int) {
	return p.X / l.ChunkSize, p.Y / l.ChunkSize
}

// ChunkOf returns the chunk owning p, caller checks bounds
func (l Layout) ChunkOf(p Point) ChunkID {
	cx, cy := l.ChunkCoords(p)
	return ChunkID(cy*l.ChunksX + cx)
}

// ChunkAt returns the id for chunk coordinates and false when outside the chunk grid
func (l Layout) ChunkAt(cx, cy int) (ChunkID, bool) {
	if cx < 0 || cy < 0 || cx >= l.ChunksX || cy >= l.ChunksY {
		return 0, false
	}
	return ChunkID(cy*l.ChunksX + cx), true
}

// ChunkOrigin returns the top-left grid position of chunk c
func (l Layout) ChunkOrigin(c ChunkID) Point {
	cx := int(c) % l.ChunksX
	cy := int(c) / l.ChunksX
	return Point{X: cx * l.ChunkSize, Y: cy * l.ChunkSize}
}

// BitOffset returns the in-chunk bit index of p, row-major inside the chunk
func (l Layout) BitOffset(p Point) int {
	return (p.Y%l.ChunkSize)*l.ChunkSize + p.X%l.ChunkSize
}

// Locate returns the chunk, word index within the chunk, and bit mask for p
func (l Layout) Locate(p Point) (ChunkID, int, uint64) {
	bit := l.BitOffset(p)
	return l.ChunkOf(p), bit / WordBits, 1 << uint(bit%WordBits)
}

// PointAt is the inverse of Locate for a chunk and in-chunk bit index
func (l Layout) PointAt(c ChunkID, bit int) Point {
	o := l.ChunkOrigin(c)
	return Point{X: o.X + bit%l.ChunkSize, Y: o.Y + bit/l.ChunkSize}
}
