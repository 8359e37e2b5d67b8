package parameter

import "time"

// Simulation Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SimTickInterval is the lifecycle tick interval, one propagation resumption per tick
	SimTickInterval = 33 * time.Millisecond
)

// Grid Defaults
const (
	// DefaultGridWidth is the sandbox grid width in cells
	DefaultGridWidth = 120

	// DefaultGridHeight is the sandbox grid height in cells
	DefaultGridHeight = 40

	// ChunkSize is the side length of a square chunk in cells
	// 20*20 = 400 bits = 7 uint64 words per chunk
	ChunkSize = 20
)

// Event Queue Limits
const (
	// EffectQueueSize is the fixed capacity of the effect ring buffer
	EffectQueueSize = 1024

	// EffectBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EffectBufferMask = 1023
)

// MaxStores is the upper bound of concurrently registered substance stores
// StoreID 0 is reserved for "unowned"
const MaxStores = 255
