package event

import (
	"sync/atomic"

	"github.com/lixenwraith/goop/parameter"
)

// EffectQueue is a lock-free MPSC ring buffer of effect triggers
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest effects overwritten when full
type EffectQueue struct {
	effects   [parameter.EffectQueueSize]Effect
	published [parameter.EffectQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	dropped   atomic.Uint64
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{}
}

// Push adds an effect, O(1) amortized
func (q *EffectQueue) Push(e Effect) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EffectBufferMask

			q.effects[idx] = e
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread effects
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EffectQueueSize {
				if q.head.CompareAndSwap(currentHead, nextTail-parameter.EffectQueueSize) {
					q.dropped.Add(1)
				}
			}
			return
		}
	}
}

// Consume returns all pending effects in FIFO order and advances head
func (q *EffectQueue) Consume() []Effect {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > parameter.EffectQueueSize {
			available = parameter.EffectQueueSize
			currentHead = currentTail - parameter.EffectQueueSize
		}

		result := make([]Effect, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.EffectBufferMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			result = append(result, q.effects[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending effect count
func (q *EffectQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EffectQueueSize {
		return parameter.EffectQueueSize
	}
	return diff
}

// Dropped returns how many effects were overwritten before being consumed
func (q *EffectQueue) Dropped() uint64 {
	return q.dropped.Load()
}
