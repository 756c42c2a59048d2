// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package queue

import (
	"sync"

	"github.com/sock-lobster/CollisionDetection/physics"
)

// CollisionQueue is a mutex-guarded FIFO of collision events. The
// producer appends events at tick end; the consumer dequeues whatever
// prefix has fallen behind its display tick, taking ownership of the
// events it removes.
type CollisionQueue struct {
	mu     sync.Mutex
	events []physics.CollisionEvent
}

// NewCollisionQueue returns an empty CollisionQueue.
func NewCollisionQueue() *CollisionQueue { return &CollisionQueue{} }

// Push appends an event at tick end, under the lock.
func (q *CollisionQueue) Push(ev physics.CollisionEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// DequeueBefore removes and returns every queued event whose Timestep
// is strictly less than before. Events are produced in non-decreasing
// timestep order, so this is a prefix of the FIFO.
func (q *CollisionQueue) DequeueBefore(before int) []physics.CollisionEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := 0
	for i < len(q.events) && q.events[i].Timestep < before {
		i++
	}
	out := append([]physics.CollisionEvent(nil), q.events[:i]...)
	q.events = q.events[i:]
	return out
}

// Len reports the number of events currently queued.
func (q *CollisionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
