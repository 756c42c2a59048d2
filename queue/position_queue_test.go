// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sock-lobster/CollisionDetection/physics"
)

func TestPushTailThenPopOrdering(t *testing.T) {
	q := NewPositionQueue(100)
	for ts := 1; ts <= 5; ts++ {
		q.PushTail(7, physics.Position{Timestep: ts})
	}
	last := -1
	for i := 0; i < 5; i++ {
		pos, ok := q.PopTimestepN(7, 0)
		if !ok {
			t.Fatalf("expected a position at pop %d", i)
		}
		if pos.Timestep <= last {
			t.Errorf("timestep did not strictly increase: prev=%d got=%d", last, pos.Timestep)
		}
		last = pos.Timestep
	}
	if _, ok := q.PopTimestepN(7, 0); ok {
		t.Error("expected queue to be empty for particle 7")
	}
}

func TestPopTimestepNDiscardsStale(t *testing.T) {
	q := NewPositionQueue(100)
	for ts := 1; ts <= 5; ts++ {
		q.PushTail(1, physics.Position{Timestep: ts})
	}
	pos, ok := q.PopTimestepN(1, 4)
	if !ok || pos.Timestep != 4 {
		t.Fatalf("expected first node with timestep >= 4, got %+v ok=%v", pos, ok)
	}
	if q.Size() != 1 {
		t.Errorf("expected 1 remaining node (timestep 5), got size=%d", q.Size())
	}
}

func TestPopTimestepNUnknownParticle(t *testing.T) {
	q := NewPositionQueue(10)
	if _, ok := q.PopTimestepN(99, 0); ok {
		t.Error("popping an unknown particle should report not-ok")
	}
}

func TestSizeNeverExceedsMax(t *testing.T) {
	q := NewPositionQueue(3)
	done := make(chan struct{})
	go func() {
		for ts := 1; ts <= 10; ts++ {
			q.PushTail(1, physics.Position{Timestep: ts})
		}
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	if sz := q.Size(); sz > 3 {
		t.Errorf("queue exceeded max size: %d", sz)
	}

	// Each pop frees one slot; the producer refills it asynchronously,
	// so keep popping until all ten positions have been received.
	deadline := time.Now().Add(time.Second)
	for popped := 0; popped < 10 && time.Now().Before(deadline); {
		if _, ok := q.PopTimestepN(1, 0); ok {
			popped++
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer did not unblock after draining")
	}
}

func TestStopUnblocksProducer(t *testing.T) {
	q := NewPositionQueue(1)
	q.PushTail(1, physics.Position{Timestep: 1})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.PushTail(1, physics.Position{Timestep: 2}) // blocks: queue full
	}()

	time.Sleep(20 * time.Millisecond)
	q.Stop()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not unblock the producer")
	}
}
