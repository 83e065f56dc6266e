package cpu

import (
	"context"
	"sync"
)

// Queue is a first-in-first-out sequence of values connecting a producer
// with a consumer. It is safe for use by one producer and one consumer
// running in different goroutines.
//
// Closing a queue tells the consumer that no further values will arrive.
// Values pushed before the close remain readable.
type Queue struct {
	m      sync.Mutex
	values []int64
	last   int64         // Most recent value pushed.
	count  int           // Number of values ever pushed.
	closed bool          // No producer remains.
	signal chan struct{} // Wakes a consumer blocked in Wait.
}

// NewQueue creates a queue holding the given values.
func NewQueue(values ...int64) *Queue {
	q := &Queue{signal: make(chan struct{}, 1)}
	q.Push(values...)
	return q
}

// Push appends values to the end of the queue.
func (q *Queue) Push(values ...int64) {
	if len(values) == 0 {
		return
	}

	q.m.Lock()
	q.values = append(q.values, values...)
	q.last = values[len(values)-1]
	q.count += len(values)
	q.m.Unlock()
	q.notify()
}

// Pop removes and returns the value at the front of the queue.
// Returns false if the queue is empty.
func (q *Queue) Pop() (int64, bool) {
	q.m.Lock()
	defer q.m.Unlock()

	if len(q.values) == 0 {
		return 0, false
	}

	v := q.values[0]
	q.values = q.values[1:]
	return v, true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	q.m.Lock()
	defer q.m.Unlock()
	return len(q.values)
}

// Drain removes and returns all queued values.
func (q *Queue) Drain() []int64 {
	q.m.Lock()
	defer q.m.Unlock()

	out := q.values
	q.values = nil
	return out
}

// Values returns a copy of the queued values without consuming them.
func (q *Queue) Values() []int64 {
	q.m.Lock()
	defer q.m.Unlock()

	if len(q.values) == 0 {
		return nil
	}

	out := make([]int64, len(q.values))
	copy(out, q.values)
	return out
}

// Last returns the most recent value ever pushed, whether or not it has
// been consumed since. Returns false if nothing was pushed.
func (q *Queue) Last() (int64, bool) {
	q.m.Lock()
	defer q.m.Unlock()
	return q.last, q.count > 0
}

// Count returns the number of values ever pushed, including those
// consumed since.
func (q *Queue) Count() int {
	q.m.Lock()
	defer q.m.Unlock()
	return q.count
}

// Close marks the queue as having no further producer.
func (q *Queue) Close() {
	q.m.Lock()
	q.closed = true
	q.m.Unlock()
	q.notify()
}

// Closed returns true if the queue has been closed.
func (q *Queue) Closed() bool {
	q.m.Lock()
	defer q.m.Unlock()
	return q.closed
}

// Wait blocks until the queue holds a value, is closed, or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		q.m.Lock()
		ready := len(q.values) > 0 || q.closed
		q.m.Unlock()

		if ready {
			return nil
		}

		select {
		case <-q.signal:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// notify wakes a waiting consumer, if any.
func (q *Queue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
