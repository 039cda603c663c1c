// SPDX-License-Identifier: EPL-2.0

package playback

import "sync"

// commandQueue is an unbounded FIFO with many producers and one consumer.
// push never blocks; the consumer waits on wake and then takes everything
// queued so far.
type commandQueue struct {
	mu    sync.Mutex
	items []Command
	wake  chan struct{}
}

func newCommandQueue() *commandQueue {
	return &commandQueue{wake: make(chan struct{}, 1)}
}

func (q *commandQueue) push(c Command) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// take returns the queued commands in send order and empties the queue.
func (q *commandQueue) take() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}
