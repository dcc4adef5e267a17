package executor

import (
	"sync"

	"go.trai.ch/beelder/internal/core/domain"
)

// queue is a multi-producer, single-consumer FIFO of executable units.
// Every push signals the wake channel so the consumer can block instead of spinning.
type queue struct {
	mu    sync.Mutex
	items []*domain.ExecutableUnit
	wake  chan struct{}
}

func newQueue() *queue {
	return &queue{wake: make(chan struct{}, 1)}
}

func (q *queue) push(u *domain.ExecutableUnit) {
	q.mu.Lock()
	q.items = append(q.items, u)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *queue) pop() (*domain.ExecutableUnit, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	u := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return u, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
