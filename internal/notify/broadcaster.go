package notify

import (
	"sync"
	"sync/atomic"
)

const subscriberBuffer = 32

// Broadcaster fans toasts out to stream subscribers. Slow subscribers miss
// toasts instead of blocking the sender.
type Broadcaster struct {
	subscribers map[uint64]chan Notification
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan Notification),
	}
}

func (b *Broadcaster) Subscribe() (uint64, <-chan Notification) {
	id := b.nextID.Add(1)
	ch := make(chan Notification, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Broadcast returns how many subscribers received n and how many were skipped.
func (b *Broadcaster) Broadcast(n Notification) (delivered, dropped int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- n:
			delivered++
		default:
			dropped++
		}
	}
	return delivered, dropped
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels so streams exit.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
