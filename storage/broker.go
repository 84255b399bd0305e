package storage

import "sync"

// Broker fans out last-update timestamps to subscribers. Each subscriber
// holds at most one pending value; a newer publish replaces an unread one.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]chan int64
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan int64)}
}

// Subscribe registers a subscriber. The returned func unregisters it.
func (b *Broker) Subscribe() (<-chan int64, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan int64, 1)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

// Publish never blocks.
func (b *Broker) Publish(ts int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ts:
		default:
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
