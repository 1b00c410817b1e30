package translationconfig

import (
	"context"
	"sync"
)

const subscriberBuffer = 4

// changeBroadcaster fans change events out to subscribers. Delivery never
// blocks: a subscriber whose buffer is full misses the event.
type changeBroadcaster struct {
	mu          sync.Mutex
	subscribers map[uint64]chan ChangeEvent
	nextID      uint64
}

func newChangeBroadcaster() *changeBroadcaster {
	return &changeBroadcaster{
		subscribers: make(map[uint64]chan ChangeEvent),
	}
}

func (b *changeBroadcaster) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch, nil
	}
	ch := make(chan ChangeEvent, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subscribers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

// Broadcast sends evt while holding the lock so a concurrent unsubscribe
// cannot close a channel mid-send.
func (b *changeBroadcaster) Broadcast(evt ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *changeBroadcaster) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
