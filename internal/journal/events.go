package journal

import (
	"context"
	"sync"
)

type broadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan RecordedEvent
	nextID   uint64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		watchers: make(map[uint64]chan RecordedEvent),
	}
}

func (b *broadcaster) Subscribe(ctx context.Context) (<-chan RecordedEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		ch := make(chan RecordedEvent)
		close(ch)
		return ch, nil
	}
	ch := make(chan RecordedEvent, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

// Broadcast never blocks; slow watchers miss events.
func (b *broadcaster) Broadcast(evt RecordedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
