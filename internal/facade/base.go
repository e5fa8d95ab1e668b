package facade

import (
	"sync"

	"github.com/asaskevich/EventBus"
)

// base carries the snapshot/publish mechanics shared by all facades:
// mutate under the lock, publish the resulting copy outside it.
type base[T any] struct {
	mu    sync.Mutex
	state T
	bus   EventBus.Bus
	topic string
}

func (b *base[T]) snapshot() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *base[T]) update(mutate func(*T)) {
	b.mu.Lock()
	mutate(&b.state)
	st := b.state
	b.mu.Unlock()
	if b.bus != nil {
		b.bus.Publish(b.topic, st)
	}
}

func (b *base[T]) subscribe(fn func(T)) error {
	return b.bus.Subscribe(b.topic, fn)
}

func (b *base[T]) unsubscribe(fn func(T)) error {
	return b.bus.Unsubscribe(b.topic, fn)
}
