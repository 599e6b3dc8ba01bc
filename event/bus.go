package event

import (
	"sync"

	"github.com/elliotchance/orderedmap/v2"
)

// Listener receives published events.
type Listener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) HandleEvent(ev Event) {
	f(ev)
}

// Bus is an explicit list of listeners. Events are delivered synchronously, in publish order, to
// listeners in subscription order.
type Bus struct {
	mu        sync.RWMutex
	listeners *orderedmap.OrderedMap[uint64, Listener]
	nextID    uint64
}

func NewBus() *Bus {
	return &Bus{listeners: orderedmap.NewOrderedMap[uint64, Listener]()}
}

// Subscribe adds l to the bus. The returned function removes it again and may be called more than
// once, including from inside HandleEvent.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners.Set(id, l)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.listeners.Delete(id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers events to the listeners subscribed when Publish was called.
func (b *Bus) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	b.mu.RLock()
	listeners := make([]Listener, 0, b.listeners.Len())
	for _, id := range b.listeners.Keys() {
		l, _ := b.listeners.Get(id)
		listeners = append(listeners, l)
	}
	b.mu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l.HandleEvent(ev)
		}
	}
}

// Len returns the number of subscribed listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.listeners.Len()
}
