package service

import (
	"sync"

	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/pkg/metrics"
)

// Broker fans countdown displays out to stream subscribers. Subscribers
// are only signalled; they read the latest display themselves, so a slow
// reader skips frames instead of blocking the timer.
type Broker struct {
	mu     sync.Mutex
	subs   map[chan struct{}]struct{}
	latest countdown.Display
	has    bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener that is signalled on every publish.
func (b *Broker) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	metrics.AddCountdownSubscribers(1)
	return ch
}

// Unsubscribe removes a listener.
func (b *Broker) Unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	_, ok := b.subs[ch]
	delete(b.subs, ch)
	b.mu.Unlock()
	if ok {
		metrics.AddCountdownSubscribers(-1)
	}
}

// Publish stores d and signals every subscriber.
func (b *Broker) Publish(d countdown.Display) {
	b.mu.Lock()
	b.latest, b.has = d, true
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	b.mu.Unlock()
}

// Latest returns the last published display.
func (b *Broker) Latest() (countdown.Display, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.has
}

// Count returns the number of subscribers.
func (b *Broker) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
