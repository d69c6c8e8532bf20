package projection

import (
	"sync"

	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

// Topic identifies a class of local-store changes.
type Topic string

const (
	TopicCatalog Topic = "catalog"
	TopicCart    Topic = "cart"
)

// Broker fans change signals out to subscribers. Signals carry no
// payload: a subscriber re-reads the store to build its next snapshot,
// so consecutive changes coalesce into one emission.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[Topic]map[chan struct{}]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[Topic]map[chan struct{}]struct{}),
	}
}

// Subscribe registers a new signal channel for the topic. The channel
// has capacity one; pending signals collapse.
func (b *Broker) Subscribe(topic Topic) chan struct{} {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[chan struct{}]struct{})
	}
	b.subscribers[topic][ch] = struct{}{}
	count := len(b.subscribers[topic])
	b.mu.Unlock()

	logger.Debug("Projection subscriber registered", map[string]interface{}{
		"topic": string(topic),
		"count": count,
	})
	return ch
}

// Unsubscribe removes a signal channel from the topic.
func (b *Broker) Unsubscribe(topic Topic, ch chan struct{}) {
	b.mu.Lock()
	if subs, ok := b.subscribers[topic]; ok {
		delete(subs, ch)
	}
	b.mu.Unlock()

	logger.Debug("Projection subscriber unregistered", map[string]interface{}{
		"topic": string(topic),
	})
}

// Publish signals every subscriber of the topic without blocking: a
// subscriber with a pending signal is skipped.
func (b *Broker) Publish(topic Topic) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
