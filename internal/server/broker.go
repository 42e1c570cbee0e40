package server

import (
	"encoding/json"
	"sync"

	"github.com/summitkit/checkin/internal/checkin"
)

// Broker fans view snapshots out to every connected event stream.
type Broker struct {
	mu     sync.RWMutex
	subs   map[chan []byte]struct{}
	done   chan struct{}
	closed bool
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
		done: make(chan struct{}),
	}
}

// Subscribe returns a channel of JSON-encoded views.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Done is closed when the broker shuts down.
func (b *Broker) Done() <-chan struct{} { return b.done }

// PublishView sends v to all subscribers. Slow subscribers miss updates;
// the next view supersedes the dropped one.
func (b *Broker) PublishView(v checkin.View) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
}
