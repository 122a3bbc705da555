package api

import (
    "sync"
)

// Event is pushed to connected dashboards over SSE and WebSocket.
type Event struct {
    Type string
    Data map[string]any
}

// EventBroker fans events out to subscribed clients.
type EventBroker interface {
    Subscribe() chan Event
    Unsubscribe(ch chan Event)
    Publish(evt Event)
}

type Broker struct {
    mu   sync.Mutex
    subs map[chan Event]struct{}
}

func NewBroker() *Broker {
    return &Broker{subs: map[chan Event]struct{}{}}
}

func (b *Broker) Subscribe() chan Event {
    ch := make(chan Event, 8)
    b.mu.Lock()
    b.subs[ch] = struct{}{}
    b.mu.Unlock()
    return ch
}

func (b *Broker) Unsubscribe(ch chan Event) {
    b.mu.Lock()
    delete(b.subs, ch)
    b.mu.Unlock()
    close(ch)
}

func (b *Broker) Publish(evt Event) {
    b.mu.Lock()
    for ch := range b.subs {
        select {
        case ch <- evt:
        default:
        }
    }
    b.mu.Unlock()
}
