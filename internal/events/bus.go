// Package events provides the process-wide publish/subscribe bus used to
// tell listening views that data they display may be stale. Delivery is
// best-effort, at-most-once per publish, with no acknowledgment and no
// ordering guarantee; subscribers must treat every signal as an idempotent
// refresh hint. Each topic is published exactly once per triggering event.
package events

import (
	"sync"
	"time"
)

type Topic string

const (
	// TopicSanctionsUpdated signals that user sanction counts may have
	// changed, e.g. after saving an overdue loan.
	TopicSanctionsUpdated Topic = "sanctions.updated"
	// TopicLoansUpdated signals that the loan collection changed.
	TopicLoansUpdated Topic = "loans.updated"
	// TopicCatalogUpdated signals that books or categories changed upstream.
	TopicCatalogUpdated Topic = "catalog.updated"
)

type Event struct {
	Topic Topic     `json:"topic"`
	At    time.Time `json:"at"`
}

// Subscription delivers matching events on C until unsubscribed. The channel
// is buffered; a subscriber that falls behind loses events rather than
// blocking publishers.
type Subscription struct {
	C  chan Event
	id int
}

type Bus struct {
	mu   sync.Mutex
	subs map[Topic]map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]chan Event)}
}

// Subscribe registers interest in the given topics. The caller must
// eventually Unsubscribe to release the channel.
func (b *Bus) Subscribe(topics ...Topic) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	sub := &Subscription{C: make(chan Event, 8), id: b.next}
	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[int]chan Event)
		}
		b.subs[topic][sub.id] = sub.C
	}
	return sub
}

func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, listeners := range b.subs {
		delete(listeners, sub.id)
	}
}

// Publish emits one event to every current subscriber of the topic. Zero
// listeners is not an error. Sends never block: a full subscriber buffer
// drops the event for that subscriber only.
func (b *Bus) Publish(topic Topic) {
	ev := Event{Topic: topic, At: time.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
}
