// Package events is a small typed publish/subscribe bus. It replaces the
// ad hoc global document events of earlier designs with an explicit
// observer mechanism: services publish, interested components subscribe by
// topic. Dispatch is synchronous, matching the single-writer event-loop
// model of the system.
package events

import "sync"

// Event is anything that can be published on the bus.
type Event interface {
	Topic() string
}

// Topic names for subscription.
const (
	TopicItemChanged       = "item.changed"
	TopicItemDeleted       = "item.deleted"
	TopicDashboardReplaced = "dashboard.replaced"
)

// ItemChanged is published after any mutation to an item or its
// transaction list, once derived state has been refreshed and persisted.
type ItemChanged struct {
	ItemID string
}

func (ItemChanged) Topic() string { return TopicItemChanged }

// ItemDeleted is published after an item is removed. Goals referencing the
// item are not cascaded; they treat the dangling reference as zero.
type ItemDeleted struct {
	ItemID string
}

func (ItemDeleted) Topic() string { return TopicItemDeleted }

// DashboardReplaced is published after a full-dashboard import swaps every
// collection at once.
type DashboardReplaced struct{}

func (DashboardReplaced) Topic() string { return TopicDashboardReplaced }

// Handler receives published events for one topic.
type Handler func(Event)

// Bus fans events out to subscribed handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a topic. Handlers run synchronously in
// subscription order on the publisher's goroutine.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers an event to every handler subscribed to its topic.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.Topic()]
	b.mu.RUnlock()
	for _, h := range handlers {
		h(e)
	}
}
