package notification

import (
	"context"
	"sync"

	"bookinghub/internal/pkg/metrics"
)

const subscriptionBuffer = 32

// Subscription is one live connection of a recipient. Events arrive on C until
// the subscription is passed to Hub.Unsubscribe, which closes C.
type Subscription struct {
	RecipientID int64
	C           <-chan Event

	ch     chan Event
	closed bool
}

// Hub fans events out to every live subscription of a recipient. A recipient's
// entry exists exactly while it has at least one subscription.
type Hub struct {
	mu      sync.Mutex
	entries map[int64]map[*Subscription]struct{}
	metrics *metrics.Metrics
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		entries: make(map[int64]map[*Subscription]struct{}),
		metrics: m,
	}
}

func (h *Hub) Subscribe(recipientID int64) *Subscription {
	ch := make(chan Event, subscriptionBuffer)
	sub := &Subscription{RecipientID: recipientID, C: ch, ch: ch}

	h.mu.Lock()
	entry, ok := h.entries[recipientID]
	if !ok {
		entry = make(map[*Subscription]struct{})
		h.entries[recipientID] = entry
	}
	entry[sub] = struct{}{}
	h.mu.Unlock()

	h.metrics.ConnectionOpened()
	return sub
}

// Unsubscribe releases the subscription. Calling it again with the same
// subscription does nothing, so a connection can never be counted down twice.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	if sub.closed {
		h.mu.Unlock()
		return
	}
	sub.closed = true

	if entry, ok := h.entries[sub.RecipientID]; ok {
		delete(entry, sub)
		if len(entry) == 0 {
			delete(h.entries, sub.RecipientID)
		}
	}
	close(sub.ch)
	h.mu.Unlock()

	h.metrics.ConnectionClosed()
}

// Publish delivers ev to every live subscription of the recipient without
// blocking. Subscriptions whose buffer is full miss the event; a recipient with
// no subscriptions is skipped silently.
func (h *Hub) Publish(_ context.Context, recipientID int64, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.entries[recipientID] {
		select {
		case sub.ch <- ev:
			h.metrics.NotificationDelivered()
		default:
			h.metrics.NotificationDropped()
		}
	}
}

func (h *Hub) ConnectionCount(recipientID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries[recipientID])
}
