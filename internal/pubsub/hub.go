// Package pubsub implements the in-process fan-out of newly submitted rating
// events to live GraphQL subscribers. Delivery is at-most-once and
// best-effort: there is no replay of past events, and a subscriber that
// cannot keep up is disconnected rather than allowed to block the publisher.
package pubsub

import (
	"context"
	"sync"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// RatingEvent is emitted whenever a user submits a new (non-retraction)
// rating for a movie.
type RatingEvent struct {
	Rating     model.Rating
	MovieTitle string
}

// subscriberBuffer bounds each subscriber's queue; a full queue means the
// subscriber is too slow and gets dropped.
const subscriberBuffer = 16

// Hub is the single "new rating" channel. One channel per subscriber.
type Hub struct {
	mu   sync.Mutex
	subs map[chan RatingEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan RatingEvent]struct{})}
}

// Subscribe registers a new listener and returns its event channel. The
// channel is closed when ctx is cancelled or when the subscriber falls too
// far behind. Events published before Subscribe are never delivered.
func (h *Hub) Subscribe(ctx context.Context) <-chan RatingEvent {
	ch := make(chan RatingEvent, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.drop(ch)
	}()
	return ch
}

// Publish delivers ev to every currently subscribed listener. It never
// blocks: a subscriber whose buffer is full is disconnected.
func (h *Hub) Publish(ev RatingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of currently connected listeners.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) drop(ch chan RatingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}
