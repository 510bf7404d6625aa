package service

import (
	"sync"

	"github.com/ade-gb/investlite-demo-platform/internal/model"
)

// AssetHub fans updated asset records out to subscribers as the price
// simulator (or an admin adjustment) writes them. The presentation layer
// owns its own refresh logic; the hub only delivers the committed records.
//
// Sends are non-blocking: a subscriber that stops draining its channel
// misses updates rather than stalling the publisher. A dropped
// notification costs at most one tick of staleness.
type AssetHub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan model.Asset
}

// NewAssetHub creates an empty hub.
func NewAssetHub() *AssetHub {
	return &AssetHub{
		subs: make(map[int]chan model.Asset),
	}
}

// Subscribe registers a new subscriber and returns its ID and channel.
// The channel is buffered; the caller must Unsubscribe when done.
func (h *AssetHub) Subscribe() (int, <-chan model.Asset) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan model.Asset, 16)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *AssetHub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish delivers an updated asset record to all subscribers.
func (h *AssetHub) Publish(asset model.Asset) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- asset:
		default:
			// Subscriber is not draining; drop rather than block.
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *AssetHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
