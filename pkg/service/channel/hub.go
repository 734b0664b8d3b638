package channel

import (
	"context"
	"sync"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

// Hub is an in-process Channel for single-node deployments and tests.
// Subscribers that cannot keep up have events dropped rather than
// blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[types.UserID]map[int]chan interfaces.ChannelEvent
	nextID int
	closed bool
}

var _ interfaces.Channel = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		subs: make(map[types.UserID]map[int]chan interfaces.ChannelEvent),
	}
}

func (h *Hub) PublishNotification(ctx context.Context, userID types.UserID, n *model.Notification) error {
	h.publish(userID, interfaces.ChannelEvent{
		Kind:         interfaces.ChannelEventNotification,
		Notification: n,
	})
	return nil
}

func (h *Hub) PublishUnreadCount(ctx context.Context, userID types.UserID, count int64) error {
	h.publish(userID, interfaces.ChannelEvent{
		Kind:        interfaces.ChannelEventUnreadCount,
		UnreadCount: count,
	})
	return nil
}

func (h *Hub) publish(userID types.UserID, ev interfaces.ChannelEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for _, ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
			// Slow consumer, drop the event
		}
	}
}

func (h *Hub) Subscribe(ctx context.Context, userID types.UserID) (<-chan interfaces.ChannelEvent, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan interfaces.ChannelEvent, 16)
	if h.closed {
		close(ch)
		return ch, func() {}, nil
	}

	id := h.nextID
	h.nextID++

	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan interfaces.ChannelEvent)
	}
	h.subs[userID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if sub, ok := h.subs[userID][id]; ok {
			delete(h.subs[userID], id)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(sub)
		}
	}

	return ch, cancel, nil
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for userID, subs := range h.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(h.subs, userID)
	}

	return nil
}
