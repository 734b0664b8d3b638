package interfaces

import (
	"context"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

// ChannelEvent is one message delivered on a per-user subscriber channel
type ChannelEvent struct {
	// Kind is "notification" or "unread-count"
	Kind string `json:"kind"`

	Notification *model.Notification `json:"notification,omitempty"`
	UnreadCount  int64               `json:"unreadCount,omitempty"`
}

const (
	ChannelEventNotification = "notification"
	ChannelEventUnreadCount  = "unread-count"
)

// Publisher delivers messages to per-user addressable channels. Delivery is
// best-effort: a returned error means the push was lost, never that the
// underlying state change failed.
type Publisher interface {
	// PublishNotification delivers a notification record to the user's channel
	PublishNotification(ctx context.Context, userID types.UserID, n *model.Notification) error

	// PublishUnreadCount delivers an updated unread count to the user's channel
	PublishUnreadCount(ctx context.Context, userID types.UserID, count int64) error
}

// Subscriber attaches a live consumer to a user's channel. The returned
// cancel function must be called when the consumer goes away.
type Subscriber interface {
	Subscribe(ctx context.Context, userID types.UserID) (<-chan ChannelEvent, func(), error)
}

// Channel is a Publisher that can also be subscribed to
type Channel interface {
	Publisher
	Subscriber

	Close() error
}
