package interfaces

import (
	"context"
	"time"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

// NotificationRepository defines the interface for Notification persistence.
// The feed is keyed by (userId, createdAt) descending.
type NotificationRepository interface {
	// Create persists a notification with auto-generated ID. CreatedAt is
	// stamped when absent; IsRead defaults to false.
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// Get retrieves a notification by ID
	Get(ctx context.Context, id types.NotificationID) (*model.Notification, error)

	// ListByUser returns one page of the user's feed ordered by CreatedAt
	// descending. Page is 0-indexed.
	ListByUser(ctx context.Context, userID types.UserID, page, size int) ([]*model.Notification, error)

	// ListUnreadByUser returns the user's unread notifications ordered by
	// CreatedAt descending.
	ListUnreadByUser(ctx context.Context, userID types.UserID) ([]*model.Notification, error)

	// CountUnreadByUser returns the user's unread notification count
	CountUnreadByUser(ctx context.Context, userID types.UserID) (int64, error)

	// MarkAsRead flips IsRead for one notification iff it belongs to the
	// user and is still unread. Returns whether a row changed.
	MarkAsRead(ctx context.Context, id types.NotificationID, userID types.UserID) (bool, error)

	// MarkAllAsRead flips IsRead for all of the user's unread notifications.
	// Returns the number of rows changed.
	MarkAllAsRead(ctx context.Context, userID types.UserID) (int64, error)

	// DeleteByUser removes all of the user's notifications. Returns the
	// number of rows deleted.
	DeleteByUser(ctx context.Context, userID types.UserID) (int64, error)

	// DeleteOlderThan removes notifications created before the cutoff,
	// across all users. Returns the number of rows deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
