package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[types.NotificationID]*model.Notification
	nextID        int64
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[types.NotificationID]*model.Notification),
	}
}

func copyNotification(n *model.Notification) *model.Notification {
	copied := *n
	if n.CreatedByID != nil {
		createdBy := *n.CreatedByID
		copied.CreatedByID = &createdBy
	}
	return &copied
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++

	created := copyNotification(n)
	created.ID = types.NotificationID(r.nextID)
	created.IsRead = false
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.notifications[created.ID] = created
	return copyNotification(created), nil
}

func (r *notificationRepository) Get(ctx context.Context, id types.NotificationID) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notifications[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return copyNotification(n), nil
}

// byCreatedAtDesc sorts most-recent-first, ID descending as tiebreaker
func byCreatedAtDesc(ns []*model.Notification) {
	sort.Slice(ns, func(i, j int) bool {
		if !ns[i].CreatedAt.Equal(ns[j].CreatedAt) {
			return ns[i].CreatedAt.After(ns[j].CreatedAt)
		}
		return ns[i].ID > ns[j].ID
	})
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, page, size int) ([]*model.Notification, error) {
	if page < 0 || size <= 0 {
		return nil, goerr.New("invalid page request", goerr.V("page", page), goerr.V("size", size))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			all = append(all, copyNotification(n))
		}
	}
	byCreatedAtDesc(all)

	start := page * size
	if start >= len(all) {
		return []*model.Notification{}, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], nil
}

func (r *notificationRepository) ListUnreadByUser(ctx context.Context, userID types.UserID) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			result = append(result, copyNotification(n))
		}
	}
	byCreatedAtDesc(result)

	return result, nil
}

func (r *notificationRepository) CountUnreadByUser(ctx context.Context, userID types.UserID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id types.NotificationID, userID types.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, exists := r.notifications[id]
	if !exists || n.UserID != userID || n.IsRead {
		return false, nil
	}

	n.IsRead = true
	return true, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID types.UserID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID types.UserID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, n := range r.notifications {
		if n.UserID == userID {
			delete(r.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, n := range r.notifications {
		if n.CreatedAt.Before(cutoff) {
			delete(r.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
