package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *notificationRepository) collection() string {
	return prefixed(r.collectionPrefix, "notifications")
}

func (r *notificationRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "notification_counter")
	if err != nil {
		return nil, err
	}

	created := *n
	created.ID = types.NotificationID(id)
	created.IsRead = false
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *notificationRepository) Get(ctx context.Context, id types.NotificationID) (*model.Notification, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}

	var n model.Notification
	if err := docSnap.DataTo(&n); err != nil {
		return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("id", id))
	}

	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, page, size int) ([]*model.Notification, error) {
	if page < 0 || size <= 0 {
		return nil, goerr.New("invalid page request", goerr.V("page", page), goerr.V("size", size))
	}

	// Feed index: (userId, createdAt desc)
	q := r.client.Collection(r.collection()).
		Where("userId", "==", int64(userID)).
		OrderBy("createdAt", firestore.Desc).
		Offset(page * size).
		Limit(size)

	return r.query(ctx, q)
}

func (r *notificationRepository) ListUnreadByUser(ctx context.Context, userID types.UserID) ([]*model.Notification, error) {
	q := r.client.Collection(r.collection()).
		Where("userId", "==", int64(userID)).
		Where("isRead", "==", false).
		OrderBy("createdAt", firestore.Desc)

	return r.query(ctx, q)
}

func (r *notificationRepository) query(ctx context.Context, q firestore.Query) ([]*model.Notification, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	notifications := []*model.Notification{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications")
		}

		var n model.Notification
		if err := docSnap.DataTo(&n); err != nil {
			return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("doc_id", docSnap.Ref.ID))
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnreadByUser(ctx context.Context, userID types.UserID) (int64, error) {
	docs, err := r.client.Collection(r.collection()).
		Where("userId", "==", int64(userID)).
		Where("isRead", "==", false).
		Select().
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unread notifications", goerr.V("userID", userID))
	}
	return int64(len(docs)), nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id types.NotificationID, userID types.UserID) (bool, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	var changed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false

		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return goerr.Wrap(err, "failed to get notification")
		}

		var n model.Notification
		if err := docSnap.DataTo(&n); err != nil {
			return goerr.Wrap(err, "failed to decode notification")
		}

		// Ownership check: a user can only read their own notifications
		if n.UserID != userID || n.IsRead {
			return nil
		}

		if err := tx.Update(docRef, []firestore.Update{
			{Path: "isRead", Value: true},
		}); err != nil {
			return goerr.Wrap(err, "failed to mark notification as read")
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to mark notification as read", goerr.V("id", id))
	}

	return changed, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID types.UserID) (int64, error) {
	iter := r.client.Collection(r.collection()).
		Where("userId", "==", int64(userID)).
		Where("isRead", "==", false).
		Documents(ctx)
	defer iter.Stop()

	var updated int64
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return updated, goerr.Wrap(err, "failed to iterate unread notifications", goerr.V("userID", userID))
		}

		if _, err := docSnap.Ref.Update(ctx, []firestore.Update{
			{Path: "isRead", Value: true},
		}); err != nil {
			return updated, goerr.Wrap(err, "failed to mark notification as read", goerr.V("doc_id", docSnap.Ref.ID))
		}
		updated++
	}

	return updated, nil
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID types.UserID) (int64, error) {
	iter := r.client.Collection(r.collection()).
		Where("userId", "==", int64(userID)).
		Documents(ctx)
	defer iter.Stop()

	return r.deleteAll(ctx, iter)
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	iter := r.client.Collection(r.collection()).
		Where("createdAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	return r.deleteAll(ctx, iter)
}

func (r *notificationRepository) deleteAll(ctx context.Context, iter *firestore.DocumentIterator) (int64, error) {
	var deleted int64
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, goerr.Wrap(err, "failed to iterate notifications")
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return deleted, goerr.Wrap(err, "failed to delete notification", goerr.V("doc_id", docSnap.Ref.ID))
		}
		deleted++
	}

	return deleted, nil
}
