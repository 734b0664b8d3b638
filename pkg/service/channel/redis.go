package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/utils/logging"
)

// Redis is a Channel backed by Redis pub/sub, for multi-node deployments
// where the subscriber may be connected to a different process than the
// one persisting the notification.
type Redis struct {
	client *redis.Client
}

var _ interfaces.Channel = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func notificationTopic(userID types.UserID) string {
	return fmt.Sprintf("notify:user:%d", int64(userID))
}

func unreadTopic(userID types.UserID) string {
	return fmt.Sprintf("notify:unread:%d", int64(userID))
}

func (r *Redis) PublishNotification(ctx context.Context, userID types.UserID, n *model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return goerr.Wrap(err, "failed to encode notification", goerr.V("id", n.ID))
	}

	if err := r.client.Publish(ctx, notificationTopic(userID), payload).Err(); err != nil {
		return goerr.Wrap(err, "failed to publish notification", goerr.V("userID", userID))
	}

	return nil
}

func (r *Redis) PublishUnreadCount(ctx context.Context, userID types.UserID, count int64) error {
	if err := r.client.Publish(ctx, unreadTopic(userID), count).Err(); err != nil {
		return goerr.Wrap(err, "failed to publish unread count", goerr.V("userID", userID))
	}

	return nil
}

func (r *Redis) Subscribe(ctx context.Context, userID types.UserID) (<-chan interfaces.ChannelEvent, func(), error) {
	pubsub := r.client.Subscribe(ctx, notificationTopic(userID), unreadTopic(userID))

	// Force the subscription before returning so published events are not missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, goerr.Wrap(err, "failed to subscribe", goerr.V("userID", userID))
	}

	events := make(chan interfaces.ChannelEvent, 16)

	go func() {
		defer close(events)

		logger := logging.From(ctx)
		for msg := range pubsub.Channel() {
			ev, err := decodeEvent(userID, msg)
			if err != nil {
				logger.Warn("dropping undecodable channel event",
					"channel", msg.Channel,
					"error", err,
				)
				continue
			}

			select {
			case events <- ev:
			default:
				// Slow consumer, drop the event
			}
		}
	}()

	cancel := func() {
		_ = pubsub.Close()
	}

	return events, cancel, nil
}

func decodeEvent(userID types.UserID, msg *redis.Message) (interfaces.ChannelEvent, error) {
	switch msg.Channel {
	case notificationTopic(userID):
		var n model.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			return interfaces.ChannelEvent{}, goerr.Wrap(err, "invalid notification payload")
		}
		return interfaces.ChannelEvent{
			Kind:         interfaces.ChannelEventNotification,
			Notification: &n,
		}, nil

	case unreadTopic(userID):
		var count int64
		if err := json.Unmarshal([]byte(msg.Payload), &count); err != nil {
			return interfaces.ChannelEvent{}, goerr.Wrap(err, "invalid unread count payload")
		}
		return interfaces.ChannelEvent{
			Kind:        interfaces.ChannelEventUnreadCount,
			UnreadCount: count,
		}, nil

	default:
		return interfaces.ChannelEvent{}, goerr.New("unexpected channel", goerr.V("channel", msg.Channel))
	}
}

func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close redis client")
	}
	return nil
}
