package channel_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/m-mizutani/gt"
	"github.com/redis/go-redis/v9"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/service/channel"
)

func newRedisChannel(t *testing.T) *channel.Redis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return channel.NewRedis(client)
}

func receiveEvent(t *testing.T, events <-chan interfaces.ChannelEvent) interfaces.ChannelEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for channel event")
		return interfaces.ChannelEvent{}
	}
}

func TestRedisPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	ch := newRedisChannel(t)
	userID := types.UserID(7)

	events, cancel, err := ch.Subscribe(ctx, userID)
	gt.NoError(t, err).Required()
	defer cancel()

	n := &model.Notification{
		ID:      42,
		UserID:  userID,
		Type:    types.NotificationTaskAssigned,
		Title:   "Task assigned",
		Message: "You have a new task",
	}
	gt.NoError(t, ch.PublishNotification(ctx, userID, n))

	ev := receiveEvent(t, events)
	gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventNotification)
	gt.Value(t, ev.Notification).NotNil()
	gt.Value(t, ev.Notification.ID).Equal(types.NotificationID(42))
	gt.Value(t, ev.Notification.Message).Equal("You have a new task")

	gt.NoError(t, ch.PublishUnreadCount(ctx, userID, 5))

	ev = receiveEvent(t, events)
	gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventUnreadCount)
	gt.Number(t, ev.UnreadCount).Equal(5)
}

func TestRedisTopicIsolation(t *testing.T) {
	ctx := context.Background()
	ch := newRedisChannel(t)

	events, cancel, err := ch.Subscribe(ctx, types.UserID(1))
	gt.NoError(t, err).Required()
	defer cancel()

	gt.NoError(t, ch.PublishUnreadCount(ctx, types.UserID(2), 9))
	gt.NoError(t, ch.PublishUnreadCount(ctx, types.UserID(1), 1))

	// Only the subscriber's own topic is delivered
	ev := receiveEvent(t, events)
	gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventUnreadCount)
	gt.Number(t, ev.UnreadCount).Equal(1)
}

func TestRedisCancelClosesEvents(t *testing.T) {
	ctx := context.Background()
	ch := newRedisChannel(t)

	events, cancel, err := ch.Subscribe(ctx, types.UserID(1))
	gt.NoError(t, err).Required()

	cancel()

	select {
	case _, open := <-events:
		gt.Bool(t, open).False()
	case <-time.After(3 * time.Second):
		t.Fatal("event channel not closed after cancel")
	}
}
