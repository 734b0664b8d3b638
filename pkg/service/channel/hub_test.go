package channel_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/service/channel"
)

func TestHubPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	hub := channel.NewHub()
	userID := types.UserID(1)

	events, cancel, err := hub.Subscribe(ctx, userID)
	gt.NoError(t, err).Required()
	defer cancel()

	n := &model.Notification{ID: 42, UserID: userID, Type: types.NotificationTaskAssigned}
	gt.NoError(t, hub.PublishNotification(ctx, userID, n))
	gt.NoError(t, hub.PublishUnreadCount(ctx, userID, 3))

	ev := <-events
	gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventNotification)
	gt.Value(t, ev.Notification.ID).Equal(types.NotificationID(42))

	ev = <-events
	gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventUnreadCount)
	gt.Number(t, ev.UnreadCount).Equal(3)
}

func TestHubIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	hub := channel.NewHub()

	events, cancel, err := hub.Subscribe(ctx, types.UserID(1))
	gt.NoError(t, err).Required()
	defer cancel()

	gt.NoError(t, hub.PublishUnreadCount(ctx, types.UserID(2), 9))
	gt.Number(t, len(events)).Equal(0)
}

func TestHubFanOut(t *testing.T) {
	ctx := context.Background()
	hub := channel.NewHub()
	userID := types.UserID(1)

	first, cancelFirst, err := hub.Subscribe(ctx, userID)
	gt.NoError(t, err).Required()
	second, cancelSecond, err := hub.Subscribe(ctx, userID)
	gt.NoError(t, err).Required()
	defer cancelSecond()

	gt.NoError(t, hub.PublishUnreadCount(ctx, userID, 1))
	gt.Number(t, (<-first).UnreadCount).Equal(1)
	gt.Number(t, (<-second).UnreadCount).Equal(1)

	// A canceled subscriber no longer receives
	cancelFirst()
	gt.NoError(t, hub.PublishUnreadCount(ctx, userID, 2))
	gt.Number(t, (<-second).UnreadCount).Equal(2)

	_, open := <-first
	gt.Bool(t, open).False()
}

func TestHubSlowConsumerDropsEvents(t *testing.T) {
	ctx := context.Background()
	hub := channel.NewHub()
	userID := types.UserID(1)

	events, cancel, err := hub.Subscribe(ctx, userID)
	gt.NoError(t, err).Required()
	defer cancel()

	// Overflow the subscriber buffer without draining. Publishing must not
	// block, surplus events are dropped.
	for i := range 32 {
		gt.NoError(t, hub.PublishUnreadCount(ctx, userID, int64(i)))
	}
	gt.Number(t, len(events)).Equal(16)
}

func TestHubClose(t *testing.T) {
	ctx := context.Background()
	hub := channel.NewHub()

	events, _, err := hub.Subscribe(ctx, types.UserID(1))
	gt.NoError(t, err).Required()

	gt.NoError(t, hub.Close())

	_, open := <-events
	gt.Bool(t, open).False()

	// Publish and a late subscribe after close are harmless
	gt.NoError(t, hub.PublishUnreadCount(ctx, types.UserID(1), 1))
	late, _, err := hub.Subscribe(ctx, types.UserID(1))
	gt.NoError(t, err).Required()
	_, open = <-late
	gt.Bool(t, open).False()
}
