package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/repository/memory"
	"github.com/worklane/worklane/pkg/service/channel"
	"github.com/worklane/worklane/pkg/usecase"
)

// seedTaskTree builds workspace > board > group > task with known names and
// returns the task ID.
func seedTaskTree(t *testing.T, repo *memory.Memory, creator types.UserID, assignee *types.UserID, due *time.Time) types.TaskID {
	t.Helper()
	ctx := context.Background()

	workspace, err := repo.Workspace().Create(ctx, &model.Workspace{Name: "Acme", OwnerID: creator})
	gt.NoError(t, err).Required()
	board, err := repo.Board().Create(ctx, &model.Board{WorkspaceID: workspace.ID, Name: "Launch"})
	gt.NoError(t, err).Required()
	group, err := repo.Group().Create(ctx, &model.Group{BoardID: board.ID, Name: "Sprint 1"})
	gt.NoError(t, err).Required()
	task, err := repo.Task().Create(ctx, &model.Task{
		GroupID:    group.ID,
		Name:       "Prepare deck",
		DueDate:    due,
		CreatedBy:  creator,
		AssignedTo: assignee,
	})
	gt.NoError(t, err).Required()
	return task.ID
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	t.Run("missing target user", func(t *testing.T) {
		_, err := uc.Notification.Send(ctx, &model.Notification{Type: types.NotificationTaskUpdated})
		gt.Error(t, err)
	})

	t.Run("kind without id in related entity", func(t *testing.T) {
		_, err := uc.Notification.Send(ctx, &model.Notification{
			UserID:        1,
			Type:          types.NotificationTaskUpdated,
			RelatedEntity: types.RelatedEntity{Kind: types.RelatedKindTask},
		})
		gt.Error(t, err)
	})
}

func TestSendPushesToSubscriber(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	hub := channel.NewHub()
	uc := usecase.New(repo, usecase.WithChannel(hub))

	userID := seedUser(t, repo, "target@example.com", types.RoleMember)

	events, cancel, err := uc.Notification.Subscribe(ctx, userID)
	gt.NoError(t, err).Required()
	defer cancel()

	created, err := uc.Notification.Send(ctx, &model.Notification{
		UserID:  userID,
		Type:    types.NotificationMention,
		Title:   "Mention",
		Message: "You were mentioned",
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, created.IsRead).False()

	// Hub delivery is synchronous, both events are buffered already
	first := <-events
	gt.Value(t, first.Kind).Equal(interfaces.ChannelEventNotification)
	gt.Value(t, first.Notification.ID).Equal(created.ID)

	second := <-events
	gt.Value(t, second.Kind).Equal(interfaces.ChannelEventUnreadCount)
	gt.Number(t, second.UnreadCount).Equal(1)
}

func TestSendWithoutChannel(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	userID := seedUser(t, repo, "target@example.com", types.RoleMember)

	// Persistence succeeds with nobody listening
	created, err := uc.Notification.Send(ctx, &model.Notification{
		UserID: userID,
		Type:   types.NotificationTaskUpdated,
		Title:  "Task updated",
	})
	gt.NoError(t, err).Required()

	feed, err := uc.Notification.GetNotificationsForUser(ctx, userID, 0, 10)
	gt.NoError(t, err).Required()
	gt.Array(t, feed).Length(1)
	gt.Value(t, feed[0].ID).Equal(created.ID)

	_, _, err = uc.Notification.Subscribe(ctx, userID)
	gt.Error(t, err)
}

func TestSendEnhancedTaskNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment message carries the full location path", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		actor, err := repo.User().Create(ctx, &model.User{
			Email: "frank@example.com", FirstName: "Frank", LastName: "Ocean", Role: types.RoleManager, IsActive: true,
		})
		gt.NoError(t, err).Required()
		target := seedUser(t, repo, "target@example.com", types.RoleMember)
		due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		taskID := seedTaskTree(t, repo, actor.ID, &target, &due)

		n, err := uc.Notification.SendEnhancedTaskNotification(ctx, taskID, target, types.NotificationTaskAssigned, &actor.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, n.UserID).Equal(target)
		gt.Value(t, n.Type).Equal(types.NotificationTaskAssigned)
		gt.Bool(t, n.IsRead).False()
		gt.Value(t, n.Title).Equal("Task assigned")
		gt.Value(t, n.Message).Equal(`Frank Ocean assigned you task "Prepare deck" (due: 2026-09-15) in Acme > Launch > Sprint 1`)
		gt.Value(t, n.RelatedEntity).Equal(types.RelatedTask(taskID))

		var meta model.NotificationMeta
		gt.NoError(t, json.Unmarshal([]byte(n.Metadata), &meta))
		gt.Value(t, meta.TaskName).Equal("Prepare deck")
		gt.Value(t, meta.WorkspaceName).Equal("Acme")
		gt.Value(t, meta.BoardName).Equal("Launch")
		gt.Value(t, meta.GroupName).Equal("Sprint 1")
		gt.Value(t, meta.DueDate).Equal("2026-09-15")
		gt.Value(t, meta.Actor).Equal("Frank Ocean")
	})

	t.Run("nil actor falls back to Admin", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		creator := seedUser(t, repo, "creator@example.com", types.RoleManager)
		target := seedUser(t, repo, "target@example.com", types.RoleMember)
		taskID := seedTaskTree(t, repo, creator, &target, nil)

		n, err := uc.Notification.SendEnhancedTaskNotification(ctx, taskID, target, types.NotificationTaskUpdated, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, n.Message).Equal(`Task "Prepare deck" was updated by Admin in Acme > Launch > Sprint 1`)
	})

	t.Run("missing due date renders as unspecified", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		creator := seedUser(t, repo, "creator@example.com", types.RoleManager)
		target := seedUser(t, repo, "target@example.com", types.RoleMember)
		taskID := seedTaskTree(t, repo, creator, &target, nil)

		n, err := uc.Notification.SendEnhancedTaskNotification(ctx, taskID, target, types.NotificationDeadlineWarning, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, n.Title).Equal("Task due soon")
		gt.Value(t, n.Message).Equal(`Task "Prepare deck" is due soon (unspecified) in Acme > Launch > Sprint 1`)
	})

	t.Run("broken containment degrades to sentinels, not failure", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		creator := seedUser(t, repo, "creator@example.com", types.RoleManager)
		target := seedUser(t, repo, "target@example.com", types.RoleMember)

		// Task whose group does not exist
		task, err := repo.Task().Create(ctx, &model.Task{
			GroupID:   9999,
			Name:      "Orphan",
			CreatedBy: creator,
		})
		gt.NoError(t, err).Required()

		n, err := uc.Notification.SendEnhancedTaskNotification(ctx, task.ID, target, types.NotificationTaskCompleted, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, n.Message).Equal(`Task "Orphan" was completed in Unknown Workspace > Unknown Board > Unknown Group`)
	})

	t.Run("unresolvable task yields the generic fallback", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		target := seedUser(t, repo, "target@example.com", types.RoleMember)

		n, err := uc.Notification.SendEnhancedTaskNotification(ctx, types.TaskID(9999), target, types.NotificationTaskUpdated, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, n.Message).Equal("There is an update on your task")
	})
}

func TestUnreadLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	hub := channel.NewHub()
	uc := usecase.New(repo, usecase.WithChannel(hub))

	userID := seedUser(t, repo, "reader@example.com", types.RoleMember)

	var ids []types.NotificationID
	for range 5 {
		n, err := uc.Notification.Send(ctx, &model.Notification{
			UserID: userID,
			Type:   types.NotificationTaskUpdated,
			Title:  "Task updated",
		})
		gt.NoError(t, err).Required()
		ids = append(ids, n.ID)
	}

	count, err := uc.Notification.GetUnreadCount(ctx, userID)
	gt.NoError(t, err)
	gt.Number(t, count).Equal(5)

	t.Run("mark one as read", func(t *testing.T) {
		events, cancel, err := uc.Notification.Subscribe(ctx, userID)
		gt.NoError(t, err).Required()
		defer cancel()

		changed, err := uc.Notification.MarkAsRead(ctx, ids[0], userID)
		gt.NoError(t, err)
		gt.Bool(t, changed).True()

		ev := <-events
		gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventUnreadCount)
		gt.Number(t, ev.UnreadCount).Equal(4)

		// Second flip is a no-op and pushes nothing
		changed, err = uc.Notification.MarkAsRead(ctx, ids[0], userID)
		gt.NoError(t, err)
		gt.Bool(t, changed).False()
		gt.Number(t, len(events)).Equal(0)
	})

	t.Run("foreign notification is not readable", func(t *testing.T) {
		stranger := seedUser(t, repo, "stranger@example.com", types.RoleMember)
		changed, err := uc.Notification.MarkAsRead(ctx, ids[1], stranger)
		gt.NoError(t, err)
		gt.Bool(t, changed).False()
	})

	t.Run("mark all as read is idempotent", func(t *testing.T) {
		events, cancel, err := uc.Notification.Subscribe(ctx, userID)
		gt.NoError(t, err).Required()
		defer cancel()

		updated, err := uc.Notification.MarkAllAsRead(ctx, userID)
		gt.NoError(t, err)
		gt.Number(t, updated).Equal(4)

		ev := <-events
		gt.Value(t, ev.Kind).Equal(interfaces.ChannelEventUnreadCount)
		gt.Number(t, ev.UnreadCount).Equal(0)

		updated, err = uc.Notification.MarkAllAsRead(ctx, userID)
		gt.NoError(t, err)
		gt.Number(t, updated).Equal(0)
		gt.Number(t, len(events)).Equal(0)
	})

	t.Run("delete all", func(t *testing.T) {
		deleted, err := uc.Notification.DeleteAllNotifications(ctx, userID)
		gt.NoError(t, err)
		gt.Number(t, deleted).Equal(5)

		feed, err := uc.Notification.GetNotificationsForUser(ctx, userID, 0, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, feed).Length(0)
	})
}

func TestCleanupOldNotifications(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	userID := seedUser(t, repo, "reader@example.com", types.RoleMember)

	now := time.Now().UTC()
	for _, age := range []int{45, 10} {
		_, err := repo.Notification().Create(ctx, &model.Notification{
			UserID:    userID,
			Type:      types.NotificationTaskUpdated,
			Title:     "Task updated",
			CreatedAt: now.AddDate(0, 0, -age),
		})
		gt.NoError(t, err).Required()
	}

	deleted, err := uc.Notification.CleanupOldNotifications(ctx, 30)
	gt.NoError(t, err)
	gt.Number(t, deleted).Equal(1)

	feed, err := uc.Notification.GetNotificationsForUser(ctx, userID, 0, 10)
	gt.NoError(t, err).Required()
	gt.Array(t, feed).Length(1)

	_, err = uc.Notification.CleanupOldNotifications(ctx, -1)
	gt.Error(t, err)
}
