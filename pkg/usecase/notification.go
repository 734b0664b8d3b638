package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/service/slack"
	"github.com/worklane/worklane/pkg/utils/errutil"
	"github.com/worklane/worklane/pkg/utils/logging"
)

// fallbackActorName is used when the triggering actor cannot be resolved
const fallbackActorName = "Admin"

type NotificationUseCase struct {
	repo    interfaces.Repository
	channel interfaces.Channel
	slack   slack.Service
}

func NewNotificationUseCase(repo interfaces.Repository, channel interfaces.Channel, slackSvc slack.Service) *NotificationUseCase {
	return &NotificationUseCase{
		repo:    repo,
		channel: channel,
		slack:   slackSvc,
	}
}

// Send persists the notification, then pushes the record and the recomputed
// unread count to the target user's channels. Persistence is authoritative:
// if it fails the whole operation fails and nothing is pushed. Push failures
// after successful persistence are logged and never surfaced, so a persisted
// notification is retrievable even if nobody was listening.
func (uc *NotificationUseCase) Send(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.UserID == 0 {
		return nil, goerr.New("notification target user is required")
	}
	if err := n.RelatedEntity.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid related entity")
	}

	created, err := uc.repo.Notification().Create(ctx, n)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist notification")
	}

	uc.push(ctx, created)

	return created, nil
}

// push is the fire-and-forget delivery step after successful persistence
func (uc *NotificationUseCase) push(ctx context.Context, n *model.Notification) {
	if uc.channel != nil {
		if err := uc.channel.PublishNotification(ctx, n.UserID, n); err != nil {
			errutil.Handle(ctx, err, "failed to push notification")
		}
		uc.pushUnreadCount(ctx, n.UserID)
	}

	if uc.slack != nil {
		uc.deliverSlack(ctx, n)
	}
}

// pushUnreadCount recomputes the user's unread count and publishes it.
// Failures are logged, never surfaced.
func (uc *NotificationUseCase) pushUnreadCount(ctx context.Context, userID types.UserID) {
	if uc.channel == nil {
		return
	}

	count, err := uc.repo.Notification().CountUnreadByUser(ctx, userID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to recompute unread count")
		return
	}
	if err := uc.channel.PublishUnreadCount(ctx, userID, count); err != nil {
		errutil.Handle(ctx, err, "failed to push unread count")
	}
}

// deliverSlack DMs the target user as a secondary sink. Best-effort.
func (uc *NotificationUseCase) deliverSlack(ctx context.Context, n *model.Notification) {
	user, err := uc.repo.User().Get(ctx, n.UserID)
	if err != nil {
		logging.From(ctx).Debug("skipping Slack delivery, target user not found",
			"userID", n.UserID,
			"error", err,
		)
		return
	}
	if err := uc.slack.SendDirectMessage(ctx, user.Email, n.Title, n.Message); err != nil {
		errutil.Handle(ctx, err, "failed to deliver notification via Slack")
	}
}

// SendEnhancedTaskNotification builds a location-enriched notification for a
// task event and sends it. Resolution failures degrade the message, they
// never fail the call: a task mutation's response must not depend on its
// notification being deliverable.
func (uc *NotificationUseCase) SendEnhancedTaskNotification(ctx context.Context, taskID types.TaskID, targetUserID types.UserID, notifType types.NotificationType, actorID *types.UserID) (*model.Notification, error) {
	actorName := fallbackActorName
	if actorID != nil {
		if actor, err := uc.repo.User().Get(ctx, *actorID); err == nil {
			actorName = actor.DisplayName()
		}
	}

	loc := resolveTaskLocation(ctx, uc.repo, taskID)

	var message string
	if loc.TaskName == model.UnknownTaskLocation().TaskName {
		// Task itself unresolvable: generic fallback
		message = "There is an update on your task"
	} else {
		message = taskMessage(notifType, actorName, loc)
	}

	meta := model.NotificationMeta{
		TaskName:      loc.TaskName,
		TaskID:        int64(taskID),
		WorkspaceName: loc.WorkspaceName,
		BoardName:     loc.BoardName,
		GroupName:     loc.GroupName,
		Actor:         actorName,
	}
	if loc.DueDate != nil {
		meta.DueDate = loc.DueDate.Format("2006-01-02")
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode notification metadata", goerr.V(TaskIDKey, taskID))
	}

	n := &model.Notification{
		UserID:        targetUserID,
		Type:          notifType,
		Title:         taskTitle(notifType),
		Message:       message,
		RelatedEntity: types.RelatedTask(taskID),
		Metadata:      string(metadata),
		CreatedByID:   actorID,
	}

	return uc.Send(ctx, n)
}

// taskMessage fills the per-type message template with the resolved context
func taskMessage(notifType types.NotificationType, actorName string, loc model.TaskLocation) string {
	path := fmt.Sprintf("%s > %s > %s", loc.WorkspaceName, loc.BoardName, loc.GroupName)

	due := "unspecified"
	if loc.DueDate != nil {
		due = loc.DueDate.Format("2006-01-02")
	}

	switch notifType {
	case types.NotificationTaskAssigned:
		return fmt.Sprintf("%s assigned you task %q (due: %s) in %s", actorName, loc.TaskName, due, path)
	case types.NotificationTaskUpdated:
		return fmt.Sprintf("Task %q was updated by %s in %s", loc.TaskName, actorName, path)
	case types.NotificationTaskCompleted:
		return fmt.Sprintf("Task %q was completed in %s", loc.TaskName, path)
	case types.NotificationDeadlineWarning:
		return fmt.Sprintf("Task %q is due soon (%s) in %s", loc.TaskName, due, path)
	default:
		return fmt.Sprintf("Task %q has an update in %s", loc.TaskName, path)
	}
}

func taskTitle(notifType types.NotificationType) string {
	switch notifType {
	case types.NotificationTaskAssigned:
		return "Task assigned"
	case types.NotificationTaskUpdated:
		return "Task updated"
	case types.NotificationTaskCompleted:
		return "Task completed"
	case types.NotificationDeadlineWarning:
		return "Task due soon"
	default:
		return "Task notification"
	}
}

// Subscribe attaches a live consumer to the user's channel
func (uc *NotificationUseCase) Subscribe(ctx context.Context, userID types.UserID) (<-chan interfaces.ChannelEvent, func(), error) {
	if uc.channel == nil {
		return nil, nil, goerr.New("no subscriber channel configured")
	}
	return uc.channel.Subscribe(ctx, userID)
}

// GetNotificationsForUser returns one page of the user's feed, most recent
// first. Page is 0-indexed.
func (uc *NotificationUseCase) GetNotificationsForUser(ctx context.Context, userID types.UserID, page, size int) ([]*model.Notification, error) {
	notifications, err := uc.repo.Notification().ListByUser(ctx, userID, page, size)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V(UserIDKey, userID))
	}
	return notifications, nil
}

// GetUnreadNotifications returns the user's unread notifications, most
// recent first
func (uc *NotificationUseCase) GetUnreadNotifications(ctx context.Context, userID types.UserID) ([]*model.Notification, error) {
	notifications, err := uc.repo.Notification().ListUnreadByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list unread notifications", goerr.V(UserIDKey, userID))
	}
	return notifications, nil
}

// GetUnreadCount returns the user's unread notification count
func (uc *NotificationUseCase) GetUnreadCount(ctx context.Context, userID types.UserID) (int64, error) {
	count, err := uc.repo.Notification().CountUnreadByUser(ctx, userID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unread notifications", goerr.V(UserIDKey, userID))
	}
	return count, nil
}

// MarkAsRead flips one notification to read iff it belongs to the user and
// is still unread. Pushes an updated unread count only when a row changed.
func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, id types.NotificationID, userID types.UserID) (bool, error) {
	changed, err := uc.repo.Notification().MarkAsRead(ctx, id, userID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to mark notification as read", goerr.V(NotificationIDKey, id))
	}

	if changed {
		uc.pushUnreadCount(ctx, userID)
	}

	return changed, nil
}

// MarkAllAsRead flips all of the user's unread notifications to read.
// Pushes the updated count once, only when at least one row changed.
func (uc *NotificationUseCase) MarkAllAsRead(ctx context.Context, userID types.UserID) (int64, error) {
	updated, err := uc.repo.Notification().MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark notifications as read", goerr.V(UserIDKey, userID))
	}

	if updated > 0 {
		uc.pushUnreadCount(ctx, userID)
	}

	return updated, nil
}

// DeleteAllNotifications irreversibly removes all of the user's notifications
func (uc *NotificationUseCase) DeleteAllNotifications(ctx context.Context, userID types.UserID) (int64, error) {
	deleted, err := uc.repo.Notification().DeleteByUser(ctx, userID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete notifications", goerr.V(UserIDKey, userID))
	}

	if deleted > 0 {
		uc.pushUnreadCount(ctx, userID)
	}

	return deleted, nil
}

// CleanupOldNotifications purges notifications older than daysToKeep days,
// across all users. Intended for periodic background invocation.
func (uc *NotificationUseCase) CleanupOldNotifications(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 0 {
		return 0, goerr.New("daysToKeep must not be negative", goerr.V("daysToKeep", daysToKeep))
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -daysToKeep)
	deleted, err := uc.repo.Notification().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to cleanup old notifications", goerr.V("cutoff", cutoff))
	}

	if deleted > 0 {
		logging.From(ctx).Info("purged old notifications",
			"deleted", deleted,
			"daysToKeep", daysToKeep,
		)
	}

	return deleted, nil
}
