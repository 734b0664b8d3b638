package types

import "fmt"

// NotificationType represents the kind of event a notification describes
type NotificationType string

const (
	NotificationTaskAssigned    NotificationType = "TASK_ASSIGNED"
	NotificationTaskUpdated     NotificationType = "TASK_UPDATED"
	NotificationTaskCompleted   NotificationType = "TASK_COMPLETED"
	NotificationTaskOverdue     NotificationType = "TASK_OVERDUE"
	NotificationCommentAdded    NotificationType = "COMMENT_ADDED"
	NotificationDeadlineWarning NotificationType = "DEADLINE_WARNING"
	NotificationBoardCreated    NotificationType = "BOARD_CREATED"
	NotificationBoardUpdated    NotificationType = "BOARD_UPDATED"
	NotificationGroupCreated    NotificationType = "GROUP_CREATED"
	NotificationUserJoined      NotificationType = "USER_JOINED"
	NotificationUserLeft        NotificationType = "USER_LEFT"
	NotificationWorkspaceCreate NotificationType = "WORKSPACE_CREATED"
	NotificationMention         NotificationType = "MENTION"
)

// AllNotificationTypes returns all valid notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationTaskAssigned,
		NotificationTaskUpdated,
		NotificationTaskCompleted,
		NotificationTaskOverdue,
		NotificationCommentAdded,
		NotificationDeadlineWarning,
		NotificationBoardCreated,
		NotificationBoardUpdated,
		NotificationGroupCreated,
		NotificationUserJoined,
		NotificationUserLeft,
		NotificationWorkspaceCreate,
		NotificationMention,
	}
}

// IsValid checks if the notification type is valid
func (t NotificationType) IsValid() bool {
	for _, v := range AllNotificationTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// String returns the string representation of the notification type
func (t NotificationType) String() string {
	return string(t)
}

// ParseNotificationType parses a string into a NotificationType
func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}
