package model

import (
	"time"

	"github.com/worklane/worklane/pkg/domain/types"
)

// Notification is a persisted, per-user, typed event record.
// IsRead only moves false -> true; CreatedAt is set once and never changes.
type Notification struct {
	ID            types.NotificationID    `firestore:"id" json:"id"`
	UserID        types.UserID            `firestore:"userId" json:"userId"`
	Type          types.NotificationType  `firestore:"type" json:"type"`
	Title         string                  `firestore:"title" json:"title"`
	Message       string                  `firestore:"message" json:"message"`
	IsRead        bool                    `firestore:"isRead" json:"isRead"`
	RelatedEntity types.RelatedEntity     `firestore:"relatedEntity,omitempty" json:"relatedEntity,omitempty"`
	Metadata      string                  `firestore:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedByID   *types.UserID           `firestore:"createdById,omitempty" json:"createdById,omitempty"`
	CreatedAt     time.Time               `firestore:"createdAt" json:"createdAt"`
}

// NotificationMeta is the structured context attached to task notifications.
// It is serialized with encoding/json into Notification.Metadata.
type NotificationMeta struct {
	TaskName      string `json:"taskName"`
	TaskID        int64  `json:"taskId"`
	WorkspaceName string `json:"workspaceName"`
	BoardName     string `json:"boardName"`
	GroupName     string `json:"groupName"`
	DueDate       string `json:"dueDate,omitempty"`
	Actor         string `json:"actor,omitempty"`
}

// TaskLocation is the resolved (workspace, board, group) context of a task,
// used to enrich notification messages. Resolution is best-effort: any hop
// that fails yields the Unknown* sentinels instead of an error.
type TaskLocation struct {
	TaskName      string
	DueDate       *time.Time
	WorkspaceName string
	BoardName     string
	GroupName     string
}

// UnknownTaskLocation is the sentinel location used when resolution fails
func UnknownTaskLocation() TaskLocation {
	return TaskLocation{
		TaskName:      "Unknown Task",
		WorkspaceName: "Unknown Workspace",
		BoardName:     "Unknown Board",
		GroupName:     "Unknown Group",
	}
}
