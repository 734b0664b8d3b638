package model

import (
	"time"

	"github.com/worklane/worklane/pkg/domain/types"
)

// Task represents a unit of work inside a group. GroupID and CreatedBy are
// set at creation and never reassigned.
type Task struct {
	ID          types.TaskID       `firestore:"id"`
	GroupID     types.GroupID      `firestore:"groupId"`
	Name        string             `firestore:"name"`
	Description string             `firestore:"description,omitempty"`
	Status      types.TaskStatus   `firestore:"status"`
	Priority    types.TaskPriority `firestore:"priority"`
	DueDate     *time.Time         `firestore:"dueDate,omitempty"`
	Timeline    string             `firestore:"timeline,omitempty"`
	Notes       string             `firestore:"notes,omitempty"`
	AssignedTo  *types.UserID      `firestore:"assignedTo,omitempty"`
	CreatedBy   types.UserID       `firestore:"createdBy"`
	CreatedAt   time.Time          `firestore:"createdAt"`
	UpdatedAt   time.Time          `firestore:"updatedAt"`
}

// TaskView is the denormalized projection of a task returned to callers.
// Creator and assignee names are resolved so the caller does not have to join.
type TaskView struct {
	ID             types.TaskID       `json:"id"`
	GroupID        types.GroupID      `json:"groupId"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Status         types.TaskStatus   `json:"status"`
	Priority       types.TaskPriority `json:"priority"`
	DueDate        *time.Time         `json:"dueDate,omitempty"`
	Timeline       string             `json:"timeline,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	AssignedToID   *types.UserID      `json:"assignedToId,omitempty"`
	AssignedToName string             `json:"assignedToName,omitempty"`
	CreatedByID    types.UserID       `json:"createdById"`
	CreatedByName  string             `json:"createdByName,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
