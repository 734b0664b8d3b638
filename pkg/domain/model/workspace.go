package model

import (
	"time"

	"github.com/worklane/worklane/pkg/domain/types"
)

// Workspace is the root of the containment tree: workspace > board > group > task
type Workspace struct {
	ID          types.WorkspaceID `firestore:"id" json:"id"`
	Name        string            `firestore:"name" json:"name"`
	Description string            `firestore:"description,omitempty" json:"description,omitempty"`
	OwnerID     types.UserID      `firestore:"ownerId" json:"ownerId"`
	IsArchived  bool              `firestore:"isArchived" json:"isArchived"`
	CreatedAt   time.Time         `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

// Board belongs to one workspace
type Board struct {
	ID          types.BoardID     `firestore:"id" json:"id"`
	WorkspaceID types.WorkspaceID `firestore:"workspaceId" json:"workspaceId"`
	Name        string            `firestore:"name" json:"name"`
	Description string            `firestore:"description,omitempty" json:"description,omitempty"`
	IsArchived  bool              `firestore:"isArchived" json:"isArchived"`
	CreatedAt   time.Time         `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

// Group belongs to one board. SortOrder defines display order, ascending.
type Group struct {
	ID         types.GroupID `firestore:"id" json:"id"`
	BoardID    types.BoardID `firestore:"boardId" json:"boardId"`
	Name       string        `firestore:"name" json:"name"`
	Color      string        `firestore:"color,omitempty" json:"color,omitempty"`
	SortOrder  int           `firestore:"sortOrder" json:"sortOrder"`
	IsArchived bool          `firestore:"isArchived" json:"isArchived"`
	CreatedAt  time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `firestore:"updatedAt" json:"updatedAt"`
}
