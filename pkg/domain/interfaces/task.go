package interfaces

import (
	"context"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

// TaskRepository defines the interface for Task data access
type TaskRepository interface {
	// Create creates a new task with auto-generated ID
	Create(ctx context.Context, t *model.Task) (*model.Task, error)

	// Get retrieves a task by ID
	Get(ctx context.Context, id types.TaskID) (*model.Task, error)

	// List retrieves all tasks
	List(ctx context.Context) ([]*model.Task, error)

	// ListByGroup retrieves tasks belonging to a group
	ListByGroup(ctx context.Context, groupID types.GroupID) ([]*model.Task, error)

	// ListByGroups retrieves tasks belonging to any of the given groups.
	// Used to project a whole board without per-group round trips.
	ListByGroups(ctx context.Context, groupIDs []types.GroupID) ([]*model.Task, error)

	// Update overwrites an existing task
	Update(ctx context.Context, t *model.Task) (*model.Task, error)

	// Delete deletes a task by ID. Deleting an absent task is a no-op.
	Delete(ctx context.Context, id types.TaskID) error

	// CountByGroup returns the number of tasks owned by a group
	CountByGroup(ctx context.Context, groupID types.GroupID) (int64, error)
}
