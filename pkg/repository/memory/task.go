package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[types.TaskID]*model.Task
	nextID int64
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[types.TaskID]*model.Task),
	}
}

func copyTask(t *model.Task) *model.Task {
	copied := *t
	if t.AssignedTo != nil {
		assignee := *t.AssignedTo
		copied.AssignedTo = &assignee
	}
	if t.DueDate != nil {
		due := *t.DueDate
		copied.DueDate = &due
	}
	return &copied
}

func (r *taskRepository) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	created := copyTask(t)
	created.ID = types.TaskID(r.nextID)
	created.Status = t.Status.Normalize()
	created.Priority = t.Priority.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.tasks[created.ID] = created
	return copyTask(created), nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	return copyTask(t), nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		result = append(result, copyTask(t))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *taskRepository) ListByGroup(ctx context.Context, groupID types.GroupID) ([]*model.Task, error) {
	return r.ListByGroups(ctx, []types.GroupID{groupID})
}

func (r *taskRepository) ListByGroups(ctx context.Context, groupIDs []types.GroupID) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[types.GroupID]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}

	var result []*model.Task
	for _, t := range r.tasks {
		if wanted[t.GroupID] {
			result = append(result, copyTask(t))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *taskRepository) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.tasks[t.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", t.ID))
	}

	updated := copyTask(t)
	updated.GroupID = existing.GroupID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.tasks[updated.ID] = updated
	return copyTask(updated), nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Deleting an absent task is a no-op
	delete(r.tasks, id)
	return nil
}

func (r *taskRepository) CountByGroup(ctx context.Context, groupID types.GroupID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, t := range r.tasks {
		if t.GroupID == groupID {
			count++
		}
	}
	return count, nil
}
