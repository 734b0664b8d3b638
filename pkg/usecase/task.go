package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/utils/logging"
)

type TaskUseCase struct {
	repo interfaces.Repository
}

func NewTaskUseCase(repo interfaces.Repository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

// CreateTaskInput describes a new task. Status and Priority are free-form
// strings: out-of-set values are coerced to defaults, never rejected.
type CreateTaskInput struct {
	GroupID     types.GroupID
	Name        string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	Timeline    string
	Notes       string
	AssignedTo  *types.UserID
	CreatedBy   types.UserID
}

// UpdateTaskInput is a partial patch. Nil fields are left unchanged. Assignee
// uses an explicit presence flag: AssigneeSet=false leaves the assignment
// unchanged, AssigneeSet=true with a nil Assignee clears it.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
	Timeline    *string
	Notes       *string
	Assignee    *types.UserID
	AssigneeSet bool
}

// CreateTask creates a task. The group and creator must resolve; an
// unresolvable assignee is ignored rather than failing the creation.
func (uc *TaskUseCase) CreateTask(ctx context.Context, input CreateTaskInput) (*model.TaskView, error) {
	if input.Name == "" {
		return nil, goerr.New("task name is required")
	}

	if _, err := uc.repo.Group().Get(ctx, input.GroupID); err != nil {
		return nil, goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, input.GroupID))
	}
	if _, err := uc.repo.User().Get(ctx, input.CreatedBy); err != nil {
		return nil, goerr.Wrap(ErrUserNotFound, "creator not found", goerr.V(UserIDKey, input.CreatedBy))
	}

	assignedTo := input.AssignedTo
	if assignedTo != nil {
		if _, err := uc.repo.User().Get(ctx, *assignedTo); err != nil {
			logging.From(ctx).Warn("ignoring unresolvable assignee at task creation",
				"assigneeID", *assignedTo,
				"error", err,
			)
			assignedTo = nil
		}
	}

	task := &model.Task{
		GroupID:     input.GroupID,
		Name:        input.Name,
		Description: input.Description,
		Status:      types.TaskStatus(input.Status).Normalize(),
		Priority:    types.TaskPriority(input.Priority).Normalize(),
		DueDate:     input.DueDate,
		Timeline:    input.Timeline,
		Notes:       input.Notes,
		AssignedTo:  assignedTo,
		CreatedBy:   input.CreatedBy,
	}

	created, err := uc.repo.Task().Create(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}

	return uc.toView(ctx, created), nil
}

// UpdateTask applies a partial patch. Invalid enumerated values in the patch
// are ignored with a diagnostic notice, retaining the stored value.
func (uc *TaskUseCase) UpdateTask(ctx context.Context, id types.TaskID, patch UpdateTaskInput) (*model.TaskView, error) {
	task, err := uc.repo.Task().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
	}

	if patch.Name != nil {
		task.Name = *patch.Name
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		status := types.TaskStatus(*patch.Status)
		if status.IsValid() {
			task.Status = status
		} else {
			logging.From(ctx).Warn("ignoring invalid status in task patch",
				"taskID", id,
				"status", *patch.Status,
			)
		}
	}
	if patch.Priority != nil {
		priority := types.TaskPriority(*patch.Priority)
		if priority.IsValid() {
			task.Priority = priority
		} else {
			logging.From(ctx).Warn("ignoring invalid priority in task patch",
				"taskID", id,
				"priority", *patch.Priority,
			)
		}
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Timeline != nil {
		task.Timeline = *patch.Timeline
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.AssigneeSet {
		if patch.Assignee != nil {
			if _, err := uc.repo.User().Get(ctx, *patch.Assignee); err != nil {
				return nil, goerr.Wrap(ErrUserNotFound, "assignee not found", goerr.V(UserIDKey, *patch.Assignee))
			}
		}
		task.AssignedTo = patch.Assignee
	}

	updated, err := uc.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V(TaskIDKey, id))
	}

	return uc.toView(ctx, updated), nil
}

// AssignTask unconditionally overwrites the task's assignee. Both the task
// and the user must resolve.
func (uc *TaskUseCase) AssignTask(ctx context.Context, taskID types.TaskID, userID types.UserID) (*model.TaskView, error) {
	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, taskID))
	}
	if _, err := uc.repo.User().Get(ctx, userID); err != nil {
		return nil, goerr.Wrap(ErrUserNotFound, "assignee not found", goerr.V(UserIDKey, userID))
	}

	task.AssignedTo = &userID

	updated, err := uc.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to assign task", goerr.V(TaskIDKey, taskID))
	}

	return uc.toView(ctx, updated), nil
}

// DeleteTask deletes a task by ID. Deleting an absent task is a no-op.
func (uc *TaskUseCase) DeleteTask(ctx context.Context, id types.TaskID) error {
	if err := uc.repo.Task().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V(TaskIDKey, id))
	}
	return nil
}

// GetTask returns the denormalized projection of one task
func (uc *TaskUseCase) GetTask(ctx context.Context, id types.TaskID) (*model.TaskView, error) {
	task, err := uc.repo.Task().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
	}
	return uc.toView(ctx, task), nil
}

// ListTasks returns all tasks as denormalized projections
func (uc *TaskUseCase) ListTasks(ctx context.Context) ([]*model.TaskView, error) {
	tasks, err := uc.repo.Task().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	return uc.toViews(ctx, tasks), nil
}

// ListTasksByGroup returns the tasks of one group
func (uc *TaskUseCase) ListTasksByGroup(ctx context.Context, groupID types.GroupID) ([]*model.TaskView, error) {
	tasks, err := uc.repo.Task().ListByGroup(ctx, groupID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks", goerr.V(GroupIDKey, groupID))
	}
	return uc.toViews(ctx, tasks), nil
}

// ListTasksByBoard returns the tasks of every group on a board
func (uc *TaskUseCase) ListTasksByBoard(ctx context.Context, boardID types.BoardID) ([]*model.TaskView, error) {
	if _, err := uc.repo.Board().Get(ctx, boardID); err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	groups, err := uc.repo.Group().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list groups", goerr.V(BoardIDKey, boardID))
	}

	groupIDs := make([]types.GroupID, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}

	tasks, err := uc.repo.Task().ListByGroups(ctx, groupIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks", goerr.V(BoardIDKey, boardID))
	}
	return uc.toViews(ctx, tasks), nil
}

// toView denormalizes a task, resolving creator and assignee display names.
// Name resolution is best-effort: a missing user leaves the name empty.
func (uc *TaskUseCase) toView(ctx context.Context, t *model.Task) *model.TaskView {
	names := newNameCache(uc.repo)

	view := &model.TaskView{
		ID:          t.ID,
		GroupID:     t.GroupID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Timeline:    t.Timeline,
		Notes:       t.Notes,
		CreatedByID: t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	view.CreatedByName = names.displayName(ctx, t.CreatedBy)
	if t.AssignedTo != nil {
		id := *t.AssignedTo
		view.AssignedToID = &id
		view.AssignedToName = names.displayName(ctx, id)
	}
	return view
}

func (uc *TaskUseCase) toViews(ctx context.Context, tasks []*model.Task) []*model.TaskView {
	names := newNameCache(uc.repo)

	views := make([]*model.TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := &model.TaskView{
			ID:          t.ID,
			GroupID:     t.GroupID,
			Name:        t.Name,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			Timeline:    t.Timeline,
			Notes:       t.Notes,
			CreatedByID: t.CreatedBy,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		view.CreatedByName = names.displayName(ctx, t.CreatedBy)
		if t.AssignedTo != nil {
			id := *t.AssignedTo
			view.AssignedToID = &id
			view.AssignedToName = names.displayName(ctx, id)
		}
		views = append(views, view)
	}
	return views
}

// nameCache resolves user display names once per projection pass
type nameCache struct {
	repo  interfaces.Repository
	names map[types.UserID]string
}

func newNameCache(repo interfaces.Repository) *nameCache {
	return &nameCache{
		repo:  repo,
		names: make(map[types.UserID]string),
	}
}

func (c *nameCache) displayName(ctx context.Context, id types.UserID) string {
	if name, ok := c.names[id]; ok {
		return name
	}

	var name string
	user, err := c.repo.User().Get(ctx, id)
	if err == nil {
		name = user.DisplayName()
	} else if !errors.Is(err, context.Canceled) {
		logging.From(ctx).Debug("failed to resolve user name for task view",
			"userID", id,
			"error", err,
		)
	}

	c.names[id] = name
	return name
}
