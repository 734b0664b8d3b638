package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/repository/memory"
	"github.com/worklane/worklane/pkg/usecase"
)

func seedGroup(t *testing.T, repo *memory.Memory, boardID types.BoardID) types.GroupID {
	t.Helper()
	group, err := repo.Group().Create(context.Background(), &model.Group{
		BoardID: boardID,
		Name:    "Backlog",
	})
	gt.NoError(t, err).Required()
	return group.ID
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	creator := seedUser(t, repo, "creator@example.com", types.RoleManager)
	groupID := seedGroup(t, repo, 1)

	t.Run("out-of-set enums are coerced, not rejected", func(t *testing.T) {
		view, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:   groupID,
			Name:      "Ship release notes",
			Status:    "BOGUS",
			Priority:  "ASAP",
			CreatedBy: creator,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, view.Status).Equal(types.TaskStatusTodo)
		gt.Value(t, view.Priority).Equal(types.TaskPriorityNormal)
	})

	t.Run("unresolvable assignee is dropped silently", func(t *testing.T) {
		ghost := types.UserID(9999)
		view, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:    groupID,
			Name:       "Orphan assignment",
			CreatedBy:  creator,
			AssignedTo: &ghost,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, view.AssignedToID).Nil()
	})

	t.Run("missing group fails", func(t *testing.T) {
		_, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:   types.GroupID(9999),
			Name:      "Nowhere",
			CreatedBy: creator,
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrGroupNotFound)).True()
	})

	t.Run("missing creator fails", func(t *testing.T) {
		_, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:   groupID,
			Name:      "Nobody's task",
			CreatedBy: types.UserID(9999),
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})

	t.Run("empty name fails", func(t *testing.T) {
		_, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:   groupID,
			CreatedBy: creator,
		})
		gt.Error(t, err)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	creator := seedUser(t, repo, "creator@example.com", types.RoleManager)
	assignee := seedUser(t, repo, "assignee@example.com", types.RoleMember)
	groupID := seedGroup(t, repo, 1)

	newTask := func(t *testing.T) *model.TaskView {
		t.Helper()
		view, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:    groupID,
			Name:       "Initial",
			Status:     string(types.TaskStatusWorkingOn),
			CreatedBy:  creator,
			AssignedTo: &assignee,
		})
		gt.NoError(t, err).Required()
		return view
	}

	t.Run("omitted assignee leaves assignment unchanged", func(t *testing.T) {
		task := newTask(t)
		name := "Renamed"

		updated, err := uc.Task.UpdateTask(ctx, task.ID, usecase.UpdateTaskInput{Name: &name})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("Renamed")
		gt.Value(t, updated.AssignedToID).NotNil()
		gt.Value(t, *updated.AssignedToID).Equal(assignee)
	})

	t.Run("explicit clear removes the assignment", func(t *testing.T) {
		task := newTask(t)

		updated, err := uc.Task.UpdateTask(ctx, task.ID, usecase.UpdateTaskInput{AssigneeSet: true})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.AssignedToID).Nil()
	})

	t.Run("invalid enums in the patch are ignored, stored values retained", func(t *testing.T) {
		task := newTask(t)
		status := "NOT_A_STATUS"
		priority := "SOMEDAY"

		updated, err := uc.Task.UpdateTask(ctx, task.ID, usecase.UpdateTaskInput{
			Status:   &status,
			Priority: &priority,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.TaskStatusWorkingOn)
		gt.Value(t, updated.Priority).Equal(types.TaskPriorityNormal)
	})

	t.Run("unresolvable new assignee fails the patch", func(t *testing.T) {
		task := newTask(t)
		ghost := types.UserID(9999)

		_, err := uc.Task.UpdateTask(ctx, task.ID, usecase.UpdateTaskInput{
			Assignee:    &ghost,
			AssigneeSet: true,
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})

	t.Run("missing task fails", func(t *testing.T) {
		_, err := uc.Task.UpdateTask(ctx, types.TaskID(9999), usecase.UpdateTaskInput{})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})
}

func TestAssignTask(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	creator := seedUser(t, repo, "creator@example.com", types.RoleManager)
	first := seedUser(t, repo, "first@example.com", types.RoleMember)
	second := seedUser(t, repo, "second@example.com", types.RoleMember)
	groupID := seedGroup(t, repo, 1)

	task, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
		GroupID:    groupID,
		Name:       "Handover",
		CreatedBy:  creator,
		AssignedTo: &first,
	})
	gt.NoError(t, err).Required()

	t.Run("assignment overwrites unconditionally", func(t *testing.T) {
		updated, err := uc.Task.AssignTask(ctx, task.ID, second)
		gt.NoError(t, err).Required()
		gt.Value(t, *updated.AssignedToID).Equal(second)
	})

	t.Run("unresolvable user fails", func(t *testing.T) {
		_, err := uc.Task.AssignTask(ctx, task.ID, types.UserID(9999))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})

	t.Run("missing task fails", func(t *testing.T) {
		_, err := uc.Task.AssignTask(ctx, types.TaskID(9999), second)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})
}

func TestTaskViewNames(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	creator, err := repo.User().Create(ctx, &model.User{
		Email: "dana@example.com", FirstName: "Dana", LastName: "Cole", Role: types.RoleManager, IsActive: true,
	})
	gt.NoError(t, err).Required()
	assignee, err := repo.User().Create(ctx, &model.User{
		Email: "eli@example.com", FirstName: "Eli", LastName: "Marsh", Role: types.RoleMember, IsActive: true,
	})
	gt.NoError(t, err).Required()
	groupID := seedGroup(t, repo, 1)

	view, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
		GroupID:    groupID,
		Name:       "Write onboarding doc",
		CreatedBy:  creator.ID,
		AssignedTo: &assignee.ID,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, view.CreatedByName).Equal("Dana Cole")
	gt.Value(t, view.AssignedToName).Equal("Eli Marsh")
}

func TestListTasksByBoard(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	creator := seedUser(t, repo, "creator@example.com", types.RoleManager)

	boardID := types.BoardID(1)
	groupA := seedGroup(t, repo, boardID)
	groupB := seedGroup(t, repo, boardID)
	otherBoardGroup := seedGroup(t, repo, types.BoardID(2))

	board, err := repo.Board().Create(ctx, &model.Board{WorkspaceID: 1, Name: "Board"})
	gt.NoError(t, err).Required()
	gt.Value(t, board.ID).Equal(boardID)

	for _, groupID := range []types.GroupID{groupA, groupB, otherBoardGroup} {
		_, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:   groupID,
			Name:      "task",
			CreatedBy: creator,
		})
		gt.NoError(t, err).Required()
	}

	tasks, err := uc.Task.ListTasksByBoard(ctx, boardID)
	gt.NoError(t, err).Required()
	gt.Array(t, tasks).Length(2)

	_, err = uc.Task.ListTasksByBoard(ctx, types.BoardID(9999))
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrBoardNotFound)).True()
}
