package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/repository/memory"
	"github.com/worklane/worklane/pkg/usecase"
)

func TestContainmentDeleteGuards(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	owner := seedUser(t, repo, "owner@example.com", types.RoleOwner)

	workspace, err := uc.Workspace.CreateWorkspace(ctx, "Acme", "", owner)
	gt.NoError(t, err).Required()
	board, err := uc.Board.CreateBoard(ctx, workspace.ID, "Launch", "")
	gt.NoError(t, err).Required()
	group, err := uc.Group.CreateGroup(ctx, board.ID, "Sprint 1", "#ff0000", 1)
	gt.NoError(t, err).Required()
	task, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
		GroupID:   group.ID,
		Name:      "Prepare deck",
		CreatedBy: owner,
	})
	gt.NoError(t, err).Required()

	t.Run("populated containers refuse deletion", func(t *testing.T) {
		err := uc.Workspace.DeleteWorkspace(ctx, workspace.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrDependentChildren)).True()

		err = uc.Board.DeleteBoard(ctx, board.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrDependentChildren)).True()

		err = uc.Group.DeleteGroup(ctx, group.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrDependentChildren)).True()
	})

	t.Run("deletion succeeds leaf-first", func(t *testing.T) {
		gt.NoError(t, uc.Task.DeleteTask(ctx, task.ID))
		gt.NoError(t, uc.Group.DeleteGroup(ctx, group.ID))
		gt.NoError(t, uc.Board.DeleteBoard(ctx, board.ID))
		gt.NoError(t, uc.Workspace.DeleteWorkspace(ctx, workspace.ID))
	})
}

func TestContainmentParentsMustExist(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	t.Run("board requires its workspace", func(t *testing.T) {
		_, err := uc.Board.CreateBoard(ctx, types.WorkspaceID(9999), "Launch", "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrWorkspaceNotFound)).True()
	})

	t.Run("group requires its board", func(t *testing.T) {
		_, err := uc.Group.CreateGroup(ctx, types.BoardID(9999), "Sprint 1", "", 1)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrBoardNotFound)).True()
	})

	t.Run("workspace requires its owner", func(t *testing.T) {
		_, err := uc.Workspace.CreateWorkspace(ctx, "Ghost", "", types.UserID(9999))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})
}
