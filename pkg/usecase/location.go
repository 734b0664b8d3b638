package usecase

import (
	"context"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/utils/logging"
)

// resolveTaskLocation walks task -> group -> board -> workspace to build the
// human-readable context for notification messages. Resolution is best-effort:
// each hop that fails keeps its Unknown* sentinel and the walk stops, but no
// error is ever returned. The sentinel tuple must never block the task
// operation that triggered the lookup.
func resolveTaskLocation(ctx context.Context, repo interfaces.Repository, taskID types.TaskID) model.TaskLocation {
	loc := model.UnknownTaskLocation()
	logger := logging.From(ctx)

	task, err := repo.Task().Get(ctx, taskID)
	if err != nil {
		logger.Warn("location resolution failed at task", "taskID", taskID, "error", err)
		return loc
	}
	loc.TaskName = task.Name
	loc.DueDate = task.DueDate

	group, err := repo.Group().Get(ctx, task.GroupID)
	if err != nil {
		logger.Warn("location resolution failed at group", "taskID", taskID, "groupID", task.GroupID, "error", err)
		return loc
	}
	loc.GroupName = group.Name

	board, err := repo.Board().Get(ctx, group.BoardID)
	if err != nil {
		logger.Warn("location resolution failed at board", "taskID", taskID, "boardID", group.BoardID, "error", err)
		return loc
	}
	loc.BoardName = board.Name

	workspace, err := repo.Workspace().Get(ctx, board.WorkspaceID)
	if err != nil {
		logger.Warn("location resolution failed at workspace", "taskID", taskID, "workspaceID", board.WorkspaceID, "error", err)
		return loc
	}
	loc.WorkspaceName = workspace.Name

	return loc
}
