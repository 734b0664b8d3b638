package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type WorkspaceUseCase struct {
	repo interfaces.Repository
}

func NewWorkspaceUseCase(repo interfaces.Repository) *WorkspaceUseCase {
	return &WorkspaceUseCase{repo: repo}
}

func (uc *WorkspaceUseCase) CreateWorkspace(ctx context.Context, name, description string, ownerID types.UserID) (*model.Workspace, error) {
	if name == "" {
		return nil, goerr.New("workspace name is required")
	}
	if _, err := uc.repo.User().Get(ctx, ownerID); err != nil {
		return nil, goerr.Wrap(ErrUserNotFound, "owner not found", goerr.V(UserIDKey, ownerID))
	}

	created, err := uc.repo.Workspace().Create(ctx, &model.Workspace{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create workspace")
	}

	return created, nil
}

func (uc *WorkspaceUseCase) GetWorkspace(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error) {
	workspace, err := uc.repo.Workspace().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found", goerr.V(WorkspaceIDKey, id))
	}
	return workspace, nil
}

func (uc *WorkspaceUseCase) ListWorkspaces(ctx context.Context) ([]*model.Workspace, error) {
	workspaces, err := uc.repo.Workspace().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workspaces")
	}
	return workspaces, nil
}

func (uc *WorkspaceUseCase) UpdateWorkspace(ctx context.Context, id types.WorkspaceID, name, description string, isArchived bool) (*model.Workspace, error) {
	workspace, err := uc.repo.Workspace().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found", goerr.V(WorkspaceIDKey, id))
	}

	if name != "" {
		workspace.Name = name
	}
	workspace.Description = description
	workspace.IsArchived = isArchived

	updated, err := uc.repo.Workspace().Update(ctx, workspace)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update workspace", goerr.V(WorkspaceIDKey, id))
	}

	return updated, nil
}

// DeleteWorkspace removes a workspace. Blocked while it still owns boards.
func (uc *WorkspaceUseCase) DeleteWorkspace(ctx context.Context, id types.WorkspaceID) error {
	if _, err := uc.repo.Workspace().Get(ctx, id); err != nil {
		return goerr.Wrap(ErrWorkspaceNotFound, "workspace not found", goerr.V(WorkspaceIDKey, id))
	}

	boards, err := uc.repo.Board().ListByWorkspace(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to check workspace boards", goerr.V(WorkspaceIDKey, id))
	}
	if len(boards) > 0 {
		return goerr.Wrap(ErrDependentChildren, "workspace still owns boards",
			goerr.V(WorkspaceIDKey, id),
			goerr.V("boards", len(boards)))
	}

	if err := uc.repo.Workspace().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete workspace", goerr.V(WorkspaceIDKey, id))
	}

	return nil
}
