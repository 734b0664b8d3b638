package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type BoardUseCase struct {
	repo interfaces.Repository
}

func NewBoardUseCase(repo interfaces.Repository) *BoardUseCase {
	return &BoardUseCase{repo: repo}
}

func (uc *BoardUseCase) CreateBoard(ctx context.Context, workspaceID types.WorkspaceID, name, description string) (*model.Board, error) {
	if name == "" {
		return nil, goerr.New("board name is required")
	}
	if _, err := uc.repo.Workspace().Get(ctx, workspaceID); err != nil {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found", goerr.V(WorkspaceIDKey, workspaceID))
	}

	created, err := uc.repo.Board().Create(ctx, &model.Board{
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create board")
	}

	return created, nil
}

func (uc *BoardUseCase) GetBoard(ctx context.Context, id types.BoardID) (*model.Board, error) {
	board, err := uc.repo.Board().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, id))
	}
	return board, nil
}

func (uc *BoardUseCase) ListBoards(ctx context.Context) ([]*model.Board, error) {
	boards, err := uc.repo.Board().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list boards")
	}
	return boards, nil
}

func (uc *BoardUseCase) ListBoardsByWorkspace(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Board, error) {
	if _, err := uc.repo.Workspace().Get(ctx, workspaceID); err != nil {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found", goerr.V(WorkspaceIDKey, workspaceID))
	}

	boards, err := uc.repo.Board().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list boards", goerr.V(WorkspaceIDKey, workspaceID))
	}
	return boards, nil
}

func (uc *BoardUseCase) UpdateBoard(ctx context.Context, id types.BoardID, name, description string, isArchived bool) (*model.Board, error) {
	board, err := uc.repo.Board().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, id))
	}

	if name != "" {
		board.Name = name
	}
	board.Description = description
	board.IsArchived = isArchived

	updated, err := uc.repo.Board().Update(ctx, board)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update board", goerr.V(BoardIDKey, id))
	}

	return updated, nil
}

// DeleteBoard removes a board. Blocked while it still owns groups.
func (uc *BoardUseCase) DeleteBoard(ctx context.Context, id types.BoardID) error {
	if _, err := uc.repo.Board().Get(ctx, id); err != nil {
		return goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, id))
	}

	groups, err := uc.repo.Group().ListByBoard(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to check board groups", goerr.V(BoardIDKey, id))
	}
	if len(groups) > 0 {
		return goerr.Wrap(ErrDependentChildren, "board still owns groups",
			goerr.V(BoardIDKey, id),
			goerr.V("groups", len(groups)))
	}

	if err := uc.repo.Board().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete board", goerr.V(BoardIDKey, id))
	}

	return nil
}
