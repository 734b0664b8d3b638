package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type GroupUseCase struct {
	repo interfaces.Repository
}

func NewGroupUseCase(repo interfaces.Repository) *GroupUseCase {
	return &GroupUseCase{repo: repo}
}

func (uc *GroupUseCase) CreateGroup(ctx context.Context, boardID types.BoardID, name, color string, sortOrder int) (*model.Group, error) {
	if name == "" {
		return nil, goerr.New("group name is required")
	}
	if _, err := uc.repo.Board().Get(ctx, boardID); err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	created, err := uc.repo.Group().Create(ctx, &model.Group{
		BoardID:   boardID,
		Name:      name,
		Color:     color,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create group")
	}

	return created, nil
}

func (uc *GroupUseCase) GetGroup(ctx context.Context, id types.GroupID) (*model.Group, error) {
	group, err := uc.repo.Group().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, id))
	}
	return group, nil
}

// ListGroupsByBoard returns the board's groups in display order
func (uc *GroupUseCase) ListGroupsByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Group, error) {
	if _, err := uc.repo.Board().Get(ctx, boardID); err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	groups, err := uc.repo.Group().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list groups", goerr.V(BoardIDKey, boardID))
	}
	return groups, nil
}

func (uc *GroupUseCase) UpdateGroup(ctx context.Context, id types.GroupID, name, color string, sortOrder int, isArchived bool) (*model.Group, error) {
	group, err := uc.repo.Group().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, id))
	}

	if name != "" {
		group.Name = name
	}
	if color != "" {
		group.Color = color
	}
	group.SortOrder = sortOrder
	group.IsArchived = isArchived

	updated, err := uc.repo.Group().Update(ctx, group)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update group", goerr.V(GroupIDKey, id))
	}

	return updated, nil
}

// DeleteGroup removes a group. Blocked while it still owns tasks.
func (uc *GroupUseCase) DeleteGroup(ctx context.Context, id types.GroupID) error {
	if _, err := uc.repo.Group().Get(ctx, id); err != nil {
		return goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, id))
	}

	count, err := uc.repo.Task().CountByGroup(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to check group tasks", goerr.V(GroupIDKey, id))
	}
	if count > 0 {
		return goerr.Wrap(ErrDependentChildren, "group still owns tasks",
			goerr.V(GroupIDKey, id),
			goerr.V("tasks", count))
	}

	if err := uc.repo.Group().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete group", goerr.V(GroupIDKey, id))
	}

	return nil
}
