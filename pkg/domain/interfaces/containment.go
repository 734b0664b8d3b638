package interfaces

import (
	"context"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

// WorkspaceRepository defines the interface for Workspace data access
type WorkspaceRepository interface {
	Create(ctx context.Context, w *model.Workspace) (*model.Workspace, error)
	Get(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error)
	List(ctx context.Context) ([]*model.Workspace, error)
	Update(ctx context.Context, w *model.Workspace) (*model.Workspace, error)
	Delete(ctx context.Context, id types.WorkspaceID) error
}

// BoardRepository defines the interface for Board data access
type BoardRepository interface {
	Create(ctx context.Context, b *model.Board) (*model.Board, error)
	Get(ctx context.Context, id types.BoardID) (*model.Board, error)
	List(ctx context.Context) ([]*model.Board, error)

	// ListByWorkspace retrieves boards belonging to a workspace
	ListByWorkspace(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Board, error)

	Update(ctx context.Context, b *model.Board) (*model.Board, error)
	Delete(ctx context.Context, id types.BoardID) error
}

// GroupRepository defines the interface for Group data access
type GroupRepository interface {
	Create(ctx context.Context, g *model.Group) (*model.Group, error)
	Get(ctx context.Context, id types.GroupID) (*model.Group, error)

	// ListByBoard retrieves groups of a board ordered by SortOrder ascending
	ListByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Group, error)

	Update(ctx context.Context, g *model.Group) (*model.Group, error)
	Delete(ctx context.Context, id types.GroupID) error
}
