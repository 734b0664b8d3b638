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

type boardRepository struct {
	mu     sync.RWMutex
	boards map[types.BoardID]*model.Board
	nextID int64
}

func newBoardRepository() *boardRepository {
	return &boardRepository{
		boards: make(map[types.BoardID]*model.Board),
	}
}

func copyBoard(b *model.Board) *model.Board {
	copied := *b
	return &copied
}

func (r *boardRepository) Create(ctx context.Context, b *model.Board) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	created := copyBoard(b)
	created.ID = types.BoardID(r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.boards[created.ID] = created
	return copyBoard(created), nil
}

func (r *boardRepository) Get(ctx context.Context, id types.BoardID) (*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.boards[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
	}
	return copyBoard(b), nil
}

func (r *boardRepository) List(ctx context.Context) ([]*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Board, 0, len(r.boards))
	for _, b := range r.boards {
		result = append(result, copyBoard(b))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *boardRepository) ListByWorkspace(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Board
	for _, b := range r.boards {
		if b.WorkspaceID == workspaceID {
			result = append(result, copyBoard(b))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *boardRepository) Update(ctx context.Context, b *model.Board) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.boards[b.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", b.ID))
	}

	updated := copyBoard(b)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.boards[updated.ID] = updated
	return copyBoard(updated), nil
}

func (r *boardRepository) Delete(ctx context.Context, id types.BoardID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.boards[id]; !exists {
		return goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
	}

	delete(r.boards, id)
	return nil
}
