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

type workspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[types.WorkspaceID]*model.Workspace
	nextID     int64
}

func newWorkspaceRepository() *workspaceRepository {
	return &workspaceRepository{
		workspaces: make(map[types.WorkspaceID]*model.Workspace),
	}
}

func copyWorkspace(w *model.Workspace) *model.Workspace {
	copied := *w
	return &copied
}

func (r *workspaceRepository) Create(ctx context.Context, w *model.Workspace) (*model.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	created := copyWorkspace(w)
	created.ID = types.WorkspaceID(r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.workspaces[created.ID] = created
	return copyWorkspace(created), nil
}

func (r *workspaceRepository) Get(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, exists := r.workspaces[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("id", id))
	}
	return copyWorkspace(w), nil
}

func (r *workspaceRepository) List(ctx context.Context) ([]*model.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Workspace, 0, len(r.workspaces))
	for _, w := range r.workspaces {
		result = append(result, copyWorkspace(w))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *workspaceRepository) Update(ctx context.Context, w *model.Workspace) (*model.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.workspaces[w.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("id", w.ID))
	}

	updated := copyWorkspace(w)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.workspaces[updated.ID] = updated
	return copyWorkspace(updated), nil
}

func (r *workspaceRepository) Delete(ctx context.Context, id types.WorkspaceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workspaces[id]; !exists {
		return goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("id", id))
	}

	delete(r.workspaces, id)
	return nil
}
