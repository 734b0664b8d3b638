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

type groupRepository struct {
	mu     sync.RWMutex
	groups map[types.GroupID]*model.Group
	nextID int64
}

func newGroupRepository() *groupRepository {
	return &groupRepository{
		groups: make(map[types.GroupID]*model.Group),
	}
}

func copyGroup(g *model.Group) *model.Group {
	copied := *g
	return &copied
}

func (r *groupRepository) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	created := copyGroup(g)
	created.ID = types.GroupID(r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.groups[created.ID] = created
	return copyGroup(created), nil
}

func (r *groupRepository) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, exists := r.groups[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
	}
	return copyGroup(g), nil
}

func (r *groupRepository) ListByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Group
	for _, g := range r.groups {
		if g.BoardID == boardID {
			result = append(result, copyGroup(g))
		}
	}

	// Display order: SortOrder ascending, ID as tiebreaker
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *groupRepository) Update(ctx context.Context, g *model.Group) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.groups[g.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", g.ID))
	}

	updated := copyGroup(g)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.groups[updated.ID] = updated
	return copyGroup(updated), nil
}

func (r *groupRepository) Delete(ctx context.Context, id types.GroupID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[id]; !exists {
		return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
	}

	delete(r.groups, id)
	return nil
}
