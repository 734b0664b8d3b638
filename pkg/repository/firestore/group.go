package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type groupRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *groupRepository) collection() string {
	return prefixed(r.collectionPrefix, "groups")
}

func (r *groupRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *groupRepository) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "group_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *g
	created.ID = types.GroupID(id)
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create group", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *groupRepository) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V("id", id))
	}

	var g model.Group
	if err := docSnap.DataTo(&g); err != nil {
		return nil, goerr.Wrap(err, "failed to decode group", goerr.V("id", id))
	}

	return &g, nil
}

func (r *groupRepository) ListByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Group, error) {
	iter := r.client.Collection(r.collection()).
		Where("boardId", "==", int64(boardID)).
		OrderBy("sortOrder", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var groups []*model.Group
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate groups", goerr.V("boardID", boardID))
		}

		var g model.Group
		if err := docSnap.DataTo(&g); err != nil {
			return nil, goerr.Wrap(err, "failed to decode group", goerr.V("doc_id", docSnap.Ref.ID))
		}
		groups = append(groups, &g)
	}

	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, g *model.Group) (*model.Group, error) {
	docRef := r.client.Collection(r.collection()).Doc(g.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", g.ID))
		}
		return nil, goerr.Wrap(err, "failed to check group existence", goerr.V("id", g.ID))
	}

	var existing model.Group
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode group", goerr.V("id", g.ID))
	}

	updated := *g
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update group", goerr.V("id", g.ID))
	}

	return &updated, nil
}

func (r *groupRepository) Delete(ctx context.Context, id types.GroupID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check group existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete group", goerr.V("id", id))
	}

	return nil
}
