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

type workspaceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *workspaceRepository) collection() string {
	return prefixed(r.collectionPrefix, "workspaces")
}

func (r *workspaceRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *workspaceRepository) Create(ctx context.Context, w *model.Workspace) (*model.Workspace, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "workspace_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *w
	created.ID = types.WorkspaceID(id)
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create workspace", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *workspaceRepository) Get(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get workspace", goerr.V("id", id))
	}

	var w model.Workspace
	if err := docSnap.DataTo(&w); err != nil {
		return nil, goerr.Wrap(err, "failed to decode workspace", goerr.V("id", id))
	}

	return &w, nil
}

func (r *workspaceRepository) List(ctx context.Context) ([]*model.Workspace, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var workspaces []*model.Workspace
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate workspaces")
		}

		var w model.Workspace
		if err := docSnap.DataTo(&w); err != nil {
			return nil, goerr.Wrap(err, "failed to decode workspace", goerr.V("doc_id", docSnap.Ref.ID))
		}
		workspaces = append(workspaces, &w)
	}

	return workspaces, nil
}

func (r *workspaceRepository) Update(ctx context.Context, w *model.Workspace) (*model.Workspace, error) {
	docRef := r.client.Collection(r.collection()).Doc(w.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("id", w.ID))
		}
		return nil, goerr.Wrap(err, "failed to check workspace existence", goerr.V("id", w.ID))
	}

	var existing model.Workspace
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode workspace", goerr.V("id", w.ID))
	}

	updated := *w
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update workspace", goerr.V("id", w.ID))
	}

	return &updated, nil
}

func (r *workspaceRepository) Delete(ctx context.Context, id types.WorkspaceID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check workspace existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete workspace", goerr.V("id", id))
	}

	return nil
}
