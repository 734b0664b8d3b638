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

type boardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *boardRepository) collection() string {
	return prefixed(r.collectionPrefix, "boards")
}

func (r *boardRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *boardRepository) Create(ctx context.Context, b *model.Board) (*model.Board, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "board_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *b
	created.ID = types.BoardID(id)
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create board", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *boardRepository) Get(ctx context.Context, id types.BoardID) (*model.Board, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get board", goerr.V("id", id))
	}

	var b model.Board
	if err := docSnap.DataTo(&b); err != nil {
		return nil, goerr.Wrap(err, "failed to decode board", goerr.V("id", id))
	}

	return &b, nil
}

func (r *boardRepository) List(ctx context.Context) ([]*model.Board, error) {
	return r.query(ctx, r.client.Collection(r.collection()).OrderBy("id", firestore.Asc))
}

func (r *boardRepository) ListByWorkspace(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Board, error) {
	return r.query(ctx, r.client.Collection(r.collection()).
		Where("workspaceId", "==", int64(workspaceID)).
		OrderBy("id", firestore.Asc))
}

func (r *boardRepository) query(ctx context.Context, q firestore.Query) ([]*model.Board, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var boards []*model.Board
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate boards")
		}

		var b model.Board
		if err := docSnap.DataTo(&b); err != nil {
			return nil, goerr.Wrap(err, "failed to decode board", goerr.V("doc_id", docSnap.Ref.ID))
		}
		boards = append(boards, &b)
	}

	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, b *model.Board) (*model.Board, error) {
	docRef := r.client.Collection(r.collection()).Doc(b.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", b.ID))
		}
		return nil, goerr.Wrap(err, "failed to check board existence", goerr.V("id", b.ID))
	}

	var existing model.Board
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode board", goerr.V("id", b.ID))
	}

	updated := *b
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update board", goerr.V("id", b.ID))
	}

	return &updated, nil
}

func (r *boardRepository) Delete(ctx context.Context, id types.BoardID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check board existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete board", goerr.V("id", id))
	}

	return nil
}
