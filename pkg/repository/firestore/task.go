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

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *taskRepository) collection() string {
	return prefixed(r.collectionPrefix, "tasks")
}

func (r *taskRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *taskRepository) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "task_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *t
	created.ID = types.TaskID(id)
	created.Status = t.Status.Normalize()
	created.Priority = t.Priority.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var t model.Task
	if err := docSnap.DataTo(&t); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}

	return &t, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	return r.query(ctx, r.client.Collection(r.collection()).OrderBy("id", firestore.Asc))
}

func (r *taskRepository) ListByGroup(ctx context.Context, groupID types.GroupID) ([]*model.Task, error) {
	return r.query(ctx, r.client.Collection(r.collection()).
		Where("groupId", "==", int64(groupID)).
		OrderBy("id", firestore.Asc))
}

func (r *taskRepository) ListByGroups(ctx context.Context, groupIDs []types.GroupID) ([]*model.Task, error) {
	if len(groupIDs) == 0 {
		return []*model.Task{}, nil
	}

	// Firestore "in" queries accept at most 30 values per filter
	const chunkSize = 30

	var tasks []*model.Task
	for start := 0; start < len(groupIDs); start += chunkSize {
		end := start + chunkSize
		if end > len(groupIDs) {
			end = len(groupIDs)
		}

		ids := make([]int64, 0, end-start)
		for _, id := range groupIDs[start:end] {
			ids = append(ids, int64(id))
		}

		chunk, err := r.query(ctx, r.client.Collection(r.collection()).Where("groupId", "in", ids))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, chunk...)
	}

	return tasks, nil
}

func (r *taskRepository) query(ctx context.Context, q firestore.Query) ([]*model.Task, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var tasks []*model.Task
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var t model.Task
		if err := docSnap.DataTo(&t); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task", goerr.V("doc_id", docSnap.Ref.ID))
		}
		tasks = append(tasks, &t)
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	docRef := r.client.Collection(r.collection()).Doc(t.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", t.ID))
		}
		return nil, goerr.Wrap(err, "failed to check task existence", goerr.V("id", t.ID))
	}

	var existing model.Task
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", t.ID))
	}

	// Parent and creator references are fixed at creation
	updated := *t
	updated.GroupID = existing.GroupID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", t.ID))
	}

	return &updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	// Unconditional delete: removing an absent task is a no-op
	if _, err := r.client.Collection(r.collection()).Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}
	return nil
}

func (r *taskRepository) CountByGroup(ctx context.Context, groupID types.GroupID) (int64, error) {
	docs, err := r.client.Collection(r.collection()).
		Where("groupId", "==", int64(groupID)).
		Select().
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count tasks", goerr.V("groupID", groupID))
	}
	return int64(len(docs)), nil
}
