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

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *userRepository) collection() string {
	return prefixed(r.collectionPrefix, "users")
}

func (r *userRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	// Email uniqueness check
	iter := r.client.Collection(r.collection()).Where("email", "==", u.Email).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != iterator.Done {
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check email uniqueness", goerr.V("email", u.Email))
		}
		return nil, goerr.New("email already in use", goerr.V("email", u.Email))
	}

	id, err := nextID(ctx, r.client, r.counterCollection(), "user_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *u
	created.ID = types.UserID(id)
	created.Role = u.Role.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var u model.User
	if err := docSnap.DataTo(&u); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", id))
	}

	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.client.Collection(r.collection()).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email", goerr.V("email", email))
	}

	var u model.User
	if err := docSnap.DataTo(&u); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("email", email))
	}

	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var u model.User
		if err := docSnap.DataTo(&u); err != nil {
			return nil, goerr.Wrap(err, "failed to decode user", goerr.V("doc_id", docSnap.Ref.ID))
		}
		users = append(users, &u)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	docRef := r.client.Collection(r.collection()).Doc(u.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", u.ID))
		}
		return nil, goerr.Wrap(err, "failed to check user existence", goerr.V("id", u.ID))
	}

	var existing model.User
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", u.ID))
	}

	updated := *u
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("id", u.ID))
	}

	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id types.UserID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check user existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("id", id))
	}

	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection(r.collection()).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count users")
	}
	return int64(len(docs)), nil
}
