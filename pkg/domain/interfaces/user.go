package interfaces

import (
	"context"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Create creates a new user with auto-generated ID
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns ErrNotFound-wrapped error
	// when no user has the address.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*model.User, error)

	// Update updates an existing user
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// Delete deletes a user by ID
	Delete(ctx context.Context, id types.UserID) error

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}
