package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
)

type UserUseCase struct {
	repo interfaces.Repository
}

func NewUserUseCase(repo interfaces.Repository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// CreateUserInput describes a new directory entry
type CreateUserInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	AvatarURL  string
	Phone      string
	Location   string
	Bio        string
	Department string
	Position   string
	JoinDate   string
	Role       string
}

func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if input.Email == "" {
		return nil, goerr.New("email is required")
	}
	if input.Password == "" {
		return nil, goerr.New("password is required")
	}

	if _, err := uc.repo.User().GetByEmail(ctx, input.Email); err == nil {
		return nil, goerr.Wrap(ErrDuplicateEmail, "email already in use", goerr.V("email", input.Email))
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: HashPassword(input.Password),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		AvatarURL:    input.AvatarURL,
		Phone:        input.Phone,
		Location:     input.Location,
		Bio:          input.Bio,
		Department:   input.Department,
		Position:     input.Position,
		JoinDate:     input.JoinDate,
		Role:         types.Role(input.Role).Normalize(),
		IsActive:     true,
	}

	created, err := uc.repo.User().Create(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("email", input.Email))
	}

	return created, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
	}
	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return users, nil
}

// UpdateUserInput is a partial patch of profile fields. Role is not part of
// the patch: it changes only through UpdateUserRole.
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	AvatarURL  *string
	Phone      *string
	Location   *string
	Bio        *string
	Department *string
	Position   *string
	IsActive   *bool
}

func (uc *UserUseCase) UpdateUser(ctx context.Context, id types.UserID, patch UpdateUserInput) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Department != nil {
		user.Department = *patch.Department
	}
	if patch.Position != nil {
		user.Position = *patch.Position
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V(UserIDKey, id))
	}

	return updated, nil
}

// UpdateUserRole is the only path that changes a user's role. Unknown role
// strings are rejected here, not coerced: role changes are explicit.
func (uc *UserUseCase) UpdateUserRole(ctx context.Context, id types.UserID, role string) (*model.User, error) {
	parsed, err := types.ParseRole(role)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid role", goerr.V(UserIDKey, id))
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
	}

	user.Role = parsed

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user role", goerr.V(UserIDKey, id))
	}

	return updated, nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, id types.UserID) error {
	if err := uc.repo.User().Delete(ctx, id); err != nil {
		return goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
	}
	return nil
}

// HashPassword returns the hex SHA-256 digest of the password. Login is a
// stub equality check over this digest, not a credential protocol.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
