package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/repository/memory"
	"github.com/worklane/worklane/pkg/usecase"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	t.Run("role defaults to MEMBER for unknown values", func(t *testing.T) {
		user, err := uc.User.CreateUser(ctx, usecase.CreateUserInput{
			Email:    "gina@example.com",
			Password: "secret",
			Role:     "WIZARD",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, user.Role).Equal(types.RoleMember)
		gt.Bool(t, user.IsActive).True()
		gt.Value(t, user.PasswordHash).NotEqual("secret")
	})

	t.Run("email and password are required", func(t *testing.T) {
		_, err := uc.User.CreateUser(ctx, usecase.CreateUserInput{Password: "x"})
		gt.Error(t, err)
		_, err = uc.User.CreateUser(ctx, usecase.CreateUserInput{Email: "a@example.com"})
		gt.Error(t, err)
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		_, err := uc.User.CreateUser(ctx, usecase.CreateUserInput{
			Email:    "gina@example.com",
			Password: "other",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrDuplicateEmail)).True()
	})
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	user, err := uc.User.CreateUser(ctx, usecase.CreateUserInput{
		Email:    "hank@example.com",
		Password: "secret",
		Role:     string(types.RoleMember),
	})
	gt.NoError(t, err).Required()

	t.Run("valid role is applied", func(t *testing.T) {
		updated, err := uc.User.UpdateUserRole(ctx, user.ID, "MANAGER")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Role).Equal(types.RoleManager)
	})

	t.Run("unknown role is rejected, not coerced", func(t *testing.T) {
		_, err := uc.User.UpdateUserRole(ctx, user.ID, "WIZARD")
		gt.Error(t, err)

		current, err := uc.User.GetUser(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, current.Role).Equal(types.RoleManager)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	user, err := uc.User.CreateUser(ctx, usecase.CreateUserInput{
		Email:    "iris@example.com",
		Password: "hunter2",
	})
	gt.NoError(t, err).Required()

	t.Run("valid credentials", func(t *testing.T) {
		result, err := uc.Auth.Login(ctx, "iris@example.com", "hunter2")
		gt.NoError(t, err).Required()
		gt.Value(t, result.User.ID).Equal(user.ID)
		gt.Value(t, result.Token).NotEqual("")
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		_, err := uc.Auth.Login(ctx, "iris@example.com", "wrong")
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()

		_, err = uc.Auth.Login(ctx, "nobody@example.com", "hunter2")
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		active := false
		_, err := uc.User.UpdateUser(ctx, user.ID, usecase.UpdateUserInput{IsActive: &active})
		gt.NoError(t, err).Required()

		_, err = uc.Auth.Login(ctx, "iris@example.com", "hunter2")
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
	})
}
