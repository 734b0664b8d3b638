package usecase

import (
	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/service/slack"
)

type UseCases struct {
	repo    interfaces.Repository
	channel interfaces.Channel
	slack   slack.Service

	Permission   *PermissionUseCase
	Task         *TaskUseCase
	Notification *NotificationUseCase
	User         *UserUseCase
	Auth         *AuthUseCase
	Workspace    *WorkspaceUseCase
	Board        *BoardUseCase
	Group        *GroupUseCase
}

type Option func(*UseCases)

// WithChannel sets the per-user push channel. Without it, notifications are
// persisted but never pushed.
func WithChannel(ch interfaces.Channel) Option {
	return func(uc *UseCases) {
		uc.channel = ch
	}
}

// WithSlack sets an optional secondary delivery sink that DMs the target user
func WithSlack(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slack = svc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Permission = NewPermissionUseCase(repo)
	uc.Task = NewTaskUseCase(repo)
	uc.Notification = NewNotificationUseCase(repo, uc.channel, uc.slack)
	uc.User = NewUserUseCase(repo)
	uc.Auth = NewAuthUseCase(repo)
	uc.Workspace = NewWorkspaceUseCase(repo)
	uc.Board = NewBoardUseCase(repo)
	uc.Group = NewGroupUseCase(repo)

	return uc
}
