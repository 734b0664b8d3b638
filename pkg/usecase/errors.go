package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrUserNotFound      = errors.New("user not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrBoardNotFound     = errors.New("board not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// Access control errors
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Containment errors
	ErrDependentChildren = errors.New("entity still owns children")

	// Other errors
	ErrDuplicateEmail = errors.New("email already registered")
)

// Context keys for error values
const (
	UserIDKey         = "user_id"
	TaskIDKey         = "task_id"
	GroupIDKey        = "group_id"
	BoardIDKey        = "board_id"
	WorkspaceIDKey    = "workspace_id"
	NotificationIDKey = "notification_id"
)
