package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is the in-memory repository backend, used for development and tests
type Memory struct {
	user         *userRepository
	workspace    *workspaceRepository
	board        *boardRepository
	group        *groupRepository
	task         *taskRepository
	notification *notificationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:         newUserRepository(),
		workspace:    newWorkspaceRepository(),
		board:        newBoardRepository(),
		group:        newGroupRepository(),
		task:         newTaskRepository(),
		notification: newNotificationRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Workspace() interfaces.WorkspaceRepository {
	return m.workspace
}

func (m *Memory) Board() interfaces.BoardRepository {
	return m.board
}

func (m *Memory) Group() interfaces.GroupRepository {
	return m.group
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) Close() error {
	return nil
}
