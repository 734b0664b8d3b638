package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	Workspace() WorkspaceRepository
	Board() BoardRepository
	Group() GroupRepository
	Task() TaskRepository
	Notification() NotificationRepository

	Close() error
}
