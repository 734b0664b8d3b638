package types

import "fmt"

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusTodo      TaskStatus = "TODO"
	TaskStatusWorkingOn TaskStatus = "WORKING_ON_IT"
	TaskStatusDone      TaskStatus = "DONE"
	TaskStatusExpired   TaskStatus = "EXPIRED"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusTodo,
		TaskStatusWorkingOn,
		TaskStatusDone,
		TaskStatusExpired,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo,
		TaskStatusWorkingOn,
		TaskStatusDone,
		TaskStatusExpired:
		return true
	default:
		return false
	}
}

// Normalize coerces empty or out-of-set values to TaskStatusTodo.
// Unknown statuses are recovered, not rejected.
func (s TaskStatus) Normalize() TaskStatus {
	if !s.IsValid() {
		return TaskStatusTodo
	}
	return s
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
