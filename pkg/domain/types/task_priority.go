package types

import "fmt"

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityNormal TaskPriority = "NORMAL"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// AllTaskPriorities returns all valid task priorities
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{
		TaskPriorityLow,
		TaskPriorityNormal,
		TaskPriorityHigh,
	}
}

// IsValid checks if the task priority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow,
		TaskPriorityNormal,
		TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Normalize coerces empty or out-of-set values to TaskPriorityNormal
func (p TaskPriority) Normalize() TaskPriority {
	if !p.IsValid() {
		return TaskPriorityNormal
	}
	return p
}

// String returns the string representation of the task priority
func (p TaskPriority) String() string {
	return string(p)
}

// ParseTaskPriority parses a string into a TaskPriority
func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid task priority: %s", s)
	}
	return priority, nil
}
