package types

import "strconv"

// UserID identifies a user in the directory
type UserID int64

// TaskID identifies a task
type TaskID int64

// GroupID identifies a group within a board
type GroupID int64

// BoardID identifies a board within a workspace
type BoardID int64

// WorkspaceID identifies a workspace
type WorkspaceID int64

// NotificationID identifies a persisted notification
type NotificationID int64

func (id UserID) String() string         { return strconv.FormatInt(int64(id), 10) }
func (id TaskID) String() string         { return strconv.FormatInt(int64(id), 10) }
func (id GroupID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id BoardID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id WorkspaceID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id NotificationID) String() string { return strconv.FormatInt(int64(id), 10) }
