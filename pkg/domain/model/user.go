package model

import (
	"strings"
	"time"

	"github.com/worklane/worklane/pkg/domain/types"
)

// User represents a member of the directory
type User struct {
	ID           types.UserID `firestore:"id"`
	Email        string       `firestore:"email"`
	PasswordHash string       `firestore:"passwordHash"`
	FirstName    string       `firestore:"firstName"`
	LastName     string       `firestore:"lastName"`
	AvatarURL    string       `firestore:"avatarUrl,omitempty"`
	Description  string       `firestore:"description,omitempty"`
	Phone        string       `firestore:"phone,omitempty"`
	Location     string       `firestore:"location,omitempty"`
	Bio          string       `firestore:"bio,omitempty"`
	Department   string       `firestore:"department,omitempty"`
	Position     string       `firestore:"position,omitempty"`
	JoinDate     string       `firestore:"joinDate,omitempty"`
	Role         types.Role   `firestore:"role"`
	IsActive     bool         `firestore:"isActive"`
	CreatedAt    time.Time    `firestore:"createdAt"`
	UpdatedAt    time.Time    `firestore:"updatedAt"`
}

// DisplayName returns the user's human-readable name
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
