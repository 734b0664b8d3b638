package types

import "github.com/m-mizutani/goerr/v2"

// RelatedEntityKind enumerates the entity kinds a notification can reference
type RelatedEntityKind string

const (
	RelatedKindTask      RelatedEntityKind = "TASK"
	RelatedKindBoard     RelatedEntityKind = "BOARD"
	RelatedKindGroup     RelatedEntityKind = "GROUP"
	RelatedKindWorkspace RelatedEntityKind = "WORKSPACE"
	RelatedKindUser      RelatedEntityKind = "USER"
	RelatedKindComment   RelatedEntityKind = "COMMENT"
)

// IsValid checks if the related entity kind is valid
func (k RelatedEntityKind) IsValid() bool {
	switch k {
	case RelatedKindTask,
		RelatedKindBoard,
		RelatedKindGroup,
		RelatedKindWorkspace,
		RelatedKindUser,
		RelatedKindComment:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind
func (k RelatedEntityKind) String() string {
	return string(k)
}

// RelatedEntity is a typed weak reference from a notification to the domain
// object it describes. It is a relation only, never ownership. Construct it
// through the Related* helpers so a kind can never be paired with an ID of a
// different entity.
type RelatedEntity struct {
	Kind RelatedEntityKind `firestore:"kind" json:"kind"`
	ID   int64             `firestore:"id" json:"id"`
}

// RelatedTask references a task
func RelatedTask(id TaskID) RelatedEntity {
	return RelatedEntity{Kind: RelatedKindTask, ID: int64(id)}
}

// RelatedBoard references a board
func RelatedBoard(id BoardID) RelatedEntity {
	return RelatedEntity{Kind: RelatedKindBoard, ID: int64(id)}
}

// RelatedGroup references a group
func RelatedGroup(id GroupID) RelatedEntity {
	return RelatedEntity{Kind: RelatedKindGroup, ID: int64(id)}
}

// RelatedWorkspace references a workspace
func RelatedWorkspace(id WorkspaceID) RelatedEntity {
	return RelatedEntity{Kind: RelatedKindWorkspace, ID: int64(id)}
}

// RelatedUser references a user
func RelatedUser(id UserID) RelatedEntity {
	return RelatedEntity{Kind: RelatedKindUser, ID: int64(id)}
}

// RelatedComment references a comment
func RelatedComment(id int64) RelatedEntity {
	return RelatedEntity{Kind: RelatedKindComment, ID: id}
}

// IsZero reports whether the reference is unset
func (e RelatedEntity) IsZero() bool {
	return e.Kind == "" && e.ID == 0
}

// Validate checks the kind/ID pairing
func (e RelatedEntity) Validate() error {
	if e.IsZero() {
		return nil
	}
	if !e.Kind.IsValid() {
		return goerr.New("invalid related entity kind", goerr.V("kind", e.Kind))
	}
	if e.ID == 0 {
		return goerr.New("related entity ID is required", goerr.V("kind", e.Kind))
	}
	return nil
}
