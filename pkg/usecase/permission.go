package usecase

import (
	"context"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/utils/logging"
)

// PermissionUseCase decides whether an actor may perform task operations.
// All predicates are total: any lookup failure yields deny, logged here,
// never propagated. Evaluation is read-only.
type PermissionUseCase struct {
	repo interfaces.Repository
}

func NewPermissionUseCase(repo interfaces.Repository) *PermissionUseCase {
	return &PermissionUseCase{repo: repo}
}

func (uc *PermissionUseCase) actorRole(ctx context.Context, actorID types.UserID) (types.Role, bool) {
	actor, err := uc.repo.User().Get(ctx, actorID)
	if err != nil {
		logging.From(ctx).Warn("permission check failed to resolve actor, denying",
			"actorID", actorID,
			"error", err,
		)
		return "", false
	}
	return actor.Role, true
}

// CanCreateTask reports whether the actor may create tasks.
// Requires MANAGER or above.
func (uc *PermissionUseCase) CanCreateTask(ctx context.Context, actorID types.UserID) bool {
	role, ok := uc.actorRole(ctx, actorID)
	if !ok {
		return false
	}
	return role.Level() >= types.RoleManager.Level()
}

// CanAssignTask reports whether the actor may assign tasks. Same rule as create.
func (uc *PermissionUseCase) CanAssignTask(ctx context.Context, actorID types.UserID) bool {
	return uc.CanCreateTask(ctx, actorID)
}

// CanEditTask reports whether the actor may edit the task. MANAGER and above
// may edit any task. A MEMBER may edit a task only while assigned to it,
// creator or not. VIEWER and unresolvable actors are denied.
func (uc *PermissionUseCase) CanEditTask(ctx context.Context, actorID types.UserID, taskID types.TaskID) bool {
	role, ok := uc.actorRole(ctx, actorID)
	if !ok {
		return false
	}

	if role.Level() >= types.RoleManager.Level() {
		return true
	}
	if role != types.RoleMember {
		return false
	}

	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		logging.From(ctx).Warn("permission check failed to resolve task, denying",
			"actorID", actorID,
			"taskID", taskID,
			"error", err,
		)
		return false
	}

	return task.AssignedTo != nil && *task.AssignedTo == actorID
}

// CanDeleteTask reports whether the actor may delete the task. MANAGER and
// above may delete any task. A MEMBER may delete only tasks they created,
// independent of assignment.
func (uc *PermissionUseCase) CanDeleteTask(ctx context.Context, actorID types.UserID, taskID types.TaskID) bool {
	role, ok := uc.actorRole(ctx, actorID)
	if !ok {
		return false
	}

	if role.Level() >= types.RoleManager.Level() {
		return true
	}
	if role != types.RoleMember {
		return false
	}

	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		logging.From(ctx).Warn("permission check failed to resolve task, denying",
			"actorID", actorID,
			"taskID", taskID,
			"error", err,
		)
		return false
	}

	return task.CreatedBy == actorID
}

// HasMinimumRole reports whether the actor's role level is at least the
// given role's level.
func (uc *PermissionUseCase) HasMinimumRole(ctx context.Context, actorID types.UserID, minimum types.Role) bool {
	role, ok := uc.actorRole(ctx, actorID)
	if !ok {
		return false
	}
	return role.Level() >= minimum.Level()
}
