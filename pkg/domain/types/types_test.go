package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/domain/types"
)

func TestRoleLevel(t *testing.T) {
	gt.Number(t, types.RoleOwner.Level()).Equal(5)
	gt.Number(t, types.RoleAdmin.Level()).Equal(4)
	gt.Number(t, types.RoleManager.Level()).Equal(3)
	gt.Number(t, types.RoleMember.Level()).Equal(2)
	gt.Number(t, types.RoleViewer.Level()).Equal(1)
	gt.Number(t, types.Role("INTERN").Level()).Equal(0)
	gt.Number(t, types.Role("").Level()).Equal(0)
}

func TestRoleNormalize(t *testing.T) {
	gt.Value(t, types.Role("").Normalize()).Equal(types.RoleMember)
	gt.Value(t, types.Role("SUPERUSER").Normalize()).Equal(types.RoleMember)
	gt.Value(t, types.RoleOwner.Normalize()).Equal(types.RoleOwner)
}

func TestParseRole(t *testing.T) {
	role, err := types.ParseRole("ADMIN")
	gt.NoError(t, err)
	gt.Value(t, role).Equal(types.RoleAdmin)

	_, err = types.ParseRole("admin")
	gt.Error(t, err)
}

func TestTaskStatusNormalize(t *testing.T) {
	t.Run("valid values pass through", func(t *testing.T) {
		for _, s := range types.AllTaskStatuses() {
			gt.Value(t, s.Normalize()).Equal(s)
		}
	})

	t.Run("out-of-set values coerce to TODO", func(t *testing.T) {
		gt.Value(t, types.TaskStatus("BOGUS").Normalize()).Equal(types.TaskStatusTodo)
		gt.Value(t, types.TaskStatus("").Normalize()).Equal(types.TaskStatusTodo)
		gt.Value(t, types.TaskStatus("done").Normalize()).Equal(types.TaskStatusTodo)
	})
}

func TestTaskPriorityNormalize(t *testing.T) {
	t.Run("valid values pass through", func(t *testing.T) {
		for _, p := range types.AllTaskPriorities() {
			gt.Value(t, p.Normalize()).Equal(p)
		}
	})

	t.Run("out-of-set values coerce to NORMAL", func(t *testing.T) {
		gt.Value(t, types.TaskPriority("URGENT").Normalize()).Equal(types.TaskPriorityNormal)
		gt.Value(t, types.TaskPriority("").Normalize()).Equal(types.TaskPriorityNormal)
	})
}

func TestNotificationType(t *testing.T) {
	gt.Array(t, types.AllNotificationTypes()).Length(13)

	for _, nt := range types.AllNotificationTypes() {
		gt.Bool(t, nt.IsValid()).True()
	}
	gt.Bool(t, types.NotificationType("TASK_EXPLODED").IsValid()).False()

	_, err := types.ParseNotificationType("TASK_ASSIGNED")
	gt.NoError(t, err)
	_, err = types.ParseNotificationType("nope")
	gt.Error(t, err)
}

func TestRelatedEntity(t *testing.T) {
	t.Run("typed constructors pair kind and id", func(t *testing.T) {
		e := types.RelatedTask(types.TaskID(42))
		gt.Value(t, e.Kind).Equal(types.RelatedKindTask)
		gt.Number(t, e.ID).Equal(42)
		gt.NoError(t, e.Validate())

		gt.Value(t, types.RelatedUser(types.UserID(7)).Kind).Equal(types.RelatedKindUser)
		gt.Value(t, types.RelatedWorkspace(types.WorkspaceID(1)).Kind).Equal(types.RelatedKindWorkspace)
	})

	t.Run("zero value is valid", func(t *testing.T) {
		var e types.RelatedEntity
		gt.Bool(t, e.IsZero()).True()
		gt.NoError(t, e.Validate())
	})

	t.Run("kind without id is rejected", func(t *testing.T) {
		e := types.RelatedEntity{Kind: types.RelatedKindBoard}
		gt.Error(t, e.Validate())
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		e := types.RelatedEntity{Kind: "SPRINT", ID: 1}
		gt.Error(t, e.Validate())
	})
}
