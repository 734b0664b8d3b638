package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/worklane/worklane/pkg/controller/http"
	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/repository/memory"
	"github.com/worklane/worklane/pkg/usecase"
)

type fixture struct {
	server  *httpctrl.Server
	repo    *memory.Memory
	uc      *usecase.UseCases
	manager types.UserID
	member  types.UserID
	groupID types.GroupID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	manager, err := repo.User().Create(ctx, &model.User{
		Email: "manager@example.com", FirstName: "Mara", LastName: "Quinn",
		Role: types.RoleManager, IsActive: true,
	})
	gt.NoError(t, err).Required()
	member, err := repo.User().Create(ctx, &model.User{
		Email: "member@example.com", FirstName: "Milo", LastName: "Reyes",
		Role: types.RoleMember, IsActive: true,
	})
	gt.NoError(t, err).Required()

	group, err := repo.Group().Create(ctx, &model.Group{BoardID: 1, Name: "Backlog"})
	gt.NoError(t, err).Required()

	return &fixture{
		server:  httpctrl.New(uc),
		repo:    repo,
		uc:      uc,
		manager: manager.ID,
		member:  member.ID,
		groupID: group.ID,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doRaw(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func TestCreateTaskHandler(t *testing.T) {
	t.Run("manager creates a task", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/tasks/", map[string]any{
			"groupId":   int64(f.groupID),
			"name":      "Draft proposal",
			"status":    "BOGUS",
			"createdBy": int64(f.manager),
		})
		gt.Number(t, rec.Code).Equal(http.StatusCreated)

		var view model.TaskView
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		gt.Value(t, view.Status).Equal(types.TaskStatusTodo)
		gt.Value(t, view.CreatedByName).Equal("Mara Quinn")
	})

	t.Run("member is forbidden", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/tasks/", map[string]any{
			"groupId":   int64(f.groupID),
			"name":      "Sneaky task",
			"createdBy": int64(f.member),
		})
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("missing group is not found", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/tasks/", map[string]any{
			"groupId":   int64(9999),
			"name":      "Nowhere",
			"createdBy": int64(f.manager),
		})
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestUpdateTaskHandlerAssigneeSemantics(t *testing.T) {
	ctx := context.Background()

	newTaskID := func(t *testing.T, f *fixture) types.TaskID {
		t.Helper()
		view, err := f.uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			GroupID:    f.groupID,
			Name:       "Assigned work",
			CreatedBy:  f.manager,
			AssignedTo: &f.member,
		})
		gt.NoError(t, err).Required()
		return view.ID
	}

	t.Run("omitted assignedTo leaves the assignment", func(t *testing.T) {
		f := newFixture(t)
		taskID := newTaskID(t, f)

		rec := f.doRaw(t, http.MethodPut,
			fmt.Sprintf("/api/tasks/%d?currentUserId=%d", taskID, f.manager),
			`{"name":"Renamed"}`)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var view model.TaskView
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		gt.Value(t, view.Name).Equal("Renamed")
		gt.Value(t, view.AssignedToID).NotNil()
	})

	t.Run("explicit null clears the assignment", func(t *testing.T) {
		f := newFixture(t)
		taskID := newTaskID(t, f)

		rec := f.doRaw(t, http.MethodPut,
			fmt.Sprintf("/api/tasks/%d?currentUserId=%d", taskID, f.manager),
			`{"assignedTo":null}`)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var view model.TaskView
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		gt.Value(t, view.AssignedToID).Nil()
	})

	t.Run("assigned member may edit, others may not", func(t *testing.T) {
		f := newFixture(t)
		taskID := newTaskID(t, f)

		rec := f.doRaw(t, http.MethodPut,
			fmt.Sprintf("/api/tasks/%d?currentUserId=%d", taskID, f.member),
			`{"notes":"on it"}`)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		stranger, err := f.repo.User().Create(ctx, &model.User{
			Email: "stranger@example.com", Role: types.RoleMember, IsActive: true,
		})
		gt.NoError(t, err).Required()

		rec = f.doRaw(t, http.MethodPut,
			fmt.Sprintf("/api/tasks/%d?currentUserId=%d", taskID, stranger.ID),
			`{"notes":"mine now"}`)
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("missing currentUserId is a bad request", func(t *testing.T) {
		f := newFixture(t)
		taskID := newTaskID(t, f)

		rec := f.doRaw(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), `{}`)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestAssignTaskHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
		GroupID:   f.groupID,
		Name:      "Unowned",
		CreatedBy: f.manager,
	})
	gt.NoError(t, err).Required()

	rec := f.do(t, http.MethodPut,
		fmt.Sprintf("/api/tasks/%d/assign/%d?currentUserId=%d", view.ID, f.member, f.manager), nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	var updated model.TaskView
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	gt.Value(t, *updated.AssignedToID).Equal(f.member)

	rec = f.do(t, http.MethodPut,
		fmt.Sprintf("/api/tasks/%d/assign/%d?currentUserId=%d", view.ID, f.member, f.member), nil)
	gt.Number(t, rec.Code).Equal(http.StatusForbidden)
}

func TestNotificationHandlers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := range 3 {
		_, err := f.uc.Notification.Send(ctx, &model.Notification{
			UserID:  f.member,
			Type:    types.NotificationTaskUpdated,
			Title:   "Task updated",
			Message: fmt.Sprintf("update %d", i),
		})
		gt.NoError(t, err).Required()
	}

	t.Run("paged feed", func(t *testing.T) {
		rec := f.do(t, http.MethodGet,
			fmt.Sprintf("/api/notifications/user/%d?page=0&size=2", f.member), nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var feed []*model.Notification
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
		gt.Array(t, feed).Length(2)
	})

	t.Run("unread count", func(t *testing.T) {
		rec := f.do(t, http.MethodGet,
			fmt.Sprintf("/api/notifications/user/%d/unread-count", f.member), nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal(`{"unreadCount":3}`)
	})

	t.Run("mark all as read", func(t *testing.T) {
		rec := f.do(t, http.MethodPut,
			fmt.Sprintf("/api/notifications/user/%d/read-all", f.member), nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = f.do(t, http.MethodGet,
			fmt.Sprintf("/api/notifications/user/%d/unread", f.member), nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var unread []*model.Notification
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unread))
		gt.Array(t, unread).Length(0)
	})

	t.Run("send rejects unknown type", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/notifications/", map[string]any{
			"userId": int64(f.member),
			"type":   "TASK_EXPLODED",
			"title":  "Nope",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestLoginHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.User.CreateUser(ctx, usecase.CreateUserInput{
		Email:    "login@example.com",
		Password: "hunter2",
	})
	gt.NoError(t, err).Required()

	rec := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "hunter2",
	})
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	rec = f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
}

func TestWorkspaceDeleteConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	workspace, err := f.uc.Workspace.CreateWorkspace(ctx, "Acme", "", f.manager)
	gt.NoError(t, err).Required()
	_, err = f.uc.Board.CreateBoard(ctx, workspace.ID, "Launch", "")
	gt.NoError(t, err).Required()

	rec := f.do(t, http.MethodDelete, fmt.Sprintf("/api/workspaces/%d", workspace.ID), nil)
	gt.Number(t, rec.Code).Equal(http.StatusConflict)
}
