package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/usecase"
	"github.com/worklane/worklane/pkg/utils/async"
	"github.com/worklane/worklane/pkg/utils/errutil"
)

// actorID extracts the acting user from the currentUserId query parameter
func actorID(r *http.Request) (types.UserID, error) {
	raw := r.URL.Query().Get("currentUserId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.New("currentUserId query parameter is required", goerr.V("value", raw))
	}
	return types.UserID(id), nil
}

type createTaskRequest struct {
	GroupID     int64      `json:"groupId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Timeline    string     `json:"timeline"`
	Notes       string     `json:"notes"`
	AssignedTo  *int64     `json:"assignedTo"`
	CreatedBy   int64      `json:"createdBy"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	actor := types.UserID(req.CreatedBy)
	if !s.uc.Permission.CanCreateTask(r.Context(), actor) {
		s.respondError(w, r, goerr.Wrap(usecase.ErrPermissionDenied, "not allowed to create tasks"))
		return
	}

	input := usecase.CreateTaskInput{
		GroupID:     types.GroupID(req.GroupID),
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Timeline:    req.Timeline,
		Notes:       req.Notes,
		CreatedBy:   actor,
	}
	if req.AssignedTo != nil {
		assignee := types.UserID(*req.AssignedTo)
		input.AssignedTo = &assignee
	}

	task, err := s.uc.Task.CreateTask(r.Context(), input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Fire-and-forget: the created response does not depend on delivery
	if task.AssignedToID != nil && *task.AssignedToID != actor {
		taskID, assignee := task.ID, *task.AssignedToID
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			_, err := s.uc.Notification.SendEnhancedTaskNotification(
				ctx, taskID, assignee, types.NotificationTaskAssigned, &actor)
			return err
		})
	}

	respondJSON(w, r, http.StatusCreated, task)
}

// updateTaskRequest keeps the assignee as raw JSON so an explicit null can be
// told apart from an omitted field: omitted leaves the assignment unchanged,
// null clears it.
type updateTaskRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Priority    *string         `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	Timeline    *string         `json:"timeline"`
	Notes       *string         `json:"notes"`
	AssignedTo  json.RawMessage `json:"assignedTo"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	taskID := types.TaskID(id)
	if !s.uc.Permission.CanEditTask(r.Context(), actor, taskID) {
		s.respondError(w, r, goerr.Wrap(usecase.ErrPermissionDenied, "not allowed to edit this task"))
		return
	}

	patch := usecase.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Timeline:    req.Timeline,
		Notes:       req.Notes,
	}
	if len(req.AssignedTo) > 0 {
		patch.AssigneeSet = true
		if string(req.AssignedTo) != "null" {
			var assignee int64
			if err := json.Unmarshal(req.AssignedTo, &assignee); err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid assignedTo value"), http.StatusBadRequest)
				return
			}
			userID := types.UserID(assignee)
			patch.Assignee = &userID
		}
	}

	task, err := s.uc.Task.UpdateTask(r.Context(), taskID, patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if task.AssignedToID != nil && *task.AssignedToID != actor {
		notifType := types.NotificationTaskUpdated
		if task.Status == types.TaskStatusDone {
			notifType = types.NotificationTaskCompleted
		}
		taskID, assignee := task.ID, *task.AssignedToID
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			_, err := s.uc.Notification.SendEnhancedTaskNotification(
				ctx, taskID, assignee, notifType, &actor)
			return err
		})
	}

	respondJSON(w, r, http.StatusOK, task)
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "taskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	if !s.uc.Permission.CanAssignTask(r.Context(), actor) {
		s.respondError(w, r, goerr.Wrap(usecase.ErrPermissionDenied, "not allowed to assign tasks"))
		return
	}

	task, err := s.uc.Task.AssignTask(r.Context(), types.TaskID(taskID), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	assignee := types.UserID(userID)
	if assignee != actor {
		taskID := task.ID
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			_, err := s.uc.Notification.SendEnhancedTaskNotification(
				ctx, taskID, assignee, types.NotificationTaskAssigned, &actor)
			return err
		})
	}

	respondJSON(w, r, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	taskID := types.TaskID(id)
	if !s.uc.Permission.CanDeleteTask(r.Context(), actor, taskID) {
		s.respondError(w, r, goerr.Wrap(usecase.ErrPermissionDenied, "not allowed to delete this task"))
		return
	}

	if err := s.uc.Task.DeleteTask(r.Context(), taskID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	task, err := s.uc.Task.GetTask(r.Context(), types.TaskID(id))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.uc.Task.ListTasks(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tasks)
}

func (s *Server) handleListTasksByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	tasks, err := s.uc.Task.ListTasksByGroup(r.Context(), types.GroupID(groupID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tasks)
}

func (s *Server) handleListTasksByBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	tasks, err := s.uc.Task.ListTasksByBoard(r.Context(), types.BoardID(boardID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tasks)
}
