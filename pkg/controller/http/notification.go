package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/utils/errutil"
	"github.com/worklane/worklane/pkg/utils/logging"
)

type sendNotificationRequest struct {
	UserID        int64                `json:"userId"`
	Type          string               `json:"type"`
	Title         string               `json:"title"`
	Message       string               `json:"message"`
	RelatedEntity *types.RelatedEntity `json:"relatedEntity"`
	Metadata      string               `json:"metadata"`
	CreatedByID   *int64               `json:"createdById"`
}

func (s *Server) handleSendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	notifType, err := types.ParseNotificationType(req.Type)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid notification type"), http.StatusBadRequest)
		return
	}

	n := &model.Notification{
		UserID:   types.UserID(req.UserID),
		Type:     notifType,
		Title:    req.Title,
		Message:  req.Message,
		Metadata: req.Metadata,
	}
	if req.RelatedEntity != nil {
		n.RelatedEntity = *req.RelatedEntity
	}
	if req.CreatedByID != nil {
		createdBy := types.UserID(*req.CreatedByID)
		n.CreatedByID = &createdBy
	}

	created, err := s.uc.Notification.Send(r.Context(), n)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)

	notifications, err := s.uc.Notification.GetNotificationsForUser(r.Context(), types.UserID(userID), page, size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, notifications)
}

func (s *Server) handleListUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	notifications, err := s.uc.Notification.GetUnreadNotifications(r.Context(), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, notifications)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	count, err := s.uc.Notification.GetUnreadCount(r.Context(), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int64{"unreadCount": count})
}

func (s *Server) handleMarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	userID := int64(queryInt(r, "userId", 0))
	if userID <= 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New("userId query parameter is required"), http.StatusBadRequest)
		return
	}

	changed, err := s.uc.Notification.MarkAsRead(r.Context(), types.NotificationID(id), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"updated": changed})
}

func (s *Server) handleMarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Notification.MarkAllAsRead(r.Context(), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int64{"updated": updated})
}

func (s *Server) handleDeleteAllNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	deleted, err := s.uc.Notification.DeleteAllNotifications(r.Context(), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int64{"deleted": deleted})
}

// handleNotificationStream serves the user's live channel as Server-Sent
// Events. Notification records arrive as "notification" events and unread
// counts as "unread-count" events.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		errutil.HandleHTTP(r.Context(), w, goerr.New("streaming not supported"), http.StatusInternalServerError)
		return
	}

	events, cancel, err := s.uc.Notification.Subscribe(r.Context(), types.UserID(userID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger := logging.From(r.Context())
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warn("failed to encode stream event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
		}
	}
}
