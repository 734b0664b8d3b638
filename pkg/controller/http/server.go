package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/usecase"
	"github.com/worklane/worklane/pkg/utils/errutil"
	"github.com/worklane/worklane/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Put("/{id}/role", s.handleUpdateUserRole)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", s.handleListWorkspaces)
			r.Post("/", s.handleCreateWorkspace)
			r.Get("/{id}", s.handleGetWorkspace)
			r.Put("/{id}", s.handleUpdateWorkspace)
			r.Delete("/{id}", s.handleDeleteWorkspace)
			r.Get("/{id}/boards", s.handleListBoardsByWorkspace)
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Post("/", s.handleCreateBoard)
			r.Get("/{id}", s.handleGetBoard)
			r.Put("/{id}", s.handleUpdateBoard)
			r.Delete("/{id}", s.handleDeleteBoard)
			r.Get("/{id}/groups", s.handleListGroupsByBoard)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", s.handleCreateGroup)
			r.Get("/{id}", s.handleGetGroup)
			r.Put("/{id}", s.handleUpdateGroup)
			r.Delete("/{id}", s.handleDeleteGroup)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Get("/{id}", s.handleGetTask)
			r.Put("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
			r.Get("/group/{groupID}", s.handleListTasksByGroup)
			r.Get("/board/{boardID}", s.handleListTasksByBoard)
			r.Put("/{taskID}/assign/{userID}", s.handleAssignTask)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Post("/", s.handleSendNotification)
			r.Get("/user/{userID}", s.handleListNotifications)
			r.Get("/user/{userID}/unread", s.handleListUnreadNotifications)
			r.Get("/user/{userID}/unread-count", s.handleUnreadCount)
			r.Put("/user/{userID}/read-all", s.handleMarkAllAsRead)
			r.Delete("/user/{userID}", s.handleDeleteAllNotifications)
			r.Put("/{id}/read", s.handleMarkAsRead)
			r.Get("/stream/{userID}", s.handleNotificationStream)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// statusFor maps use case sentinels to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, usecase.ErrGroupNotFound),
		errors.Is(err, usecase.ErrBoardNotFound),
		errors.Is(err, usecase.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrDependentChildren),
		errors.Is(err, usecase.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body")
	}
	return nil
}

// pathID parses an int64 URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.New("invalid path parameter", goerr.V("name", name), goerr.V("value", raw))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
