package http

import (
	"net/http"

	"github.com/worklane/worklane/pkg/domain/model"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/usecase"
	"github.com/worklane/worklane/pkg/utils/errutil"
)

// userResponse strips the password hash from API responses
type userResponse struct {
	ID          types.UserID `json:"id"`
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	DisplayName string       `json:"displayName"`
	AvatarURL   string       `json:"avatarUrl,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Location    string       `json:"location,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Department  string       `json:"department,omitempty"`
	Position    string       `json:"position,omitempty"`
	JoinDate    string       `json:"joinDate,omitempty"`
	Role        types.Role   `json:"role"`
	IsActive    bool         `json:"isActive"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
		AvatarURL:   u.AvatarURL,
		Phone:       u.Phone,
		Location:    u.Location,
		Bio:         u.Bio,
		Department:  u.Department,
		Position:    u.Position,
		JoinDate:    u.JoinDate,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

type createUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	AvatarURL  string `json:"avatarUrl"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Bio        string `json:"bio"`
	Department string `json:"department"`
	Position   string `json:"position"`
	JoinDate   string `json:"joinDate"`
	Role       string `json:"role"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	user, err := s.uc.User.CreateUser(r.Context(), usecase.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		AvatarURL:  req.AvatarURL,
		Phone:      req.Phone,
		Location:   req.Location,
		Bio:        req.Bio,
		Department: req.Department,
		Position:   req.Position,
		JoinDate:   req.JoinDate,
		Role:       req.Role,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	user, err := s.uc.User.GetUser(r.Context(), types.UserID(id))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.User.ListUsers(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

type updateUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	AvatarURL  *string `json:"avatarUrl"`
	Phone      *string `json:"phone"`
	Location   *string `json:"location"`
	Bio        *string `json:"bio"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	IsActive   *bool   `json:"isActive"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	user, err := s.uc.User.UpdateUser(r.Context(), types.UserID(id), usecase.UpdateUserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		AvatarURL:  req.AvatarURL,
		Phone:      req.Phone,
		Location:   req.Location,
		Bio:        req.Bio,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   req.IsActive,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	user, err := s.uc.User.UpdateUserRole(r.Context(), types.UserID(id), req.Role)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.User.DeleteUser(r.Context(), types.UserID(id)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}
