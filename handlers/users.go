// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/atelier/auth"
	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
)

type UserHandler struct {
	users    *content.Users
	sessions *auth.Sessions
}

func NewUserHandler(users *content.Users, sessions *auth.Sessions) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// List handles GET /api/users (admin)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users (admin)
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.users.Create(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/users/{id} (admin). Deleting the account
// behind the calling session is rejected.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	sess, ok := middleware.SessionFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.users.Delete(r.Context(), id, sess.UserID); err != nil {
		serviceError(w, err)
		return
	}
	// Any sessions the deleted user still holds are dead now.
	h.sessions.DeleteForUser(id)
	w.WriteHeader(http.StatusNoContent)
}
