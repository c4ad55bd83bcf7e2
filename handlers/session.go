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

type SessionHandler struct {
	users    *content.Users
	sessions *auth.Sessions
}

func NewSessionHandler(users *content.Users, sessions *auth.Sessions) *SessionHandler {
	return &SessionHandler{users: users, sessions: sessions}
}

// Login handles POST /api/auth/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	sess, err := h.sessions.Create(user.ID, user.Email, user.Role)
	if err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: sess.Token,
		User:  user,
	})
}

// Logout handles POST /api/auth/logout (any session)
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(middleware.BearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me (any session)
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.User{
		ID:    sess.UserID,
		Email: sess.Email,
		Role:  sess.Role,
	})
}

// ChangePassword handles POST /api/auth/password (any session). The
// current password must be supplied again; other sessions of the user
// are ended on success.
func (h *SessionHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.NewPassword) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	if err := h.users.ChangePassword(r.Context(), sess.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, err)
		return
	}
	h.sessions.DeleteForUser(sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}
