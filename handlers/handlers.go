// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/atelier/auth"
	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/store"
)

// pathID parses the numeric public id from the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// serviceError maps service-layer errors onto HTTP responses. Storage
// internals are logged but never sent to clients.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, content.ErrSlugTaken):
		middleware.ErrorResponse(w, http.StatusConflict, "slug already in use")
	case errors.Is(err, content.ErrEmailTaken):
		middleware.ErrorResponse(w, http.StatusConflict, "email already in use")
	case errors.Is(err, content.ErrSelfDelete):
		middleware.ErrorResponse(w, http.StatusForbidden, "cannot delete your own account")
	case errors.Is(err, auth.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid email or password")
	default:
		var se *store.StorageError
		if errors.As(err, &se) {
			slog.Error("storage failure", "op", se.Op, "error", se.Err)
		} else {
			slog.Error("internal error", "error", err)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
