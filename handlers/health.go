// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// Check handles GET /health with a trivial storage ping. The route
// is public, so the body carries only the verdict; the backend kind
// stays in the server logs.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		slog.Error("health check failed", "backend", h.store.Backend(), "error", err)
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status: "unhealthy",
		})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status: "healthy",
	})
}
