// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/rebuild"
)

type RebuildHandler struct {
	orch *rebuild.Orchestrator
}

func NewRebuildHandler(orch *rebuild.Orchestrator) *RebuildHandler {
	return &RebuildHandler{orch: orch}
}

// Trigger handles POST /api/rebuild (admin). Acceptance means the
// rebuild runs in the background; progress is polled via Status.
func (h *RebuildHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	err := h.orch.Trigger(r.Context())
	var cd *rebuild.CooldownError
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusAccepted, h.orch.Status())
	case errors.Is(err, rebuild.ErrInProgress):
		middleware.ErrorResponse(w, http.StatusConflict, "rebuild already in progress")
	case errors.As(err, &cd):
		middleware.ErrorResponse(w, http.StatusConflict, cd.Error())
	default:
		serviceError(w, err)
	}
}

// Status handles GET /api/rebuild/status (admin)
func (h *RebuildHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.orch.Status())
}
