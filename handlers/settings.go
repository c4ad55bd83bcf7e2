// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
)

type SettingsHandler struct {
	settings *content.SettingsService
}

func NewSettingsHandler(settings *content.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings (admin, upsert)
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if err := middleware.ParseJSONBody(r, &settings); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := settings.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.settings.Upsert(r.Context(), settings)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, updated)
}
