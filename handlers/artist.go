// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
)

type ArtistHandler struct {
	artist *content.Artist
}

func NewArtistHandler(artist *content.Artist) *ArtistHandler {
	return &ArtistHandler{artist: artist}
}

// Get handles GET /api/artist
func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.artist.Get(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, info)
}

// Update handles PUT /api/artist (admin, upsert)
func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var info models.ArtistInfo
	if err := middleware.ParseJSONBody(r, &info); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := info.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.artist.Upsert(r.Context(), info)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, updated)
}
