// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
)

type ArtworkHandler struct {
	artworks *content.Artworks
}

func NewArtworkHandler(artworks *content.Artworks) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks}
}

// List handles GET /api/artworks
func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := content.ListOptions{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}
	if opts.Category != "" && !models.ValidCategory(opts.Category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category must be one of: original, commission, exhibition")
		return
	}
	if opts.Status != "" && !models.ValidStatus(opts.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: available, sold, exhibition, private")
		return
	}
	switch r.URL.Query().Get("featured") {
	case "true":
		t := true
		opts.Featured = &t
	case "false":
		f := false
		opts.Featured = &f
	}

	artworks, err := h.artworks.List(r.Context(), opts)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, artworks)
}

// Featured handles GET /api/artworks/featured
func (h *ArtworkHandler) Featured(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.artworks.Featured(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, artworks)
}

// BySlug handles GET /api/artworks/slug/{slug}
func (h *ArtworkHandler) BySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}
	artwork, err := h.artworks.BySlug(r.Context(), slug)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, artwork)
}

// Related handles GET /api/artworks/slug/{slug}/related
func (h *ArtworkHandler) Related(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}
	artworks, err := h.artworks.Related(r.Context(), slug)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, artworks)
}

// Create handles POST /api/artworks (admin)
func (h *ArtworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var artwork models.Artwork
	if err := middleware.ParseJSONBody(r, &artwork); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := artwork.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.artworks.Create(r.Context(), artwork)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/artworks/{id} (admin, partial update)
func (h *ArtworkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	var patch map[string]any
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg, ok := validateArtworkPatch(patch); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.artworks.Update(r.Context(), id, patch)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/artworks/{id} (admin)
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	if err := h.artworks.Delete(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateArtworkPatch checks the fields a partial update may carry.
// Absent fields stay untouched, so only present values are checked.
func validateArtworkPatch(patch map[string]any) (string, bool) {
	if v, ok := patch["title"]; ok {
		if s, _ := v.(string); s == "" {
			return "title must not be empty", false
		}
	}
	if v, ok := patch["slug"]; ok {
		if s, _ := v.(string); s == "" {
			return "slug must not be empty", false
		}
	}
	if v, ok := patch["status"]; ok {
		s, _ := v.(string)
		if !models.ValidStatus(s) {
			return "status must be one of: available, sold, exhibition, private", false
		}
	}
	if v, ok := patch["category"]; ok {
		s, _ := v.(string)
		if !models.ValidCategory(s) {
			return "category must be one of: original, commission, exhibition", false
		}
	}
	for _, field := range []string{"width", "height", "depth"} {
		v, ok := patch[field]
		if !ok || v == nil {
			continue
		}
		if f, _ := v.(float64); f < 0 {
			return "dimensions must not be negative", false
		}
	}
	return "", true
}
