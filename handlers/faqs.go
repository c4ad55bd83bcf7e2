// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
)

type FAQHandler struct {
	faqs *content.FAQs
}

func NewFAQHandler(faqs *content.FAQs) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

// List handles GET /api/faqs
func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqs.List(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, faqs)
}

// Create handles POST /api/faqs (admin)
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var faq models.FAQ
	if err := middleware.ParseJSONBody(r, &faq); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := faq.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.faqs.Create(r.Context(), faq)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/faqs/{id} (admin, partial update)
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	for _, field := range []string{"question", "answer"} {
		if v, ok := patch[field]; ok {
			if s, _ := v.(string); s == "" {
				middleware.ErrorResponse(w, http.StatusBadRequest, field+" must not be empty")
				return
			}
		}
	}

	updated, err := h.faqs.Update(r.Context(), id, patch)
	if err != nil {
		serviceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/faqs/{id} (admin)
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	if err := h.faqs.Delete(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
