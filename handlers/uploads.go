// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/models"
)

// maxUploadBytes caps a single image upload.
const maxUploadBytes = 32 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Upload handles POST /api/uploads (admin). The original file is
// stored under a random name; variant derivation happens in the site
// build, not here.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		slog.Error("failed to create uploads dir", "dir", h.dir, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Upload failed")
		return
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		slog.Error("failed to create upload file", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Upload failed")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		slog.Error("failed to write upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	slog.Info("image uploaded", "name", name, "original", header.Filename)
	middleware.JSONResponse(w, http.StatusCreated, models.UploadResponse{
		URL: "/uploads/" + name,
	})
}
