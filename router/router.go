// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/atelier/auth"
	"github.com/danielhkuo/atelier/cliparse"
	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/handlers"
	"github.com/danielhkuo/atelier/middleware"
	"github.com/danielhkuo/atelier/rebuild"
	"github.com/danielhkuo/atelier/store"
)

// Deps carries the process-wide singletons the routes close over.
type Deps struct {
	Store        *store.Store
	Sessions     *auth.Sessions
	Orchestrator *rebuild.Orchestrator
	Config       cliparse.Config
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize services and handlers
	artworkHandler := handlers.NewArtworkHandler(content.NewArtworks(deps.Store))
	artistHandler := handlers.NewArtistHandler(content.NewArtist(deps.Store))
	faqHandler := handlers.NewFAQHandler(content.NewFAQs(deps.Store))
	settingsHandler := handlers.NewSettingsHandler(content.NewSettings(deps.Store))
	users := content.NewUsers(deps.Store)
	userHandler := handlers.NewUserHandler(users, deps.Sessions)
	sessionHandler := handlers.NewSessionHandler(users, deps.Sessions)
	rebuildHandler := handlers.NewRebuildHandler(deps.Orchestrator)
	uploadHandler := handlers.NewUploadHandler(deps.Config.UploadsDir)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	logged := middleware.WithLogging
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(deps.Sessions, h))
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(deps.Sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Public reads
	mux.HandleFunc("GET /api/artworks", logged(artworkHandler.List))
	mux.HandleFunc("GET /api/artworks/featured", logged(artworkHandler.Featured))
	mux.HandleFunc("GET /api/artworks/slug/{slug}", logged(artworkHandler.BySlug))
	mux.HandleFunc("GET /api/artworks/slug/{slug}/related", logged(artworkHandler.Related))
	mux.HandleFunc("GET /api/artist", logged(artistHandler.Get))
	mux.HandleFunc("GET /api/faqs", logged(faqHandler.List))
	mux.HandleFunc("GET /api/settings", logged(settingsHandler.Get))

	// Sessions
	mux.HandleFunc("POST /api/auth/login", logged(sessionHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authed(sessionHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", authed(sessionHandler.Me))
	mux.HandleFunc("POST /api/auth/password", authed(sessionHandler.ChangePassword))

	// Admin content management
	mux.HandleFunc("POST /api/artworks", admin(artworkHandler.Create))
	mux.HandleFunc("PUT /api/artworks/{id}", admin(artworkHandler.Update))
	mux.HandleFunc("DELETE /api/artworks/{id}", admin(artworkHandler.Delete))
	mux.HandleFunc("PUT /api/artist", admin(artistHandler.Update))
	mux.HandleFunc("POST /api/faqs", admin(faqHandler.Create))
	mux.HandleFunc("PUT /api/faqs/{id}", admin(faqHandler.Update))
	mux.HandleFunc("DELETE /api/faqs/{id}", admin(faqHandler.Delete))
	mux.HandleFunc("PUT /api/settings", admin(settingsHandler.Update))
	mux.HandleFunc("GET /api/users", admin(userHandler.List))
	mux.HandleFunc("POST /api/users", admin(userHandler.Create))
	mux.HandleFunc("DELETE /api/users/{id}", admin(userHandler.Delete))
	mux.HandleFunc("POST /api/uploads", admin(uploadHandler.Upload))

	// Rebuild control
	mux.HandleFunc("POST /api/rebuild", admin(rebuildHandler.Trigger))
	mux.HandleFunc("GET /api/rebuild/status", admin(rebuildHandler.Status))

	// Uploaded images and the prerendered site. The live directory is
	// only ever replaced by rename, so the file server never observes
	// a partial tree.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Config.UploadsDir))))
	mux.Handle("GET /", http.FileServer(http.Dir(deps.Orchestrator.LivePath())))

	return mux
}
