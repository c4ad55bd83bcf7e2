// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Atelier API server.

Atelier is the backend of an artist-portfolio site: a JSON content API
for the gallery, artist bio, FAQs, site settings, and admin accounts,
plus a static-file server for the prerendered site and an on-demand
rebuild pipeline that regenerates and atomically swaps that site.

# Starting the Server

The server runs on the embedded file store with no configuration:

	go run .

Or against a database:

	USE_DATABASE=true DATABASE_URL=postgres://... go run .

# Configuration

Optional settings (flags or env; .env is loaded):

  - PORT (-p): Server port (default: 4000)
  - DATA_DIR (-data): Embedded store directory (default: data)
  - USE_DATABASE (-use-db): Use the database backend
  - DATABASE_URL (-d): Connection string (required with USE_DATABASE)
  - DATABASE_DRIVER (-t): postgres or sqlite (default: postgres)
  - OUTPUT_ROOT (-output): Static site tree (default: dist)
  - BUILD_COMMAND (-build-cmd): Site build command (default: npm run generate)
  - ADMIN_EMAIL / ADMIN_PASSWORD: Bootstrap admin account

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: document store adapter over the embedded file backend or a
    database backend, with stable numeric public ids
  - content: domain services (artworks, artist, faqs, settings, users)
  - rebuild: build-and-swap orchestrator for the static site
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, auth guards
  - auth: password hashing and sessions
  - models: domain and request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
