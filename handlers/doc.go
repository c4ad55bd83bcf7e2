// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

Handlers are thin: they parse and validate input, call a content
service or the rebuild orchestrator, and map service errors onto HTTP
status codes (serviceError). Validation failures carry the first
violated constraint; storage failures are logged server-side and
surface as a generic 500 without internal detail.

Handler groups:

  - ArtworkHandler: gallery reads (public) and CRUD (admin)
  - ArtistHandler / SettingsHandler: singleton get + upsert
  - FAQHandler: FAQ list and CRUD
  - UserHandler: account management (admin), with self-delete
    prevention
  - SessionHandler: login, logout, me, change-password
  - RebuildHandler: rebuild trigger + status poll
  - UploadHandler: image upload
  - HealthHandler: storage ping
*/
package handlers
