// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types for the portfolio API together
with their request/response shapes and validation rules.

# Collections

Five document collections back the site:

  - Artwork: gallery pieces with slug, dimensions, status, category,
    and an ordered image list (at most one image flagged primary)
  - ArtistInfo: singleton bio/contact record
  - FAQ: question/answer pairs grouped by free-text category
  - User: admin/editor accounts (password hash never serialized to
    clients; see User.Sanitized)
  - SiteSettings: singleton HSL accent color

# Validation

Each input type exposes Validate, which reports the first violated
constraint. Handlers call it before anything reaches storage, so
storage never sees malformed documents.
*/
package models
