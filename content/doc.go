// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package content implements the domain services on top of the document
store adapter: artworks, artist info, FAQs, site settings, and users.

Services translate between typed models and stored documents, enforce
domain rules (unique slugs and emails, at most one primary image,
singleton upserts, self-delete prevention, admin auto-provisioning),
and map absence to ErrNotFound. They never construct HTTP responses;
that is the handlers' job.

Seed installs sample content into an empty store so a fresh
installation renders a complete site.
*/
package content
