// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the document store adapter: one CRUD contract over
two interchangeable backends, selected once at startup.

# Backends

  - FileBackend (embedded): one append-only JSON-lines file per
    collection under the data directory. No server process required.
  - DatabaseBackend (networked): per-collection document tables over
    database/sql, reached by connection string. Drivers: postgres
    (lib/pq) and sqlite (modernc.org/sqlite).

When the database backend is configured but unreachable, Open falls
back to the file backend and the process continues in degraded mode.
The chosen backend never changes for the process lifetime.

# Identity

Every document carries two identifiers:

  - "_id": the backend-native key (16-char alphanumeric for the file
    backend, UUID for the database backend). Never mutated.
  - "id": a positive 31-bit integer derived from the native key with
    PublicID. This is the only id clients ever see, and it is stable
    across restarts and identical on both backends for the same
    native key.

The file backend persists "id" next to "_id" on first materialization;
the database backend recomputes it on every read. Lookups by numeric
id scan the collection and compare hashes, so an id nothing hashes to
resolves to "not found" rather than a silent no-op.

# Contract

	c := st.Collection(store.Artworks)
	docs, err := c.Find(store.Filter{"category": "original"}).
		Sort("title", false).
		Limit(10).
		All(ctx)

Absence is a nil document or zero affected-count, never an error.
Backend failures surface as *StorageError. UpdateOne merges the patch
into the existing document and writes it back in full, so both
backends behave identically regardless of their native update
primitives. Sorting is stable with insertion order as the tiebreak, a
deliberately weak guarantee.
*/
package store
