// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Collection names. The store serves exactly these five; anything else
// is rejected before it reaches a backend.
const (
	Artworks = "artworks"
	Artist   = "artist"
	FAQs     = "faqs"
	Users    = "users"
	Settings = "settings"
)

// Collections lists every collection the store manages.
var Collections = []string{Artworks, Artist, FAQs, Users, Settings}

// Reserved document fields.
const (
	nativeIDField = "_id"
	publicIDField = "id"
)

// Doc is a stored document. The backend-native key lives under "_id";
// the derived numeric id exposed to clients lives under "id".
type Doc map[string]any

// NativeID returns the backend-native key, or "" if unset.
func (d Doc) NativeID() string {
	s, _ := d[nativeIDField].(string)
	return s
}

// PublicID returns the materialized numeric id, or 0 if the document
// has not been normalized yet. JSON round-trips turn integers into
// float64, so both representations are accepted.
func (d Doc) PublicID() int64 {
	switch v := d[publicIDField].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}

// Filter selects documents by field equality. A nil or empty filter
// matches everything.
type Filter map[string]any

// StorageError marks backend connectivity or serialization failures.
// Absence of a document is never a StorageError; it is a nil document
// or a zero affected-count.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Backend is the contract both storage implementations satisfy. Find
// returns documents in insertion order. Replace and Remove report the
// affected count and never fail on absence.
type Backend interface {
	Kind() string
	Find(ctx context.Context, collection string, filter Filter) ([]Doc, error)
	Insert(ctx context.Context, collection string, doc Doc) (Doc, error)
	Replace(ctx context.Context, collection, nativeID string, doc Doc) (int, error)
	Remove(ctx context.Context, collection, nativeID string) (int, error)
	// PersistsPublicID reports whether materialized numeric ids should
	// be written back next to the native key. The file backend does;
	// the database backend recomputes them on every read.
	PersistsPublicID() bool
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and locates the storage backend.
type Config struct {
	// UseDatabase selects the database backend when a URL is set.
	// Unset or false means the embedded file backend.
	UseDatabase    bool
	DatabaseURL    string
	Driver         string // "postgres" (default) or "sqlite"
	DataDir        string
	ConnectTimeout time.Duration
}

// Store is the document store adapter. One backend is chosen at Open
// and held for the process lifetime.
type Store struct {
	backend Backend
}

// Open selects a backend per cfg. When the database backend is
// configured but unreachable within the connect timeout, Open falls
// back to the file backend so the site stays up in degraded mode.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.UseDatabase && cfg.DatabaseURL != "" {
		timeout := cfg.ConnectTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		backend, err := OpenDatabase(ctx, cfg.Driver, cfg.DatabaseURL, timeout)
		if err == nil {
			slog.Info("storage backend ready", "backend", backend.Kind())
			return &Store{backend: backend}, nil
		}
		slog.Warn("database backend unavailable, falling back to file store", "error", err)
	}
	backend, err := OpenFile(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	slog.Info("storage backend ready", "backend", backend.Kind(), "dir", cfg.DataDir)
	return &Store{backend: backend}, nil
}

// NewWithBackend wraps an already-open backend. Used by tests.
func NewWithBackend(b Backend) *Store { return &Store{backend: b} }

// Backend reports the kind of the active backend ("file", "postgres",
// "sqlite").
func (s *Store) Backend() string { return s.backend.Kind() }

// Ping checks that the active backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return storageErr("ping", s.backend.Ping(ctx))
}

func (s *Store) Close() error { return s.backend.Close() }

// Collection returns a handle for one of the five collections.
func (s *Store) Collection(name string) *Collection {
	return &Collection{s: s, name: name}
}

// Collection exposes the CRUD contract for a single collection.
type Collection struct {
	s    *Store
	name string
}

func (c *Collection) checkName() error {
	for _, n := range Collections {
		if n == c.name {
			return nil
		}
	}
	return storageErr(c.name, fmt.Errorf("unknown collection"))
}

// Find starts a query. Chain Sort and Limit, then materialize with
// All, One, or Count.
func (c *Collection) Find(filter Filter) *Query {
	return &Query{c: c, filter: filter}
}

// FindOne returns the first match in insertion order, or nil when
// nothing matches.
func (c *Collection) FindOne(ctx context.Context, filter Filter) (Doc, error) {
	return c.Find(filter).One(ctx)
}

// FindByID resolves a numeric public id by scanning the collection and
// comparing hashes of the native keys. Returns nil when no document
// hashes to id.
func (c *Collection) FindByID(ctx context.Context, id int64) (Doc, error) {
	if err := c.checkName(); err != nil {
		return nil, err
	}
	docs, err := c.s.backend.Find(ctx, c.name, nil)
	if err != nil {
		return nil, storageErr("find "+c.name, err)
	}
	for _, doc := range docs {
		if PublicID(doc.NativeID()) == id {
			return c.normalize(ctx, doc), nil
		}
	}
	return nil, nil
}

// Create inserts a document and returns it with the native key and
// the derived numeric id attached.
func (c *Collection) Create(ctx context.Context, doc Doc) (Doc, error) {
	if err := c.checkName(); err != nil {
		return nil, err
	}
	stored, err := c.s.backend.Insert(ctx, c.name, doc)
	if err != nil {
		return nil, storageErr("insert "+c.name, err)
	}
	stored = c.normalize(ctx, stored)
	c.warnOnCollision(ctx, stored)
	return stored, nil
}

// UpdateOne merges patch into the first document matching filter and
// writes the merged document back in full. Returns the affected count
// (0 when nothing matches). The native key and numeric id in the patch
// are ignored; they never change.
func (c *Collection) UpdateOne(ctx context.Context, filter Filter, patch Doc) (int, error) {
	existing, err := c.FindOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	return c.replaceMerged(ctx, existing, patch)
}

// UpdateByID is UpdateOne keyed by the numeric public id.
func (c *Collection) UpdateByID(ctx context.Context, id int64, patch Doc) (int, error) {
	existing, err := c.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	return c.replaceMerged(ctx, existing, patch)
}

// ReplaceByID overwrites the document wholesale, keeping only its
// identity fields. Unlike UpdateByID, keys absent from doc are
// dropped, so callers can clear optional fields.
func (c *Collection) ReplaceByID(ctx context.Context, id int64, doc Doc) (int, error) {
	existing, err := c.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	replacement := Doc{}
	for k, v := range doc {
		if k == nativeIDField || k == publicIDField {
			continue
		}
		replacement[k] = v
	}
	replacement[nativeIDField] = existing.NativeID()
	replacement[publicIDField] = existing.PublicID()
	n, err := c.s.backend.Replace(ctx, c.name, existing.NativeID(), replacement)
	if err != nil {
		return 0, storageErr("replace "+c.name, err)
	}
	return n, nil
}

func (c *Collection) replaceMerged(ctx context.Context, existing Doc, patch Doc) (int, error) {
	merged := Doc{}
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		if k == nativeIDField || k == publicIDField {
			continue
		}
		merged[k] = v
	}
	n, err := c.s.backend.Replace(ctx, c.name, existing.NativeID(), merged)
	if err != nil {
		return 0, storageErr("update "+c.name, err)
	}
	return n, nil
}

// DeleteOne removes the first document matching filter. Returns the
// affected count.
func (c *Collection) DeleteOne(ctx context.Context, filter Filter) (int, error) {
	existing, err := c.FindOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	n, err := c.s.backend.Remove(ctx, c.name, existing.NativeID())
	if err != nil {
		return 0, storageErr("delete "+c.name, err)
	}
	return n, nil
}

// DeleteByID removes the document whose native key hashes to id.
// Deleting an id nothing hashes to affects zero documents; it never
// removes an unrelated one.
func (c *Collection) DeleteByID(ctx context.Context, id int64) (int, error) {
	existing, err := c.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	n, err := c.s.backend.Remove(ctx, c.name, existing.NativeID())
	if err != nil {
		return 0, storageErr("delete "+c.name, err)
	}
	return n, nil
}

// Count reports how many documents match filter.
func (c *Collection) Count(ctx context.Context, filter Filter) (int, error) {
	return c.Find(filter).Count(ctx)
}

// normalize attaches the derived numeric id to a document that lacks
// one. The file backend persists the id next to the native key so
// later lookups hit the stored value; the database backend recomputes
// on every read, which is cheap and deterministic.
func (c *Collection) normalize(ctx context.Context, doc Doc) Doc {
	if doc == nil {
		return nil
	}
	if doc.PublicID() != 0 {
		return doc
	}
	native := doc.NativeID()
	if native == "" {
		return doc
	}
	doc[publicIDField] = PublicID(native)
	if c.s.backend.PersistsPublicID() {
		if _, err := c.s.backend.Replace(ctx, c.name, native, doc); err != nil {
			slog.Warn("failed to persist public id", "collection", c.name, "native_id", native, "error", err)
		}
	}
	return doc
}

// warnOnCollision flags two native keys hashing to the same public id.
// The 31-bit id space makes this possible but collections stay small;
// resolution by id returns the first match in insertion order.
func (c *Collection) warnOnCollision(ctx context.Context, created Doc) {
	docs, err := c.s.backend.Find(ctx, c.name, nil)
	if err != nil {
		return
	}
	id := created.PublicID()
	for _, doc := range docs {
		if doc.NativeID() != created.NativeID() && PublicID(doc.NativeID()) == id {
			slog.Warn("public id collision", "collection", c.name, "id", id,
				"native_id", created.NativeID(), "existing_native_id", doc.NativeID())
			return
		}
	}
}

// Query carries a filter plus chained sort/limit settings until a
// materializing call.
type Query struct {
	c      *Collection
	filter Filter
	sorts  []sortKey
	limit  int
}

type sortKey struct {
	field string
	desc  bool
}

// Sort orders results by field. Chained calls sort by the first field
// first. The sort is stable: documents with equal keys keep insertion
// order, which is the backend's default order (a weak guarantee, not a
// strict total order).
func (q *Query) Sort(field string, desc bool) *Query {
	q.sorts = append(q.sorts, sortKey{field: field, desc: desc})
	return q
}

// Limit caps the number of results. Zero or negative means no cap.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// All materializes the query.
func (q *Query) All(ctx context.Context) ([]Doc, error) {
	if err := q.c.checkName(); err != nil {
		return nil, err
	}
	docs, err := q.c.s.backend.Find(ctx, q.c.name, q.filter)
	if err != nil {
		return nil, storageErr("find "+q.c.name, err)
	}
	for i, doc := range docs {
		docs[i] = q.c.normalize(ctx, doc)
	}
	if len(q.sorts) > 0 {
		sortDocs(docs, q.sorts)
	}
	if q.limit > 0 && len(docs) > q.limit {
		docs = docs[:q.limit]
	}
	return docs, nil
}

// One materializes the query and returns the first result, or nil.
func (q *Query) One(ctx context.Context) (Doc, error) {
	docs, err := q.Limit(1).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// Count materializes the query and returns the match count, ignoring
// any limit.
func (q *Query) Count(ctx context.Context) (int, error) {
	if err := q.c.checkName(); err != nil {
		return 0, err
	}
	docs, err := q.c.s.backend.Find(ctx, q.c.name, q.filter)
	if err != nil {
		return 0, storageErr("count "+q.c.name, err)
	}
	return len(docs), nil
}

func sortDocs(docs []Doc, keys []sortKey) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			cmp := compareValues(docs[i][k.field], docs[j][k.field])
			if cmp == 0 {
				continue
			}
			if k.desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues orders nils first, then numbers, booleans, and strings.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	// Mixed types: compare their printed forms so the order is at
	// least deterministic.
	return compareValues(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// matchFilter applies field-equality filtering. Both backends filter
// in process: collections are small and fixed, and the numeric id is
// not natively queryable in the database backend anyway.
func matchFilter(doc Doc, filter Filter) bool {
	for k, want := range filter {
		if compareValues(doc[k], want) != 0 {
			return false
		}
	}
	return true
}
