// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Supported drivers for the database backend. The driver must be
// registered by the importer (main imports lib/pq and modernc sqlite).
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseBackend stores each collection in its own document table:
// a native-key column, an insertion-order column, and the document as
// JSON. Filtering happens in process over a full scan; the collections
// are small and fixed, and the derived numeric id is not natively
// queryable here, so the scan is the resolution path regardless.
type DatabaseBackend struct {
	db     *sql.DB
	driver string
}

// OpenDatabase connects with a bounded timeout and ensures the
// document tables exist. driver defaults to postgres.
func OpenDatabase(ctx context.Context, driver, dsn string, timeout time.Duration) (*DatabaseBackend, error) {
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	b := &DatabaseBackend{db: db, driver: driver}
	if err := b.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *DatabaseBackend) Kind() string           { return b.driver }
func (b *DatabaseBackend) PersistsPublicID() bool { return false }

func (b *DatabaseBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *DatabaseBackend) Close() error { return b.db.Close() }

// ensureSchema creates one table per collection. Safe to call multiple
// times - uses IF NOT EXISTS.
func (b *DatabaseBackend) ensureSchema(ctx context.Context) error {
	docType := "TEXT"
	if b.driver == DriverPostgres {
		docType = "JSONB"
	}
	for _, collection := range Collections {
		stmt := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				ord BIGINT NOT NULL,
				doc %s NOT NULL
			)`, tableName(collection), docType)
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table for %s: %w", collection, err)
		}
	}
	return nil
}

func tableName(collection string) string { return "doc_" + collection }

// ph renders the n-th placeholder for the active driver ($n for
// postgres, ? for sqlite).
func (b *DatabaseBackend) ph(n int) string {
	if b.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (b *DatabaseBackend) Find(ctx context.Context, collection string, filter Filter) ([]Doc, error) {
	query := fmt.Sprintf("SELECT doc FROM %s ORDER BY ord", tableName(collection))
	rows, err := b.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Doc
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc Doc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document in %s: %w", collection, err)
		}
		if matchFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, rows.Err()
}

func (b *DatabaseBackend) Insert(ctx context.Context, collection string, doc Doc) (Doc, error) {
	stored := cloneDoc(doc)
	native := uuid.NewString()
	stored[nativeIDField] = native

	raw, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode document for %s: %w", collection, err)
	}

	tbl := tableName(collection)
	stmt := fmt.Sprintf(
		"INSERT INTO %s (id, ord, doc) VALUES (%s, (SELECT COALESCE(MAX(ord), 0) + 1 FROM %s), %s)",
		tbl, b.ph(1), tbl, b.ph(2))
	if _, err := b.db.ExecContext(ctx, stmt, native, raw); err != nil {
		return nil, err
	}
	return stored, nil
}

func (b *DatabaseBackend) Replace(ctx context.Context, collection, nativeID string, doc Doc) (int, error) {
	stored := cloneDoc(doc)
	stored[nativeIDField] = nativeID
	raw, err := json.Marshal(stored)
	if err != nil {
		return 0, fmt.Errorf("encode document for %s: %w", collection, err)
	}

	stmt := fmt.Sprintf("UPDATE %s SET doc = %s WHERE id = %s", tableName(collection), b.ph(1), b.ph(2))
	res, err := b.db.ExecContext(ctx, stmt, raw, nativeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (b *DatabaseBackend) Remove(ctx context.Context, collection, nativeID string) (int, error) {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = %s", tableName(collection), b.ph(1))
	res, err := b.db.ExecContext(ctx, stmt, nativeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
