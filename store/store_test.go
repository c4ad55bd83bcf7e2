// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// withBackends runs the adapter contract tests against both backends.
func withBackends(t *testing.T, fn func(t *testing.T, st *Store)) {
	t.Run("file", func(t *testing.T) {
		backend, err := OpenFile(t.TempDir())
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		st := NewWithBackend(backend)
		defer st.Close()
		fn(t, st)
	})
	t.Run("sqlite", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "docs.db")
		backend, err := OpenDatabase(context.Background(), DriverSQLite, dsn, 5*time.Second)
		if err != nil {
			t.Fatalf("OpenDatabase: %v", err)
		}
		st := NewWithBackend(backend)
		defer st.Close()
		fn(t, st)
	})
}

func TestCreateAssignsIdentity(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(Artworks)

		created, err := c.Create(ctx, Doc{"title": "Dawn", "slug": "dawn"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.NativeID() == "" {
			t.Error("created doc has no native id")
		}
		if created.PublicID() <= 0 {
			t.Errorf("created doc has public id %d, want positive", created.PublicID())
		}
		if created.PublicID() != PublicID(created.NativeID()) {
			t.Error("public id does not match hash of native id")
		}

		// Repeated reads return the same numeric id.
		for i := 0; i < 3; i++ {
			got, err := c.FindOne(ctx, Filter{"slug": "dawn"})
			if err != nil {
				t.Fatalf("FindOne: %v", err)
			}
			if got == nil {
				t.Fatal("FindOne returned nil for existing doc")
			}
			if got.PublicID() != created.PublicID() {
				t.Errorf("read %d: public id %d, want %d", i, got.PublicID(), created.PublicID())
			}
		}
	})
}

func TestFindOneAbsentIsNil(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		got, err := st.Collection(FAQs).FindOne(context.Background(), Filter{"question": "nope"})
		if err != nil {
			t.Fatalf("FindOne: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for absent doc, got %v", got)
		}
	})
}

func TestUpdateByIDRoundTrip(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(Artworks)

		created, err := c.Create(ctx, Doc{"title": "Old Title", "slug": "piece", "medium": "oil"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		id := created.PublicID()

		n, err := c.UpdateByID(ctx, id, Doc{"title": "New Title"})
		if err != nil {
			t.Fatalf("UpdateByID: %v", err)
		}
		if n != 1 {
			t.Fatalf("UpdateByID affected %d, want 1", n)
		}

		got, err := c.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got == nil {
			t.Fatal("FindByID returned nil after update")
		}
		if got["title"] != "New Title" {
			t.Errorf("title = %v, want New Title", got["title"])
		}
		if got["medium"] != "oil" {
			t.Errorf("untouched field changed: medium = %v", got["medium"])
		}
		if got["slug"] != "piece" {
			t.Errorf("untouched field changed: slug = %v", got["slug"])
		}
		if got.NativeID() != created.NativeID() {
			t.Error("native id changed across update")
		}
		if got.PublicID() != id {
			t.Errorf("public id changed across update: %d -> %d", id, got.PublicID())
		}
	})
}

func TestPatchCannotChangeIdentity(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(FAQs)

		created, err := c.Create(ctx, Doc{"question": "Q", "answer": "A"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		id := created.PublicID()

		n, err := c.UpdateByID(ctx, id, Doc{"_id": "hijacked", "id": int64(42), "answer": "B"})
		if err != nil || n != 1 {
			t.Fatalf("UpdateByID: n=%d err=%v", n, err)
		}

		got, err := c.FindByID(ctx, id)
		if err != nil || got == nil {
			t.Fatalf("FindByID: doc=%v err=%v", got, err)
		}
		if got.NativeID() != created.NativeID() {
			t.Error("patch mutated native id")
		}
		if got.PublicID() != id {
			t.Error("patch mutated public id")
		}
		if got["answer"] != "B" {
			t.Errorf("answer = %v, want B", got["answer"])
		}
	})
}

func TestReplaceByIDDropsAbsentKeys(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(Artist)

		created, err := c.Create(ctx, Doc{"name": "A. Painter", "phone": "+1 555 0100"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		id := created.PublicID()

		n, err := c.ReplaceByID(ctx, id, Doc{"name": "A. Painter", "tagline": "new"})
		if err != nil || n != 1 {
			t.Fatalf("ReplaceByID: n=%d err=%v", n, err)
		}

		got, err := c.FindByID(ctx, id)
		if err != nil || got == nil {
			t.Fatalf("FindByID: doc=%v err=%v", got, err)
		}
		if _, ok := got["phone"]; ok {
			t.Error("key absent from the replacement survived")
		}
		if got["tagline"] != "new" {
			t.Errorf("tagline = %v, want new", got["tagline"])
		}
		if got.NativeID() != created.NativeID() || got.PublicID() != id {
			t.Error("replace changed identity fields")
		}

		// Absent id affects nothing.
		n, err = c.ReplaceByID(ctx, id+1, Doc{"name": "ghost"})
		if err != nil || n != 0 {
			t.Errorf("ReplaceByID on absent id: n=%d err=%v", n, err)
		}
	})
}

func TestDeleteByIDNonexistent(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(Artworks)

		first, err := c.Create(ctx, Doc{"slug": "keep-me"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}

		// An id no document hashes to.
		bogus := first.PublicID() + 1

		n, err := c.DeleteByID(ctx, bogus)
		if err != nil {
			t.Fatalf("DeleteByID returned error for absent id: %v", err)
		}
		if n != 0 {
			t.Errorf("DeleteByID affected %d, want 0", n)
		}

		// The unrelated record is still there.
		count, err := c.Count(ctx, nil)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if count != 1 {
			t.Errorf("collection has %d docs after bogus delete, want 1", count)
		}
	})
}

func TestDeleteByID(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(Artworks)

		created, err := c.Create(ctx, Doc{"slug": "ephemeral"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		n, err := c.DeleteByID(ctx, created.PublicID())
		if err != nil || n != 1 {
			t.Fatalf("DeleteByID: n=%d err=%v", n, err)
		}
		got, err := c.FindByID(ctx, created.PublicID())
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got != nil {
			t.Error("doc still resolvable after delete")
		}
	})
}

func TestSortAndLimit(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(FAQs)

		for _, d := range []Doc{
			{"question": "c", "order": 3},
			{"question": "a", "order": 1},
			{"question": "b", "order": 2},
		} {
			if _, err := c.Create(ctx, d); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}

		docs, err := c.Find(nil).Sort("order", false).All(ctx)
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		want := []string{"a", "b", "c"}
		if len(docs) != 3 {
			t.Fatalf("got %d docs, want 3", len(docs))
		}
		for i, q := range want {
			if docs[i]["question"] != q {
				t.Errorf("pos %d: question = %v, want %s", i, docs[i]["question"], q)
			}
		}

		limited, err := c.Find(nil).Sort("order", true).Limit(2).All(ctx)
		if err != nil {
			t.Fatalf("All limited: %v", err)
		}
		if len(limited) != 2 {
			t.Fatalf("limit 2 returned %d docs", len(limited))
		}
		if limited[0]["question"] != "c" || limited[1]["question"] != "b" {
			t.Errorf("descending limit 2 = %v,%v, want c,b", limited[0]["question"], limited[1]["question"])
		}
	})
}

func TestSortIsStableOnEqualKeys(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(FAQs)

		for _, q := range []string{"first", "second", "third"} {
			if _, err := c.Create(ctx, Doc{"question": q, "category": "same"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
		docs, err := c.Find(nil).Sort("category", false).All(ctx)
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		want := []string{"first", "second", "third"}
		for i, q := range want {
			if docs[i]["question"] != q {
				t.Errorf("equal sort keys reordered: pos %d = %v, want %s", i, docs[i]["question"], q)
			}
		}
	})
}

func TestCountWithFilter(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		c := st.Collection(Artworks)

		for i, cat := range []string{"original", "original", "commission"} {
			if _, err := c.Create(ctx, Doc{"slug": string(rune('a' + i)), "category": cat}); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
		n, err := c.Count(ctx, Filter{"category": "original"})
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 2 {
			t.Errorf("Count = %d, want 2", n)
		}
	})
}

func TestUnknownCollectionIsStorageError(t *testing.T) {
	withBackends(t, func(t *testing.T, st *Store) {
		_, err := st.Collection("bogus").Find(nil).All(context.Background())
		if err == nil {
			t.Fatal("expected error for unknown collection")
		}
		if _, ok := err.(*StorageError); !ok {
			t.Errorf("error type %T, want *StorageError", err)
		}
	})
}
