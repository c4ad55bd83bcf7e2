// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openFileStore(t *testing.T, dir string) *Store {
	t.Helper()
	backend, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	return NewWithBackend(backend)
}

func TestFileIdentityStableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st := openFileStore(t, dir)
	created, err := st.Collection(Artworks).Create(ctx, Doc{"slug": "morning-light", "title": "Morning Light"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	native, public := created.NativeID(), created.PublicID()
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2 := openFileStore(t, dir)
	defer st2.Close()
	got, err := st2.Collection(Artworks).FindOne(ctx, Filter{"slug": "morning-light"})
	if err != nil {
		t.Fatalf("FindOne after reopen: %v", err)
	}
	if got == nil {
		t.Fatal("doc lost across reopen")
	}
	if got.NativeID() != native {
		t.Errorf("native id changed across reopen: %q -> %q", native, got.NativeID())
	}
	if got.PublicID() != public {
		t.Errorf("public id changed across reopen: %d -> %d", public, got.PublicID())
	}
	byID, err := st2.Collection(Artworks).FindByID(ctx, public)
	if err != nil {
		t.Fatalf("FindByID after reopen: %v", err)
	}
	if byID == nil {
		t.Error("public id no longer resolves after reopen")
	}
}

func TestFilePersistsNumericIDOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st := openFileStore(t, dir)
	defer st.Close()
	if _, err := st.Collection(FAQs).Create(ctx, Doc{"question": "Q"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "faqs.db"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"_id":`) {
		t.Error("log is missing the native key field")
	}
	if !strings.Contains(string(raw), `"id":`) {
		t.Error("log is missing the persisted numeric id field")
	}
}

func TestFileRemoveWritesTombstoneThenCompacts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "artworks.db")

	st := openFileStore(t, dir)
	c := st.Collection(Artworks)
	if _, err := c.Create(ctx, Doc{"slug": "keep"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	doomed, err := c.Create(ctx, Doc{"slug": "drop"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n, err := c.DeleteByID(ctx, doomed.PublicID()); err != nil || n != 1 {
		t.Fatalf("DeleteByID: n=%d err=%v", n, err)
	}

	// The delete is an appended tombstone, not an in-place rewrite.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), deletedField) {
		t.Error("delete left no tombstone in the log")
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening compacts; the tombstone and dead doc are gone.
	st2 := openFileStore(t, dir)
	defer st2.Close()
	docs, err := st2.Collection(Artworks).Find(nil).All(ctx)
	if err != nil {
		t.Fatalf("All after reopen: %v", err)
	}
	if len(docs) != 1 || docs[0]["slug"] != "keep" {
		t.Fatalf("after compaction got %v, want only the kept doc", docs)
	}
	raw, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read compacted log: %v", err)
	}
	if strings.Contains(string(raw), deletedField) {
		t.Error("tombstone survived compaction")
	}
	if got := strings.Count(string(raw), "\n"); got != 1 {
		t.Errorf("compacted log has %d lines, want 1", got)
	}
}

func TestFileSkipsTornTrailingLine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st := openFileStore(t, dir)
	if _, err := st.Collection(FAQs).Create(ctx, Doc{"question": "intact"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Simulate a crash mid-append.
	f, err := os.OpenFile(filepath.Join(dir, "faqs.db"), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString(`{"_id":"torn`); err != nil {
		t.Fatalf("append torn line: %v", err)
	}
	f.Close()

	st2 := openFileStore(t, dir)
	defer st2.Close()
	docs, err := st2.Collection(FAQs).Find(nil).All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(docs) != 1 || docs[0]["question"] != "intact" {
		t.Fatalf("got %v, want only the intact doc", docs)
	}
}

func TestFilePreservesInsertionOrderAcrossReplace(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st := openFileStore(t, dir)
	defer st.Close()
	c := st.Collection(FAQs)

	for _, q := range []string{"one", "two", "three"} {
		if _, err := c.Create(ctx, Doc{"question": q}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if n, err := c.UpdateOne(ctx, Filter{"question": "two"}, Doc{"answer": "updated"}); err != nil || n != 1 {
		t.Fatalf("UpdateOne: n=%d err=%v", n, err)
	}

	docs, err := c.Find(nil).All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	want := []string{"one", "two", "three"}
	for i, q := range want {
		if docs[i]["question"] != q {
			t.Errorf("pos %d: question = %v, want %s", i, docs[i]["question"], q)
		}
	}
}
