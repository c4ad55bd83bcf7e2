// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/testutil"
)

func TestPathID(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-7", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/api/artworks/1", nil)
		r.SetPathValue("id", tc.raw)
		id, ok := pathID(r)
		if id != tc.want || ok != tc.ok {
			t.Errorf("pathID(%q) = %d, %v; want %d, %v", tc.raw, id, ok, tc.want, tc.ok)
		}
	}
}

func TestArtworkListValidatesFilters(t *testing.T) {
	st := testutil.NewTestStore(t)
	h := NewArtworkHandler(content.NewArtworks(st))

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest("GET", "/api/artworks?category=bogus", nil, nil))
	testutil.AssertStatus(t, w, 400)

	w = httptest.NewRecorder()
	h.List(w, testutil.MakeRequest("GET", "/api/artworks?status=bogus", nil, nil))
	testutil.AssertStatus(t, w, 400)

	testutil.CreateTestArtwork(t, st, "front", models.CategoryOriginal, true)
	testutil.CreateTestArtwork(t, st, "back", models.CategoryOriginal, false)

	w = httptest.NewRecorder()
	h.List(w, testutil.MakeRequest("GET", "/api/artworks?featured=true", nil, nil))
	testutil.AssertStatus(t, w, 200)
	var listed []models.Artwork
	testutil.AssertJSON(t, w, &listed)
	if len(listed) != 1 || listed[0].Slug != "front" {
		t.Errorf("featured filter returned %+v", listed)
	}
}

func TestArtworkCreateHandler(t *testing.T) {
	st := testutil.NewTestStore(t)
	h := NewArtworkHandler(content.NewArtworks(st))

	// Malformed body.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/artworks", strings.NewReader("{not json"))
	h.Create(w, r)
	testutil.AssertStatus(t, w, 400)

	// Missing required fields.
	w = httptest.NewRecorder()
	h.Create(w, testutil.MakeRequest("POST", "/api/artworks", models.Artwork{Slug: "untitled"}, nil))
	testutil.AssertStatus(t, w, 400)

	body := models.Artwork{
		Title:    "Quiet Harbor",
		Slug:     "quiet-harbor",
		Status:   models.StatusAvailable,
		Category: models.CategoryOriginal,
	}
	w = httptest.NewRecorder()
	h.Create(w, testutil.MakeRequest("POST", "/api/artworks", body, nil))
	testutil.AssertStatus(t, w, 201)
	var created models.Artwork
	testutil.AssertJSON(t, w, &created)
	if created.ID <= 0 {
		t.Errorf("created artwork id = %d", created.ID)
	}

	// Duplicate slug.
	w = httptest.NewRecorder()
	h.Create(w, testutil.MakeRequest("POST", "/api/artworks", body, nil))
	testutil.AssertStatus(t, w, 409)
}

func TestArtworkBySlugAndRelated(t *testing.T) {
	st := testutil.NewTestStore(t)
	h := NewArtworkHandler(content.NewArtworks(st))

	testutil.CreateTestArtwork(t, st, "anchor", models.CategoryOriginal, false)
	testutil.CreateTestArtwork(t, st, "sibling", models.CategoryOriginal, false)

	w := httptest.NewRecorder()
	r := testutil.MakeRequest("GET", "/api/artworks/slug/anchor", nil, nil)
	r.SetPathValue("slug", "anchor")
	h.BySlug(w, r)
	testutil.AssertStatus(t, w, 200)
	var got models.Artwork
	testutil.AssertJSON(t, w, &got)
	if got.Slug != "anchor" {
		t.Errorf("slug = %q", got.Slug)
	}

	w = httptest.NewRecorder()
	r = testutil.MakeRequest("GET", "/api/artworks/slug/ghost", nil, nil)
	r.SetPathValue("slug", "ghost")
	h.BySlug(w, r)
	testutil.AssertStatus(t, w, 404)

	w = httptest.NewRecorder()
	r = testutil.MakeRequest("GET", "/api/artworks/slug/anchor/related", nil, nil)
	r.SetPathValue("slug", "anchor")
	h.Related(w, r)
	testutil.AssertStatus(t, w, 200)
	var related []models.Artwork
	testutil.AssertJSON(t, w, &related)
	if len(related) != 1 || related[0].Slug != "sibling" {
		t.Errorf("related = %+v", related)
	}
}

func TestArtworkUpdateHandler(t *testing.T) {
	st := testutil.NewTestStore(t)
	h := NewArtworkHandler(content.NewArtworks(st))
	created := testutil.CreateTestArtwork(t, st, "editable", models.CategoryOriginal, false)

	// Non-numeric id.
	w := httptest.NewRecorder()
	r := testutil.MakeRequest("PUT", "/api/artworks/abc", map[string]any{"title": "x"}, nil)
	r.SetPathValue("id", "abc")
	h.Update(w, r)
	testutil.AssertStatus(t, w, 400)

	// Invalid status in the patch.
	w = httptest.NewRecorder()
	r = testutil.MakeRequest("PUT", "/api/artworks/1", map[string]any{"status": "vaporized"}, nil)
	r.SetPathValue("id", "1")
	h.Update(w, r)
	testutil.AssertStatus(t, w, 400)

	// Negative dimension in the patch.
	w = httptest.NewRecorder()
	r = testutil.MakeRequest("PUT", "/api/artworks/1", map[string]any{"width": -5}, nil)
	r.SetPathValue("id", strconv.FormatInt(created.ID, 10))
	h.Update(w, r)
	testutil.AssertStatus(t, w, 400)

	// Valid patch.
	w = httptest.NewRecorder()
	r = testutil.MakeRequest("PUT", "/api/artworks/1", map[string]any{"title": "Edited"}, nil)
	r.SetPathValue("id", strconv.FormatInt(created.ID, 10))
	h.Update(w, r)
	testutil.AssertStatus(t, w, 200)
	var updated models.Artwork
	testutil.AssertJSON(t, w, &updated)
	if updated.Title != "Edited" {
		t.Errorf("title = %q", updated.Title)
	}

	// Unknown id.
	w = httptest.NewRecorder()
	r = testutil.MakeRequest("PUT", "/api/artworks/999", map[string]any{"title": "x"}, nil)
	r.SetPathValue("id", strconv.FormatInt(created.ID+1, 10))
	h.Update(w, r)
	testutil.AssertStatus(t, w, 404)
}

func TestArtworkDeleteHandler(t *testing.T) {
	st := testutil.NewTestStore(t)
	h := NewArtworkHandler(content.NewArtworks(st))
	created := testutil.CreateTestArtwork(t, st, "doomed", models.CategoryOriginal, false)

	w := httptest.NewRecorder()
	r := testutil.MakeRequest("DELETE", "/api/artworks/1", nil, nil)
	r.SetPathValue("id", strconv.FormatInt(created.ID, 10))
	h.Delete(w, r)
	testutil.AssertStatus(t, w, 204)

	w = httptest.NewRecorder()
	r = testutil.MakeRequest("DELETE", "/api/artworks/1", nil, nil)
	r.SetPathValue("id", strconv.FormatInt(created.ID, 10))
	h.Delete(w, r)
	testutil.AssertStatus(t, w, 404)
}
