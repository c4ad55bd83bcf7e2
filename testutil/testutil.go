// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/atelier/auth"
	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// NewTestStore returns a store over a fresh file backend in a temp
// directory, cleaned up with the test.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	backend, err := store.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	st := store.NewWithBackend(backend)
	t.Cleanup(func() { st.Close() })
	return st
}

// NewTestSessions returns a session table with a generous TTL.
func NewTestSessions() *auth.Sessions {
	return auth.NewSessions(time.Hour)
}

// CreateTestArtwork inserts an artwork and returns it with its ids
// assigned.
func CreateTestArtwork(t *testing.T, st *store.Store, slug, category string, featured bool) models.Artwork {
	t.Helper()
	created, err := content.NewArtworks(st).Create(context.Background(), models.Artwork{
		Title:        "Test " + slug,
		Slug:         slug,
		Description:  "A test artwork",
		Medium:       "Oil on canvas",
		Artform:      "Painting",
		CreationDate: "2025-01",
		Width:        50,
		Height:       40,
		Status:       models.StatusAvailable,
		Category:     category,
		Featured:     featured,
	})
	if err != nil {
		t.Fatalf("Failed to create test artwork: %v", err)
	}
	return created
}

// CreateTestUser inserts a user with a hashed password.
func CreateTestUser(t *testing.T, st *store.Store, email, password, role string) models.User {
	t.Helper()
	created, err := content.NewUsers(st).Create(context.Background(), models.CreateUserRequest{
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return created
}

// NewTestSession opens a session for a user and returns the bearer
// token.
func NewTestSession(t *testing.T, sessions *auth.Sessions, user models.User) string {
	t.Helper()
	sess, err := sessions.Create(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return sess.Token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
