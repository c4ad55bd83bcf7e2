// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session token")
)

// DefaultSessionTTL is how long a login stays valid without activity.
const DefaultSessionTTL = 24 * time.Hour

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewToken creates a random secure session token.
func NewToken() (string, error) {
	b := make([]byte, 24) // 192 bits of entropy
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// Session is one authenticated login.
type Session struct {
	Token     string
	UserID    int64
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Sessions is the in-process session table. The service is
// single-process (see the rebuild orchestrator for the same
// assumption), so no external session store is involved.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	byToken map[string]Session
	now     func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		ttl:     ttl,
		byToken: make(map[string]Session),
		now:     time.Now,
	}
}

// Create opens a session for a user and returns it with a fresh token.
func (s *Sessions) Create(userID int64, email, role string) (Session, error) {
	token, err := NewToken()
	if err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.byToken[token] = sess
	return sess, nil
}

// Get returns the live session for a token. Expired sessions are
// dropped on access.
func (s *Sessions) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byToken[token]
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.byToken, token)
		return Session{}, false
	}
	return sess, true
}

// Delete ends a single session (logout).
func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}

// DeleteForUser ends every session belonging to a user, e.g. when the
// account is deleted or its password changes.
func (s *Sessions) DeleteForUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.byToken {
		if sess.UserID == userID {
			delete(s.byToken, token)
		}
	}
}
