// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session tracks signed-in users.
//
// A session is an opaque UUID handed to the browser in the session_id
// cookie. Two stores are provided:
//   - MemoryStore: process-local, the default
//   - RedisStore: shared between server instances
//
// Usage:
//
//	sess := session.New("ada", session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
//	    // not signed in
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session has outlived its TTL.
	ErrExpired = errors.New("session expired")
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// Session binds an ID to a username.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the time left before the session expires.
func (s *Session) TTL() time.Duration {
	return time.Until(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	// Get returns ErrNotFound for unknown IDs and ErrExpired for stale ones.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// New creates a session for username with a random ID.
func New(username string, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
