// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	s := New("ada", time.Hour)

	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", s.ID, err)
	}
	if s.Username != "ada" {
		t.Errorf("Username = %q, want ada", s.Username)
	}
	if s.IsExpired() {
		t.Error("new session should not be expired")
	}
	if got := s.ExpiresAt.Sub(s.CreatedAt); got != time.Hour {
		t.Errorf("lifetime = %v, want 1h", got)
	}

	if other := New("ada", time.Hour); other.ID == s.ID {
		t.Error("session IDs should be unique")
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	s := New("ada", 0)
	if got := s.ExpiresAt.Sub(s.CreatedAt); got != DefaultTTL {
		t.Errorf("lifetime = %v, want %v", got, DefaultTTL)
	}
}

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, "does-not-exist")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set get delete", func(t *testing.T) {
		s := New("grace", time.Hour)
		if err := store.Set(ctx, s); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := store.Get(ctx, s.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Username != "grace" {
			t.Errorf("Username = %q, want grace", got.Username)
		}

		if err := store.Delete(ctx, s.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("delete unknown", func(t *testing.T) {
		if err := store.Delete(ctx, "never-stored"); err != nil {
			t.Errorf("Delete of unknown id: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("alan", time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Set(ctx, s); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
	// expired entries are dropped on read
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second read, got %v", err)
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	live := New("live", time.Hour)
	stale := New("stale", time.Hour)
	stale.ExpiresAt = time.Now().Add(-time.Second)
	_ = store.Set(ctx, live)
	_ = store.Set(ctx, stale)

	if n := store.Cleanup(); n != 1 {
		t.Errorf("Cleanup removed %d, want 1", n)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("ada", time.Hour)
	_ = store.Set(ctx, s)
	s.Username = "changed"

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "ada" {
		t.Errorf("stored session changed through caller pointer: %q", got.Username)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := NewRedisStore(ctx, addr)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)

	expired := New("old", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Second)
	if err := store.Set(ctx, expired); !errors.Is(err, ErrExpired) {
		t.Errorf("Set of expired session: got %v, want ErrExpired", err)
	}
}
