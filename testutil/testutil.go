// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/namecloud/auth"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/db"
	"github.com/danielhkuo/namecloud/session"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir() and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		AdminKey:     TestAdminKey,
		IPHashSalt:   "test-ip-salt",
		SessionTTL:   time.Hour,
	}
}

// CreateTestPerson inserts a person and returns the ID
func CreateTestPerson(t *testing.T, conn *sql.DB, id int64, name, category string) int64 {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO people (id, name, category, bio, wiki_link)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, category, name+" bio", "https://en.wikipedia.org/wiki/"+name)
	if err != nil {
		t.Fatalf("Failed to create test person: %v", err)
	}

	return id
}

// CastTestVote records count votes for a person
func CastTestVote(t *testing.T, conn *sql.DB, personID int64, count int) {
	t.Helper()

	for range count {
		voteID, _ := auth.GenerateID(16)
		_, err := conn.Exec(`
			INSERT INTO vote (id, person_id, created_at)
			VALUES ($1, $2, $3)
		`, voteID, personID, time.Now().UTC())
		if err != nil {
			t.Fatalf("Failed to create test vote: %v", err)
		}
	}
}

// CreateTestLogEntry adds a vote log row at the given time
func CreateTestLogEntry(t *testing.T, conn *sql.DB, name string, at time.Time) {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO vote_log (id, person_name, created_at)
		VALUES ($1, $2, $3)
	`, id, name, at.UTC())
	if err != nil {
		t.Fatalf("Failed to create test log entry: %v", err)
	}
}

// CreateTestUser creates an account with a bcrypt-hashed password
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO app_user (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`, username, hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// AddTestUserName adds a name to a user's list
func AddTestUserName(t *testing.T, conn *sql.DB, username, name, category string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO user_name (username, name, category, added_at)
		VALUES ($1, $2, $3, $4)
	`, username, name, category, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to add test user name: %v", err)
	}
}

// CreateTestSession stores a session for username and returns its cookie
func CreateTestSession(t *testing.T, store session.Store, username string) *http.Cookie {
	t.Helper()

	sess := session.New(username, time.Hour)
	if err := store.Set(context.Background(), sess); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	// same name as middleware.SessionCookieName, which testutil cannot import
	return &http.Cookie{Name: "session_id", Value: sess.ID}
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
