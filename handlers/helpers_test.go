// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/session"
	"github.com/danielhkuo/namecloud/testutil"
	"github.com/danielhkuo/namecloud/web"
)

// testEnv bundles the dependencies every handler test needs
type testEnv struct {
	db       *sql.DB
	cfg      cliparse.Config
	catalog  *catalog.Catalog
	sessions *session.MemoryStore
	pages    *web.Pages
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		db:       testutil.SetupTestDB(t),
		cfg:      testutil.GetTestConfig(),
		catalog:  catalog.Default(),
		sessions: session.NewMemoryStore(),
		pages:    web.MustParse(),
	}
}

func (e *testEnv) home() *HomeHandler {
	return NewHomeHandler(e.db, e.cfg, e.catalog, e.sessions, e.pages)
}

func (e *testEnv) admin() *AdminHandler {
	return NewAdminHandler(e.db, e.cfg, e.pages)
}

func (e *testEnv) accounts() *AccountHandler {
	return NewAccountHandler(e.db, e.cfg, e.catalog, e.sessions, cloud.NewRandom(1))
}

func (e *testEnv) names() *NamesHandler {
	return NewNamesHandler(e.db, e.catalog, e.sessions)
}

func (e *testEnv) clouds() *CloudHandler {
	return NewCloudHandler(e.db, e.catalog, e.sessions, cloud.ApproxMeasurer{})
}

// seedPeople adds a few people across categories
func (e *testEnv) seedPeople(t *testing.T) {
	t.Helper()
	testutil.CreateTestPerson(t, e.db, 1, "Marie Curie", "Scientists")
	testutil.CreateTestPerson(t, e.db, 2, "Albert Einstein", "Scientists")
	testutil.CreateTestPerson(t, e.db, 3, "Frida Kahlo", "Artists")
	testutil.CreateTestPerson(t, e.db, 4, "Socrates", "Thinkers")
}

// formRequest builds a form-encoded POST
func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
