// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/namecloud/auth"
	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/session"
)

// SeedNames is the number of catalog names a new account starts with
const SeedNames = 50

type AccountHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	catalog  *catalog.Catalog
	sessions session.Store
	rng      catalog.Random
}

// NewAccountHandler creates an AccountHandler. A nil rng uses
// catalog.GlobalRandom; other sources must be safe for concurrent use.
func NewAccountHandler(db *sql.DB, cfg cliparse.Config, cat *catalog.Catalog, sessions session.Store, rng catalog.Random) *AccountHandler {
	if rng == nil {
		rng = catalog.GlobalRandom
	}
	return &AccountHandler{db: db, cfg: cfg, catalog: cat, sessions: sessions, rng: rng}
}

func (h *AccountHandler) credentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	fields, err := middleware.BodyFields(r, "username", "password")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return "", "", false
	}
	if fields["username"] == "" || fields["password"] == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing username or password")
		return "", "", false
	}
	username, err := auth.NormalizeUsername(fields["username"])
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid username")
		return "", "", false
	}
	return username, fields["password"], true
}

// Register handles POST /api/register
// Creates the account and seeds it with random names from the catalog.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := h.credentials(w, r)
	if !ok {
		return
	}

	var exists int
	err := h.db.QueryRowContext(r.Context(), "SELECT 1 FROM app_user WHERE username = $1", username).Scan(&exists)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password is too long")
		return
	}
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	names := h.catalog.RandomNames(SeedNames, h.rng)
	now := time.Now().UTC()

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO app_user (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`, username, hash, now)
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	for i, n := range names {
		// keep insertion order visible through added_at
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO user_name (username, name, category, added_at)
			VALUES ($1, $2, $3, $4)
		`, username, n.Name, n.Category, now.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			slog.Error("failed to seed names", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "username", username, "names", len(names))

	middleware.JSONResponse(w, http.StatusOK, models.RegisterResponse{
		Message:  "Registration successful",
		Username: username,
		Names:    len(names),
	})
}

// Login handles POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := h.credentials(w, r)
	if !ok {
		return
	}

	var hash string
	err := h.db.QueryRowContext(r.Context(), "SELECT password_hash FROM app_user WHERE username = $1", username).Scan(&hash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if err != nil || auth.CheckPassword(hash, password) != nil {
		slog.Info("login failed", "username", username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	sess := session.New(username, h.cfg.SessionTTL)
	if err := h.sessions.Set(r.Context(), sess); err != nil {
		slog.Error("failed to store session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	middleware.SetSessionCookie(w, sess)
	slog.Info("user logged in", "username", username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message:   "Login successful",
		Username:  username,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Logout handles GET and POST /api/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := middleware.SessionID(r); id != "" {
		if err := h.sessions.Delete(r.Context(), id); err != nil {
			slog.Warn("failed to delete session", "error", err)
		}
	}

	middleware.ClearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logout successful"})
}
