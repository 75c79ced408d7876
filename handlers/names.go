// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/session"
)

type NamesHandler struct {
	db       *sql.DB
	catalog  *catalog.Catalog
	sessions session.Store
}

func NewNamesHandler(db *sql.DB, cat *catalog.Catalog, sessions session.Store) *NamesHandler {
	return &NamesHandler{db: db, catalog: cat, sessions: sessions}
}

// requireUser writes 401 and returns false for anonymous requests
func (h *NamesHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, err := currentUser(r, h.sessions)
	if err != nil {
		slog.Error("session lookup failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Session error")
		return "", false
	}
	if username == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return "", false
	}
	return username, true
}

// List handles GET /api/names
func (h *NamesHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	names, err := userNames(r.Context(), h.db, username, r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("failed to list names", "username", username, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, names)
}

// Add handles POST /api/names
func (h *NamesHandler) Add(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req models.AddNameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing name or category")
		return
	}
	if !h.catalog.Has(req.Category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid category")
		return
	}

	// duplicates are ignored
	var exists int
	err := h.db.QueryRowContext(r.Context(), `
		SELECT 1 FROM user_name
		WHERE username = $1 AND name = $2 AND category = $3
	`, username, req.Name, req.Category).Scan(&exists)
	if err == sql.ErrNoRows {
		_, err = h.db.ExecContext(r.Context(), `
			INSERT INTO user_name (username, name, category, added_at)
			VALUES ($1, $2, $3, $4)
		`, username, req.Name, req.Category, time.Now().UTC())
		if err == nil {
			slog.Info("name added", "username", username, "name", req.Name, "category", req.Category)
		}
	}
	if err != nil {
		slog.Error("failed to add name", "username", username, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Name added successfully"})
}

// Remove handles DELETE /api/names/{name}
// Removes every entry with that name, whatever its category.
func (h *NamesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name not specified")
		return
	}

	res, err := h.db.ExecContext(r.Context(), `
		DELETE FROM user_name WHERE username = $1 AND name = $2
	`, username, name)
	if err != nil {
		slog.Error("failed to remove name", "username", username, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	removed, _ := res.RowsAffected()
	slog.Info("name removed", "username", username, "name", name, "rows", removed)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Name removed successfully"})
}
