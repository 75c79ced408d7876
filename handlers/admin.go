// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/namecloud/auth"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/web"
)

// LogLimit is the number of vote log entries the admin page shows
const LogLimit = 20

type AdminHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	pages *web.Pages
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, pages *web.Pages) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, pages: pages}
}

// Logs handles GET /logs
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	var page models.AdminPage

	history, err := recentLogs(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load vote log", "error", err)
		page.Error = models.DatabaseError
		h.respond(w, r, http.StatusInternalServerError, page)
		return
	}
	page.OptionHistory = history
	h.respond(w, r, http.StatusOK, page)
}

// Reset handles POST /reset
// Clears the vote log when the submitted key matches the admin secret.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var page models.AdminPage

	var key string
	if fields, err := middleware.BodyFields(r, "key"); err == nil {
		key = fields["key"]
	}

	if err := auth.ValidateAdminKey(key, h.cfg.AdminKey); err != nil {
		slog.Warn("admin reset rejected", "remote", middleware.GetClientIP(r))

		page.Failed = models.InvalidCredentials
		history, err := recentLogs(r.Context(), h.db)
		if err != nil {
			slog.Error("failed to load vote log", "error", err)
			page.Error = models.DatabaseError
		}
		page.OptionHistory = history
		h.respond(w, r, http.StatusUnauthorized, page)
		return
	}

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM vote_log")
	if err != nil {
		slog.Error("failed to clear vote log", "error", err)
		page.Error = models.DatabaseError
		h.respond(w, r, http.StatusInternalServerError, page)
		return
	}
	cleared, _ := res.RowsAffected()
	slog.Info("vote log cleared", "entries", cleared)

	page.OptionHistory = []models.LogEntry{}
	h.respond(w, r, http.StatusOK, page)
}

// recentLogs returns the newest LogLimit entries, newest first
func recentLogs(ctx context.Context, db *sql.DB) ([]models.LogEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT person_name, created_at
		FROM vote_log
		ORDER BY created_at DESC, id
		LIMIT $1
	`, LogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote log: %w", err)
	}
	defer rows.Close()

	history := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.Choice, &entry.Time); err != nil {
			return nil, fmt.Errorf("failed to scan vote log: %w", err)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, status int, page models.AdminPage) {
	if middleware.WantsRaw(r) {
		middleware.JSONResponse(w, status, page)
		return
	}
	if err := h.pages.Render(w, status, web.PageAdmin, page); err != nil {
		slog.Error("failed to render page", "page", web.PageAdmin, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
