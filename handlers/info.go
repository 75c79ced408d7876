// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/info"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/people"
)

type InfoHandler struct {
	db      *sql.DB
	catalog *catalog.Catalog
	client  *info.Client
}

func NewInfoHandler(db *sql.DB, cat *catalog.Catalog, client *info.Client) *InfoHandler {
	return &InfoHandler{db: db, catalog: cat, client: client}
}

// Get handles GET /api/people/{name}/info
// The category comes from the people table, then ?category=, then the
// catalog's seed names.
func (h *InfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var resp models.InfoResponse
	category := r.URL.Query().Get("category")

	person, err := people.FindByName(r.Context(), h.db, name)
	switch {
	case err == nil:
		if person.Category != "" {
			category = person.Category
		}
		resp.Bio = person.Bio
		resp.Votes = person.Votes

		quotes, err := people.Quotes(r.Context(), h.db, person.ID)
		if err != nil {
			slog.Warn("failed to load quotes", "name", name, "error", err)
		}
		resp.Quotes = quotes
	case errors.Is(err, sql.ErrNoRows):
	default:
		slog.Error("failed to look up person", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if category == "" {
		category, _ = h.catalog.CategoryOf(name)
	}

	overlay, err := h.client.Lookup(r.Context(), name, category)
	if errors.Is(err, info.ErrEmptyName) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if err != nil {
		slog.Error("info lookup failed", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Info lookup failed")
		return
	}

	resp.Info = overlay
	middleware.JSONResponse(w, http.StatusOK, resp)
}
