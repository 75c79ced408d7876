// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/info"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/people"
)

// loadFeed returns the records the cloud is built from: the user's own
// list when username is set, the people table otherwise.
func loadFeed(ctx context.Context, db *sql.DB, username, category string) (string, []models.FeedItem, error) {
	if username != "" {
		names, err := userNames(ctx, db, username, category)
		if err != nil {
			return "", nil, err
		}
		return models.SourceUser, names, nil
	}

	list, err := people.List(ctx, db, category)
	if err != nil {
		return "", nil, err
	}
	feed := make([]models.FeedItem, len(list))
	for i, p := range list {
		feed[i] = models.FeedItem{
			Name:     p.Name,
			Category: p.Category,
			WikiLink: p.WikiLink,
			Votes:    p.Votes,
		}
		if feed[i].WikiLink == "" {
			feed[i].WikiLink = info.WikiLink(p.Name)
		}
	}
	return models.SourcePeople, feed, nil
}

// userNames lists a user's names in the order they were added.
func userNames(ctx context.Context, db *sql.DB, username, category string) ([]models.FeedItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name, category
		FROM user_name
		WHERE username = $1
		  AND (CAST($2 AS TEXT) = '' OR category = CAST($2 AS TEXT))
		ORDER BY added_at, name
	`, username, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	names := []models.FeedItem{}
	for rows.Next() {
		var item models.FeedItem
		if err := rows.Scan(&item.Name, &item.Category); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		item.WikiLink = info.WikiLink(item.Name)
		names = append(names, item)
	}
	return names, rows.Err()
}

// cloudItems turns a feed into layout items. Votes drive the size once
// anyone has been voted for; until then every label gets a random size.
func cloudItems(feed []models.FeedItem) []cloud.Item {
	voted := false
	for _, f := range feed {
		if f.Votes > 0 {
			voted = true
			break
		}
	}

	items := make([]cloud.Item, len(feed))
	for i, f := range feed {
		items[i] = cloud.Item{Label: f.Name, Category: f.Category, Link: f.WikiLink}
		if voted {
			items[i].Weight = float64(f.Votes + 1)
		}
	}
	return items
}

type PeopleHandler struct {
	db      *sql.DB
	catalog *catalog.Catalog
}

func NewPeopleHandler(db *sql.DB, cat *catalog.Catalog) *PeopleHandler {
	return &PeopleHandler{db: db, catalog: cat}
}

// Feed handles GET /api/people
func (h *PeopleHandler) Feed(w http.ResponseWriter, r *http.Request) {
	_, feed, err := loadFeed(r.Context(), h.db, "", r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("failed to load people", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, feed)
}

// Categories handles GET /api/categories
func (h *PeopleHandler) Categories(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.catalog.Names())
}

// Health handles GET /health
func (h *PeopleHandler) Health(w http.ResponseWriter, r *http.Request) {
	var count int
	if err := h.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		slog.Error("health check failed", "error", err)
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok", People: count})
}
