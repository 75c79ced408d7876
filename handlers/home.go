// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/namecloud/auth"
	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/people"
	"github.com/danielhkuo/namecloud/session"
	"github.com/danielhkuo/namecloud/web"
)

type HomeHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	catalog  *catalog.Catalog
	sessions session.Store
	pages    *web.Pages
}

func NewHomeHandler(db *sql.DB, cfg cliparse.Config, cat *catalog.Catalog, sessions session.Store, pages *web.Pages) *HomeHandler {
	return &HomeHandler{db: db, cfg: cfg, catalog: cat, sessions: sessions, pages: pages}
}

// Home handles GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(r)

	status := http.StatusOK
	if !h.fillPeople(r, &page) {
		status = http.StatusInternalServerError
	}
	h.respond(w, r, status, page)
}

// Vote handles POST /
// Accepts the person's name as a form field or JSON ("name").
func (h *HomeHandler) Vote(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(r)
	page.Results = true

	fields, err := middleware.BodyFields(r, "name")
	if err != nil {
		page.Error = "Invalid request body"
		h.fillPeople(r, &page)
		h.respond(w, r, http.StatusBadRequest, page)
		return
	}

	name := strings.TrimSpace(fields["name"])
	if name == "" {
		page.Error = models.UnknownPerson
		h.fillPeople(r, &page)
		h.respond(w, r, http.StatusBadRequest, page)
		return
	}

	person, err := people.FindByName(r.Context(), h.db, name)
	if errors.Is(err, sql.ErrNoRows) {
		page.Error = models.UnknownPerson
		h.fillPeople(r, &page)
		h.respond(w, r, http.StatusBadRequest, page)
		return
	}
	if err != nil {
		slog.Error("failed to look up person", "name", name, "error", err)
		page.Error = models.DatabaseError
		h.respond(w, r, http.StatusInternalServerError, page)
		return
	}

	if err := h.recordVote(r, person); err != nil {
		slog.Error("failed to record vote", "name", name, "error", err)
		page.Error = models.DatabaseError
		h.respond(w, r, http.StatusInternalServerError, page)
		return
	}

	slog.Info("vote recorded", "person", person.Name, "person_id", person.ID)

	status := http.StatusOK
	if !h.fillPeople(r, &page) {
		status = http.StatusInternalServerError
	}
	h.respond(w, r, status, page)
}

// recordVote stores the vote and its log row in one transaction
func (h *HomeHandler) recordVote(r *http.Request, person *people.Person) error {
	voteID, err := auth.GenerateID(16)
	if err != nil {
		return err
	}
	logID, err := auth.GenerateID(16)
	if err != nil {
		return err
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	now := time.Now().UTC()

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO vote (id, person_id, ip_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, voteID, person.ID, ipHash, now)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO vote_log (id, person_name, created_at)
		VALUES ($1, $2, $3)
	`, logID, person.Name, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (h *HomeHandler) newPage(r *http.Request) models.HomePage {
	page := models.HomePage{
		Categories: h.catalog.Names(),
		Category:   r.URL.Query().Get("category"),
	}

	username, err := currentUser(r, h.sessions)
	if err != nil {
		slog.Warn("session lookup failed", "error", err)
	}
	page.Username = username
	return page
}

// fillPeople loads the people list and the parallel name/count arrays the
// page shows. It reports false after a database error.
func (h *HomeHandler) fillPeople(r *http.Request, page *models.HomePage) bool {
	list, err := people.List(r.Context(), h.db, page.Category)
	if err != nil {
		slog.Error("failed to list people", "error", err)
		page.Error = models.DatabaseError
		return false
	}

	page.People = list
	page.OptionNames = make([]string, len(list))
	page.OptionCounts = make([]int, len(list))
	page.TotalVotes = 0
	for i, p := range list {
		page.OptionNames[i] = p.Name
		page.OptionCounts[i] = p.Votes
		page.TotalVotes += p.Votes
	}
	return true
}

func (h *HomeHandler) respond(w http.ResponseWriter, r *http.Request, status int, page models.HomePage) {
	if middleware.WantsRaw(r) {
		middleware.JSONResponse(w, status, page)
		return
	}
	if err := h.pages.Render(w, status, web.PageIndex, page); err != nil {
		slog.Error("failed to render page", "page", web.PageIndex, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
