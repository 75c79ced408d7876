// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/render"
	"github.com/danielhkuo/namecloud/session"
)

// Default canvas when the request does not size one
const (
	DefaultCanvasWidth  = 960
	DefaultCanvasHeight = 600
)

// Upper bounds on caller-supplied layout parameters
const (
	MaxCanvasSize = 4096
	MaxAttempts   = 1000
)

type CloudHandler struct {
	db       *sql.DB
	catalog  *catalog.Catalog
	sessions session.Store
	measurer cloud.Measurer
}

func NewCloudHandler(db *sql.DB, cat *catalog.Catalog, sessions session.Store, measurer cloud.Measurer) *CloudHandler {
	return &CloudHandler{db: db, catalog: cat, sessions: sessions, measurer: measurer}
}

// cloudRequest is the parsed query of a cloud endpoint
type cloudRequest struct {
	canvas   cloud.Canvas
	opts     cloud.Options
	seed     uint64
	category string
}

func parseCloudRequest(q url.Values, measurer cloud.Measurer) (cloudRequest, error) {
	req := cloudRequest{
		canvas:   cloud.Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		opts:     cloud.DefaultOptions(),
		seed:     rand.Uint64(),
		category: q.Get("category"),
	}
	if measurer != nil {
		req.opts.Measurer = measurer
	}

	floatParam := func(name string, dst *float64) error {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("invalid %s %q", name, v)
			}
			*dst = f
		}
		return nil
	}
	if err := floatParam("width", &req.canvas.Width); err != nil {
		return req, err
	}
	if err := floatParam("height", &req.canvas.Height); err != nil {
		return req, err
	}
	if err := floatParam("padding", &req.opts.Padding); err != nil {
		return req, err
	}
	if req.canvas.Width > MaxCanvasSize || req.canvas.Height > MaxCanvasSize {
		return req, fmt.Errorf("canvas larger than %dx%d", MaxCanvasSize, MaxCanvasSize)
	}

	if v := q.Get("attempts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid attempts %q", v)
		}
		if n > MaxAttempts {
			return req, fmt.Errorf("attempts above %d", MaxAttempts)
		}
		req.opts.MaxAttemptsPerItem = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed %q", v)
		}
		req.seed = n
	}
	return req, nil
}

// compute parses the request, loads the feed and lays it out. On failure it
// has already written the error response.
func (h *CloudHandler) compute(w http.ResponseWriter, r *http.Request) (cloudRequest, models.CloudResponse, bool) {
	req, err := parseCloudRequest(r.URL.Query(), h.measurer)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return req, models.CloudResponse{}, false
	}

	username, err := currentUser(r, h.sessions)
	if err != nil {
		slog.Warn("session lookup failed", "error", err)
	}

	source, feed, err := loadFeed(r.Context(), h.db, username, req.category)
	if err != nil {
		slog.Error("failed to load cloud feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return req, models.CloudResponse{}, false
	}

	res, err := cloud.Layout(cloudItems(feed), req.canvas, req.opts, cloud.NewRandom(req.seed))
	if errors.Is(err, cloud.ErrInvalidCanvas) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return req, models.CloudResponse{}, false
	}
	if err != nil {
		slog.Error("layout failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Layout failed")
		return req, models.CloudResponse{}, false
	}

	if len(res.Dropped) > 0 {
		slog.Debug("cloud items dropped", "dropped", len(res.Dropped), "placed", len(res.Placed))
	}

	return req, models.CloudResponse{
		Source:  source,
		Canvas:  req.canvas,
		Seed:    req.seed,
		Items:   res.Placed,
		Dropped: res.Dropped,
		Total:   len(feed),
	}, true
}

// Layout handles GET /api/cloud
func (h *CloudHandler) Layout(w http.ResponseWriter, r *http.Request) {
	_, resp, ok := h.compute(w, r)
	if !ok {
		return
	}
	if resp.Items == nil {
		resp.Items = []cloud.PlacedItem{}
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SVG handles GET /cloud.svg
func (h *CloudHandler) SVG(w http.ResponseWriter, r *http.Request) {
	req, resp, ok := h.compute(w, r)
	if !ok {
		return
	}

	svg := render.RenderSVG(req.canvas, resp.Items, render.WithPalette(h.catalog))
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cloud-Seed", strconv.FormatUint(resp.Seed, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

// PDF handles GET /cloud.pdf
// Labels link to their Wikipedia article.
func (h *CloudHandler) PDF(w http.ResponseWriter, r *http.Request) {
	req, resp, ok := h.compute(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := render.RenderPDF(&buf, req.canvas, resp.Items,
		render.WithPalette(h.catalog),
		render.WithLinks(render.ItemLink),
	)
	if err != nil {
		slog.Error("failed to render PDF", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="namecloud.pdf"`)
	w.Header().Set("X-Cloud-Seed", strconv.FormatUint(resp.Seed, 10))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
