// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/handlers"
	"github.com/danielhkuo/namecloud/info"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/session"
	"github.com/danielhkuo/namecloud/web"
)

// Services are the shared dependencies the handlers are built from.
// Zero fields get a default.
type Services struct {
	Sessions session.Store
	Catalog  *catalog.Catalog
	Info     *info.Client
	Measurer cloud.Measurer
	Pages    *web.Pages
}

func (s Services) withDefaults() Services {
	if s.Sessions == nil {
		s.Sessions = session.NewMemoryStore()
	}
	if s.Catalog == nil {
		s.Catalog = catalog.Default()
	}
	if s.Info == nil {
		s.Info = info.NewClient(s.Catalog)
	}
	if s.Measurer == nil {
		s.Measurer = cloud.ApproxMeasurer{}
	}
	if s.Pages == nil {
		s.Pages = web.MustParse()
	}
	return s
}

func NewRouter(db *sql.DB, cfg cliparse.Config, svc Services) *http.ServeMux {
	svc = svc.withDefaults()
	mux := http.NewServeMux()

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(db, cfg, svc.Catalog, svc.Sessions, svc.Pages)
	adminHandler := handlers.NewAdminHandler(db, cfg, svc.Pages)
	accountHandler := handlers.NewAccountHandler(db, cfg, svc.Catalog, svc.Sessions, nil)
	namesHandler := handlers.NewNamesHandler(db, svc.Catalog, svc.Sessions)
	cloudHandler := handlers.NewCloudHandler(db, svc.Catalog, svc.Sessions, svc.Measurer)
	infoHandler := handlers.NewInfoHandler(db, svc.Catalog, svc.Info)
	peopleHandler := handlers.NewPeopleHandler(db, svc.Catalog)

	// Health check
	mux.HandleFunc("GET /health", peopleHandler.Health)

	// Pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(homeHandler.Home))
	mux.HandleFunc("POST /{$}", middleware.WithLogging(homeHandler.Vote))
	mux.HandleFunc("GET /logs", middleware.WithLogging(adminHandler.Logs))
	mux.HandleFunc("POST /reset", middleware.WithLogging(adminHandler.Reset))
	mux.Handle("GET /static/", web.Static())

	// Accounts
	mux.HandleFunc("POST /api/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /api/logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("POST /api/logout", middleware.WithLogging(accountHandler.Logout))

	// Personal name lists (signed in)
	mux.HandleFunc("GET /api/names", middleware.WithLogging(namesHandler.List))
	mux.HandleFunc("POST /api/names", middleware.WithLogging(namesHandler.Add))
	mux.HandleFunc("DELETE /api/names/{name}", middleware.WithLogging(namesHandler.Remove))

	// People and overlays
	mux.HandleFunc("GET /api/categories", middleware.WithLogging(peopleHandler.Categories))
	mux.HandleFunc("GET /api/people", middleware.WithLogging(peopleHandler.Feed))
	mux.HandleFunc("GET /api/people/{name}/info", middleware.WithLogging(infoHandler.Get))

	// Clouds
	mux.HandleFunc("GET /api/cloud", middleware.WithLogging(cloudHandler.Layout))
	mux.HandleFunc("GET /cloud.svg", middleware.WithLogging(cloudHandler.SVG))
	mux.HandleFunc("GET /cloud.pdf", middleware.WithLogging(cloudHandler.PDF))

	return mux
}
