package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cliparse"
	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/db"
	"github.com/danielhkuo/namecloud/info"
	"github.com/danielhkuo/namecloud/middleware"
	"github.com/danielhkuo/namecloud/router"
	"github.com/danielhkuo/namecloud/session"
)

// sessionSweep is how often expired in-memory sessions are dropped
const sessionSweep = 10 * time.Minute

func main() {
	var err error

	// .env first so flags and real env vars win
	if err := cliparse.LoadEnv(""); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           charmlog.Level(cfg.LogLevel),
	})))

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("catalog load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := router.Services{Catalog: cat}

	// Sessions live in Redis when configured, in memory otherwise
	if cfg.RedisAddr != "" {
		store, err := session.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			slog.Error("session store unavailable", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		svc.Sessions = store
		slog.Info("Using Redis sessions", "addr", cfg.RedisAddr)
	} else {
		store := session.NewMemoryStore()
		go sweepSessions(ctx, store)
		svc.Sessions = store
	}

	var infoOpts []info.Option
	if cfg.CacheDir != "" {
		cache, err := info.NewCache(cfg.CacheDir, info.DefaultCacheTTL)
		if err != nil {
			slog.Error("info cache unavailable", "error", err)
			os.Exit(1)
		}
		infoOpts = append(infoOpts, info.WithCache(cache))
	}
	svc.Info = info.NewClient(cat, infoOpts...)

	measurer, err := cloud.NewFontMeasurer()
	if err != nil {
		slog.Warn("font measurer unavailable, using approximate widths", "error", err)
	} else {
		defer measurer.Close()
		svc.Measurer = measurer
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, svc)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func sweepSessions(ctx context.Context, store *session.MemoryStore) {
	ticker := time.NewTicker(sessionSweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Cleanup(); n > 0 {
				slog.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
