// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the namecloud server.

namecloud shows a word cloud of people's names. Visitors vote for a
favourite, signed-in users keep their own list of names, and clicking a
name opens an overlay with a Wikipedia summary, a quote and search links.

# Starting the Server

With no configuration the server uses a SQLite file under .data/:

	go run .

Or with flags:

	go run . -p 3000 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first; flags and real
environment variables win over it.

# Configuration

  - PORT (-p): Server port (default: 3000)
  - DATABASE_URL (-d): SQLite file URL or PostgreSQL connection string
  - DATABASE_TYPE (-t): sqlite or postgres
  - ADMIN_KEY (--admin-key): Key for POST /reset; unset refuses every reset
  - IP_HASH_SALT (--ip-salt): Salt for stored voter IP hashes
  - CATALOG_PATH (--catalog): Category catalog TOML (default: built-in)
  - CACHE_DIR (--cache-dir): Cache for Wikipedia and Wikiquote lookups
  - REDIS_ADDR (--redis): Redis sessions instead of in-memory
  - SESSION_TTL (--session-ttl): Session lifetime
  - LOG_LEVEL (--log-level): debug, info, warn or error

# Architecture

  - cloud: Rejection-sampling layout engine and text measurement
  - render: SVG and PDF output
  - handlers: HTTP request handlers (pages, accounts, names, clouds, info)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and form helpers, session cookie
  - web: Embedded templates and static files
  - people: CSV/XLSX import and people queries
  - info: Wikipedia and Wikiquote client with a file cache
  - session: In-memory and Redis session stores
  - catalog: Categories, colours, seed names and fallback quotes
  - models: Request/response and page types
  - auth: Password hashing, admin key check, IDs
  - db: Connection and schema creation
  - cliparse: Configuration parsing

The cloudctl command in cmd/cloudctl imports data and renders clouds
from the command line.
*/
package main
