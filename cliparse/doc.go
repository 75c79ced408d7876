// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadEnv reads a .env file (if present) into the environment without
overriding variables that are already set.

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: Database connection string (default: file:.data/sqlite.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Shared secret for POST /reset (empty refuses every reset)
  - IPHashSalt: Salt for hashed voter IPs
  - CatalogPath: Category catalog TOML (embedded default when empty)
  - CacheDir: Info lookup cache directory (caching off when empty)
  - RedisAddr: Session store address (in-memory when empty)
  - SessionTTL: Login session lifetime (default: 24h)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-key    Admin key
	-ip-salt      IP hash salt
	-catalog      Catalog file
	-cache-dir    Info cache directory
	-redis        Redis address
	-session-ttl  Session lifetime
	-log-level    Log level

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → -admin-key
	IP_HASH_SALT  → -ip-salt
	CATALOG_PATH  → -catalog
	CACHE_DIR     → -cache-dir
	REDIS_ADDR    → -redis
	SESSION_TTL   → -session-ttl
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error for a non-numeric or out of range port, an
unknown database type, an unparsable session TTL or an unknown log level.
*/
package cliparse
