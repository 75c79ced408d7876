// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connecting

Open picks the driver from the database type:

	conn, err := db.Open("sqlite", "file:.data/sqlite.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite is served by modernc.org/sqlite (no cgo), PostgreSQL by lib/pq.
Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
ResetSchema drops everything first.

# Tables

  - people: imported people, with their category
  - people_quotes, people_creations, people_connections: imported detail rows
  - vote: one row per vote cast
  - vote_log: vote history shown to admins
  - app_user: accounts (bcrypt password hashes)
  - user_name: each account's personal name list

# Relationships

	people 1──* vote
	app_user 1──* user_name

Both foreign keys use ON DELETE CASCADE.
*/
package db
