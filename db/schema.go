// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Tables lists every application table in creation order.
var Tables = []string{
	"people",
	"people_quotes",
	"people_creations",
	"people_connections",
	"vote",
	"vote_log",
	"app_user",
	"user_name",
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// ResetSchema drops every table and recreates the schema. All data is lost.
func ResetSchema(db *sql.DB) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + Tables[i]); err != nil {
			return fmt.Errorf("failed to drop %s: %w", Tables[i], err)
		}
	}
	return CreateSchema(db)
}

// The DDL sticks to the subset SQLite and PostgreSQL share.
const schema = `
-- People
CREATE TABLE IF NOT EXISTS people (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    bio TEXT,
    year_of_birth INTEGER,
    date_of_birth TEXT,
    wiki_link TEXT,
    more TEXT
);

CREATE INDEX IF NOT EXISTS idx_people_name ON people(name);
CREATE INDEX IF NOT EXISTS idx_people_category ON people(category);

CREATE TABLE IF NOT EXISTS people_quotes (
    person_id INTEGER,
    title TEXT,
    context TEXT,
    link TEXT,
    more TEXT
);

CREATE INDEX IF NOT EXISTS idx_people_quotes_person ON people_quotes(person_id);

CREATE TABLE IF NOT EXISTS people_creations (
    person_id INTEGER,
    title TEXT,
    type TEXT,
    link TEXT,
    more TEXT
);

CREATE INDEX IF NOT EXISTS idx_people_creations_person ON people_creations(person_id);

CREATE TABLE IF NOT EXISTS people_connections (
    person1_id INTEGER,
    person1_name TEXT,
    person2_id INTEGER,
    person2_name TEXT,
    connection TEXT,
    more TEXT
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    person_id INTEGER NOT NULL REFERENCES people(id) ON DELETE CASCADE,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_person ON vote(person_id);

-- Vote log shown on the admin page; cleared by /reset
CREATE TABLE IF NOT EXISTS vote_log (
    id TEXT PRIMARY KEY,
    person_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_log_created ON vote_log(created_at);

-- Accounts
CREATE TABLE IF NOT EXISTS app_user (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_name (
    username TEXT NOT NULL REFERENCES app_user(username) ON DELETE CASCADE,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (username, name, category)
);
`
