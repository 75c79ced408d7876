// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package people

import (
	"context"
	"database/sql"
	"fmt"
)

// Person is a row of the people table with its vote count.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Bio         string `json:"bio,omitempty"`
	YearOfBirth *int64 `json:"year_of_birth,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	WikiLink    string `json:"wiki_link,omitempty"`
	More        string `json:"more,omitempty"`
	Votes       int    `json:"votes"`
}

// Quote is a row of people_quotes.
type Quote struct {
	Title   string `json:"title"`
	Context string `json:"context,omitempty"`
	Link    string `json:"link,omitempty"`
}

const selectPerson = `
	SELECT p.id, p.name, p.category,
	       COALESCE(p.bio, ''), p.year_of_birth, COALESCE(p.date_of_birth, ''),
	       COALESCE(p.wiki_link, ''), COALESCE(p.more, ''),
	       COUNT(v.id)
	FROM people p
	LEFT JOIN vote v ON v.person_id = p.id
`

const groupPerson = `
	GROUP BY p.id, p.name, p.category, p.bio, p.year_of_birth, p.date_of_birth, p.wiki_link, p.more
`

// List returns people with their vote counts, most voted first, then by
// name. An empty category returns everyone.
func List(ctx context.Context, db *sql.DB, category string) ([]Person, error) {
	rows, err := db.QueryContext(ctx, selectPerson+`
		WHERE (CAST($1 AS TEXT) = '' OR p.category = CAST($1 AS TEXT))
	`+groupPerson+`
		ORDER BY COUNT(v.id) DESC, p.name, p.id
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	list := []Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// FindByName returns the person called name. When several share the name
// the lowest ID wins. Returns sql.ErrNoRows when nobody matches.
func FindByName(ctx context.Context, db *sql.DB, name string) (*Person, error) {
	row := db.QueryRowContext(ctx, selectPerson+`
		WHERE p.name = $1
	`+groupPerson+`
		ORDER BY p.id
		LIMIT 1
	`, name)
	p, err := scanPerson(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Quotes returns the imported quotes of a person.
func Quotes(ctx context.Context, db *sql.DB, personID int64) ([]Quote, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT COALESCE(title, ''), COALESCE(context, ''), COALESCE(link, '')
		FROM people_quotes
		WHERE person_id = $1
		ORDER BY title
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.Title, &q.Context, &q.Link); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		if q.Title != "" {
			quotes = append(quotes, q)
		}
	}
	return quotes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(s scanner) (Person, error) {
	var (
		p   Person
		yob sql.NullInt64
	)
	err := s.Scan(&p.ID, &p.Name, &p.Category, &p.Bio, &yob, &p.DateOfBirth, &p.WikiLink, &p.More, &p.Votes)
	if err != nil {
		return Person{}, err
	}
	if yob.Valid {
		p.YearOfBirth = &yob.Int64
	}
	return p, nil
}
