// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for namecloud.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, router.Services{Sessions: store})

Services left zero get defaults: an in-memory session store, the
built-in catalog, a live info client, the approximate text measurer and
the embedded page templates.

# Endpoints

Health:

	GET /health

Pages (add ?raw=1 for JSON):

	GET  /          - Vote page
	POST /          - Cast a vote
	GET  /logs      - Vote history
	POST /reset     - Clear the history (requires key)
	GET  /static/*  - Stylesheet

Accounts:

	POST     /api/register - Create an account with seeded names
	POST     /api/login    - Start a session
	GET|POST /api/logout   - End the session

Name lists (session cookie required):

	GET    /api/names        - List own names
	POST   /api/names        - Add a name
	DELETE /api/names/{name} - Remove a name

People:

	GET /api/categories          - Category names
	GET /api/people              - People with vote counts
	GET /api/people/{name}/info  - Click-through overlay

Clouds:

	GET /api/cloud - Layout as JSON
	GET /cloud.svg - Rendered SVG
	GET /cloud.pdf - Rendered PDF
*/
package router
