// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for namecloud.

# Handler Types

Each handler is a struct holding the dependencies it needs:

  - HomeHandler: Vote page and vote submission
  - AdminHandler: Vote log and log reset
  - AccountHandler: Register, login, logout
  - NamesHandler: A signed-in user's own name list
  - CloudHandler: Layout as JSON, SVG or PDF
  - InfoHandler: The overlay shown when a name is clicked
  - PeopleHandler: People feed, categories, health

Handlers are created via constructor functions:

	home := handlers.NewHomeHandler(db, cfg, cat, sessions, pages)

# Pages

The page handlers render html templates from the web package. Adding
?raw=1 returns the template parameters as JSON instead:

	GET  /       → Home
	POST /       → Vote (form field or JSON "name")
	GET  /logs   → Logs (latest 20 entries)
	POST /reset  → Reset (field "key" must match ADMIN_KEY)

# Clouds

The cloud source is the signed-in user's list, or the people table for
anonymous requests. Query parameters width, height, padding, attempts,
seed and category tune the layout. Canvases above MaxCanvasSize and
attempts above MaxAttempts are rejected:

	GET /api/cloud → Layout
	GET /cloud.svg → SVG
	GET /cloud.pdf → PDF

The seed used is echoed in the X-Cloud-Seed header so a layout can be
reproduced.

# Sessions

Login sets the session_id cookie. NamesHandler answers 401 without one;
the other handlers treat a missing or expired session as anonymous.
*/
package handlers
