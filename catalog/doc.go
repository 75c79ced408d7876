// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog defines the categories people are grouped into.

A catalog is a TOML document:

	default_color = "#757575"
	default_quote = "..."

	[[category]]
	name   = "Scientists"
	color  = "#4CAF50"
	names  = ["Albert Einstein", "Marie Curie"]
	quotes = ["The important thing is not to stop questioning."]

Default returns the embedded catalog; Load reads an override from disk.
The catalog colours cloud labels (it satisfies render.Palette), seeds new
accounts with RandomNames and supplies quotes when Wikiquote has none.
*/
package catalog
