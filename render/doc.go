// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render draws a computed cloud layout as SVG or PDF.

Renderers take the placed items from cloud.Layout as they are and never move
them:

	res, _ := cloud.Layout(items, canvas, opts, rng)
	svg := render.RenderSVG(canvas, res.Placed, render.WithPalette(cat))

Labels link to the info overlay endpoint by default. WithLinks(ItemLink)
uses each item's own link instead.
*/
package render
