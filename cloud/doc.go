// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cloud lays out word-cloud labels on a bounded canvas.

# Placement

Layout walks the items in order and tries up to MaxAttemptsPerItem uniform
random top-left positions for each one:

	res, err := cloud.Layout(items, cloud.Canvas{Width: 960, Height: 600},
		cloud.DefaultOptions(), cloud.NewRandom(42))

A candidate is accepted when its box, grown by Padding on every side, is
clear of every already placed box grown the same way. Items that do not fit
the canvas at all, or find no free spot in time, are dropped and listed in
Result.Dropped. ComputeLayout returns only the placed items.

Only an invalid canvas is an error:

	_, err := cloud.ComputeLayout(items, cloud.Canvas{Width: 0, Height: 100}, opts, rng)
	errors.Is(err, cloud.ErrInvalidCanvas) // true

# Sizes

Items with a positive Weight get a font size scaled linearly between
SizeRange[0] and SizeRange[1] against the heaviest item of the pass. Items
without a weight get a random whole size from the same range.

# Measuring

Box dimensions come from a Measurer. ApproxMeasurer multiplies the rune
count by a fixed character width; FontMeasurer uses the metrics of the
bundled Go Regular font.

# Randomness

Every call takes its own Random. Pass NewRandom(seed) for reproducible
output; nil draws a fresh seed. Calls share no state and may run in
parallel.
*/
package cloud
