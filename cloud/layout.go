// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cloud

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidCanvas is returned when the canvas has a non-positive dimension.
var ErrInvalidCanvas = errors.New("invalid canvas")

// Default layout parameters.
const (
	DefaultPadding     = 10.0
	DefaultMaxAttempts = 100
	DefaultMinSize     = 16.0
	DefaultMaxSize     = 48.0
)

// Item is a single label to place.
type Item struct {
	Label    string  `json:"label"`
	Category string  `json:"category,omitempty"`
	Weight   float64 `json:"weight"`
	Link     string  `json:"link,omitempty"`
}

// PlacedItem is an Item with its top-left position and measured box.
type PlacedItem struct {
	Item
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Size   float64 `json:"size"`
}

// Canvas is the rectangle every placed item must fit in.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (c Canvas) Valid() bool {
	// NaN fails both comparisons
	return c.Width > 0 && c.Height > 0
}

// DropReason says why an item is missing from the output.
type DropReason string

const (
	ItemTooLarge       DropReason = "item_too_large"
	PlacementExhausted DropReason = "placement_exhausted"
)

// Dropped is an item that could not be placed.
type Dropped struct {
	Item
	Reason DropReason `json:"reason"`
}

// Result holds the outcome of a layout pass.
type Result struct {
	Placed  []PlacedItem `json:"placed"`
	Dropped []Dropped    `json:"dropped,omitempty"`
}

// Options tunes a layout pass. Zero fields other than Padding take the
// defaults; a negative Padding is replaced by DefaultPadding.
type Options struct {
	Padding            float64
	MaxAttemptsPerItem int
	SizeRange          [2]float64
	Measurer           Measurer
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Padding:            DefaultPadding,
		MaxAttemptsPerItem: DefaultMaxAttempts,
		SizeRange:          [2]float64{DefaultMinSize, DefaultMaxSize},
		Measurer:           ApproxMeasurer{},
	}
}

func (o Options) normalized() Options {
	if o.Padding < 0 || math.IsNaN(o.Padding) {
		o.Padding = DefaultPadding
	}
	if o.MaxAttemptsPerItem < 1 {
		o.MaxAttemptsPerItem = DefaultMaxAttempts
	}
	if o.SizeRange == [2]float64{} {
		o.SizeRange = [2]float64{DefaultMinSize, DefaultMaxSize}
	}
	if o.SizeRange[0] > o.SizeRange[1] {
		o.SizeRange[0], o.SizeRange[1] = o.SizeRange[1], o.SizeRange[0]
	}
	if o.Measurer == nil {
		o.Measurer = ApproxMeasurer{}
	}
	return o
}

// Random is the source of randomness for a layout pass.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
}

// NewRandom returns a PCG-backed Random seeded with seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ComputeLayout places items on the canvas and returns the ones that fit.
// Items that cannot be placed are left out silently; use Layout to see them.
func ComputeLayout(items []Item, canvas Canvas, opts Options, rng Random) ([]PlacedItem, error) {
	res, err := Layout(items, canvas, opts, rng)
	if err != nil {
		return nil, err
	}
	return res.Placed, nil
}

// Layout places items in order by rejection sampling. Each item gets up to
// MaxAttemptsPerItem uniform random positions; the first one whose padded box
// is clear of every already placed padded box wins. Earlier items therefore
// get first pick of the space.
func Layout(items []Item, canvas Canvas, opts Options, rng Random) (Result, error) {
	if !canvas.Valid() {
		return Result{}, fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, canvas.Width, canvas.Height)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	opts = opts.normalized()
	sizer := newSizer(items, opts.SizeRange)

	res := Result{Placed: make([]PlacedItem, 0, len(items))}
	placed := make([]rect, 0, len(items))

	for _, item := range items {
		size := sizer.size(item, rng)
		w, h := opts.Measurer.Measure(item.Label, size)
		if w > canvas.Width || h > canvas.Height {
			res.Dropped = append(res.Dropped, Dropped{Item: item, Reason: ItemTooLarge})
			continue
		}

		candidate, ok := place(w, h, canvas, placed, opts, rng)
		if !ok {
			res.Dropped = append(res.Dropped, Dropped{Item: item, Reason: PlacementExhausted})
			continue
		}

		placed = append(placed, candidate)
		res.Placed = append(res.Placed, PlacedItem{
			Item:   item,
			X:      candidate.x,
			Y:      candidate.y,
			Width:  w,
			Height: h,
			Size:   size,
		})
	}
	return res, nil
}

func place(w, h float64, canvas Canvas, placed []rect, opts Options, rng Random) (rect, bool) {
	for range opts.MaxAttemptsPerItem {
		c := rect{
			x: rng.Float64() * (canvas.Width - w),
			y: rng.Float64() * (canvas.Height - h),
			w: w,
			h: h,
		}
		if !collides(c, placed, opts.Padding) {
			return c, true
		}
	}
	return rect{}, false
}

func collides(c rect, placed []rect, padding float64) bool {
	for _, p := range placed {
		if c.overlaps(p, padding) {
			return true
		}
	}
	return false
}

type rect struct {
	x, y, w, h float64
}

// overlaps reports whether the two boxes, each grown by padding on every
// side, intersect. Touching edges count as an overlap.
func (a rect) overlaps(b rect, padding float64) bool {
	return !(a.x+a.w+padding < b.x-padding ||
		a.x-padding > b.x+b.w+padding ||
		a.y+a.h+padding < b.y-padding ||
		a.y-padding > b.y+b.h+padding)
}

// sizer picks the font size for each item. Positive weights scale linearly
// against the heaviest item of the pass; unweighted items get a random size.
type sizer struct {
	min, max  float64
	maxWeight float64
}

func newSizer(items []Item, r [2]float64) sizer {
	s := sizer{min: r[0], max: r[1]}
	for _, it := range items {
		if weighted(it.Weight) && it.Weight > s.maxWeight {
			s.maxWeight = it.Weight
		}
	}
	return s
}

func (s sizer) size(item Item, rng Random) float64 {
	if weighted(item.Weight) && s.maxWeight > 0 {
		return s.min + (s.max-s.min)*item.Weight/s.maxWeight
	}
	return math.Floor(s.min + rng.Float64()*(s.max-s.min))
}

func weighted(w float64) bool {
	return w > 0 && !math.IsInf(w, 1)
}
