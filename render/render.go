// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/namecloud/cloud"
)

const (
	DefaultColor      = "#000000"
	DefaultFontFamily = "Go, Helvetica, Arial, sans-serif"
)

// Palette maps a category to a hex colour such as "#4CAF50".
type Palette interface {
	Color(category string) string
}

// Option configures RenderSVG and RenderPDF.
type Option func(*renderer)

type renderer struct {
	palette    Palette
	link       func(cloud.PlacedItem) string
	background string
	fontFamily string
}

func WithPalette(p Palette) Option { return func(r *renderer) { r.palette = p } }

// WithLinks sets the click target of each label. An empty result leaves the
// label unlinked.
func WithLinks(fn func(cloud.PlacedItem) string) Option {
	return func(r *renderer) { r.link = fn }
}

func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }
func WithFontFamily(family string) Option {
	return func(r *renderer) { r.fontFamily = family }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{link: InfoLink, fontFamily: DefaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) color(category string) string {
	if r.palette == nil {
		return DefaultColor
	}
	if c := r.palette.Color(category); c != "" {
		return c
	}
	return DefaultColor
}

func (r renderer) href(p cloud.PlacedItem) string {
	if r.link == nil {
		return ""
	}
	return r.link(p)
}

// InfoLink points a label at the info overlay endpoint of its name.
func InfoLink(p cloud.PlacedItem) string {
	return "/api/people/" + url.PathEscape(p.Label) + "/info"
}

// ItemLink uses the link carried by the item itself.
func ItemLink(p cloud.PlacedItem) string { return p.Link }

// parseHex reads #rgb or #rrggbb. Anything else is black.
func parseHex(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
