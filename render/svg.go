// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/danielhkuo/namecloud/cloud"
)

const nameTagCSS = `
    .name-tag text { cursor: pointer; transition: opacity 0.2s ease; }
    .name-tag:hover text { opacity: 0.7; }`

// RenderSVG draws placed items as an SVG document the size of canvas. Each
// label is a <text> anchored at the item's top-left corner, wrapped in an
// <a class="name-tag">.
func RenderSVG(canvas cloud.Canvas, items []cloud.PlacedItem, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		canvas.Width, canvas.Height, canvas.Width, canvas.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nameTagCSS)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	for _, p := range items {
		href := r.href(p)
		if href != "" {
			fmt.Fprintf(&buf, `  <a class="name-tag" href="%s" data-name="%s" data-category="%s">`,
				escapeXML(href), escapeXML(p.Label), escapeXML(p.Category))
		} else {
			fmt.Fprintf(&buf, `  <g class="name-tag" data-name="%s" data-category="%s">`,
				escapeXML(p.Label), escapeXML(p.Category))
		}

		fmt.Fprintf(&buf, `<text x="%.2f" y="%.2f" font-size="%.1f" font-family="%s" fill="%s" dominant-baseline="hanging">%s</text>`,
			p.X, p.Y, p.Size, escapeXML(r.fontFamily), escapeXML(r.color(p.Category)), escapeXML(p.Label))

		if href != "" {
			buf.WriteString("</a>\n")
		} else {
			buf.WriteString("</g>\n")
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
