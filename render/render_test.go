// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cloud"
)

var testCanvas = cloud.Canvas{Width: 400, Height: 300}

func testItems() []cloud.PlacedItem {
	return []cloud.PlacedItem{
		{
			Item: cloud.Item{Label: "Marie Curie", Category: "Scientists", Link: "https://en.wikipedia.org/wiki/Marie_Curie"},
			X:    10, Y: 20, Width: 120, Height: 24, Size: 20,
		},
		{
			Item: cloud.Item{Label: "Tom & Jerry <3", Category: "Entertainers"},
			X:    200, Y: 150, Width: 90, Height: 19, Size: 16,
		},
	}
}

func TestRenderSVG_Structure(t *testing.T) {
	svg := RenderSVG(testCanvas, testItems())
	out := string(svg)

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `viewBox="0 0 400.0 300.0"`)
	assert.Contains(t, out, `width="400" height="300"`)
	assert.Equal(t, 2, strings.Count(out, `<a class="name-tag"`))
	assert.Equal(t, 2, strings.Count(out, `dominant-baseline="hanging"`))
	assert.Contains(t, out, `<text x="10.00" y="20.00" font-size="20.0"`)

	// well-formed XML despite the special characters
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
	assert.Contains(t, out, "Tom &amp; Jerry &lt;3")
}

func TestRenderSVG_DefaultLinksToInfo(t *testing.T) {
	out := string(RenderSVG(testCanvas, testItems()))
	assert.Contains(t, out, `href="/api/people/Marie%20Curie/info"`)
}

func TestRenderSVG_Options(t *testing.T) {
	out := string(RenderSVG(testCanvas, testItems(),
		WithPalette(catalog.Default()),
		WithLinks(ItemLink),
		WithBackground("#fafafa"),
		WithFontFamily("Georgia"),
	))

	assert.Contains(t, out, `fill="#4CAF50"`)
	assert.Contains(t, out, `fill="#9C27B0"`)
	assert.Contains(t, out, `<rect width="100%" height="100%" fill="#fafafa"/>`)
	assert.Contains(t, out, `font-family="Georgia"`)
	assert.Contains(t, out, `href="https://en.wikipedia.org/wiki/Marie_Curie"`)

	// the second item has no link of its own
	assert.Equal(t, 1, strings.Count(out, `<a class="name-tag"`))
	assert.Equal(t, 1, strings.Count(out, `<g class="name-tag"`))
}

func TestRenderSVG_NoPaletteIsBlack(t *testing.T) {
	out := string(RenderSVG(testCanvas, testItems()[:1]))
	assert.Contains(t, out, `fill="#000000"`)
}

func TestRenderSVG_Empty(t *testing.T) {
	out := string(RenderSVG(testCanvas, nil))
	assert.NotContains(t, out, "name-tag\"")
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, testCanvas, testItems(), WithPalette(catalog.Default()), WithBackground("#ffffff"))
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/MediaBox [0 0 400.00 300.00]")
	assert.Contains(t, string(out), "/api/people/Marie%20Curie/info")
}

func TestRenderPDF_InvalidCanvas(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, cloud.Canvas{Width: 0, Height: 100}, testItems())
	assert.ErrorIs(t, err, cloud.ErrInvalidCanvas)
	assert.Zero(t, buf.Len())
}

func TestRenderPDF_NonASCII(t *testing.T) {
	items := []cloud.PlacedItem{{
		Item: cloud.Item{Label: "Frida Kahlö", Category: "Artists"},
		X:    5, Y: 5, Width: 100, Height: 20, Size: 16,
	}}
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, testCanvas, items))
	assert.NotZero(t, buf.Len())
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#4CAF50", 0x4c, 0xaf, 0x50},
		{"ff9800", 0xff, 0x98, 0x00},
		{"#fff", 255, 255, 255},
		{"", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
		{"#12345", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b := parseHex(tt.in)
			assert.Equal(t, [3]int{tt.r, tt.g, tt.b}, [3]int{r, g, b})
		})
	}
}
