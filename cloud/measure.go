// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cloud

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the rendered box of a label at a font size.
type Measurer interface {
	Measure(label string, size float64) (width, height float64)
}

// ApproxMeasurer estimates text boxes from the rune count, for callers
// without access to real font metrics.
type ApproxMeasurer struct {
	CharWidth  float64 // width per rune as a fraction of size (default 0.6)
	LineHeight float64 // height as a fraction of size (default 1.2)
}

// Measure returns the width and height of label set at size.
func (m ApproxMeasurer) Measure(label string, size float64) (float64, float64) {
	cw, lh := m.CharWidth, m.LineHeight
	if cw <= 0 {
		cw = 0.6
	}
	if lh <= 0 {
		lh = 1.2
	}
	return cw * size * float64(utf8.RuneCountInString(label)), lh * size
}

const maxCachedFaces = 64

// FontMeasurer measures labels set in Go Regular. It is safe for concurrent use.
type FontMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFontMeasurer parses the bundled Go Regular font.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure returns the advance width and line height of label at size points
// (72 DPI, so points equal canvas units). It falls back to ApproxMeasurer
// if a face cannot be built for size.
func (m *FontMeasurer) Measure(label string, size float64) (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return ApproxMeasurer{}.Measure(label, size)
	}
	adv := font.MeasureString(face, label)
	return toFloat(adv), toFloat(face.Metrics().Height)
}

func (m *FontMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	if len(m.faces) >= maxCachedFaces {
		m.closeFaces()
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Close releases cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeFaces()
	return nil
}

func (m *FontMeasurer) closeFaces() {
	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
