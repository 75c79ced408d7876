// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/danielhkuo/namecloud/cloud"
)

const pdfFont = "Helvetica"

// RenderPDF writes a single-page PDF the size of canvas, in points, with
// every label drawn in its category colour. Linked labels get a clickable
// region covering their box.
func RenderPDF(w io.Writer, canvas cloud.Canvas, items []cloud.PlacedItem, opts ...Option) error {
	if !canvas.Valid() {
		return fmt.Errorf("%w: %gx%g", cloud.ErrInvalidCanvas, canvas.Width, canvas.Height)
	}
	r := newRenderer(opts...)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: canvas.Width, Ht: canvas.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Name cloud", true)
	pdf.AddPage()

	if r.background != "" {
		pdf.SetFillColor(parseHex(r.background))
		pdf.Rect(0, 0, canvas.Width, canvas.Height, "F")
	}

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range items {
		pdf.SetFont(pdfFont, "", p.Size)
		pdf.SetTextColor(parseHex(r.color(p.Category)))
		pdf.SetXY(p.X, p.Y)
		pdf.CellFormat(p.Width, p.Height, tr(p.Label), "", 0, "LM", false, 0, r.href(p))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
