package stamp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// Stamp merges the bound instructions onto a copy of the template. Every
// template page is imported at its own size and in its original order;
// pages with instructions get their rendered overlay drawn on top, the
// rest pass through unchanged. The template bytes are never modified.
func Stamp(template []byte, instructionsByPage map[int][]Instruction) (out []byte, err error) {
	// gofpdi signals parse failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("stamping template: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(template))
	firstPage := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	pageCount := len(sizes)

	for page := 1; page <= pageCount; page++ {
		tplID := firstPage
		if page > 1 {
			tplID = imp.ImportPageFromStream(pdf, &rs, page, "/MediaBox")
		}
		w, h := pageDims(sizes, page)

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)

		instructions := instructionsByPage[page-1]
		if len(instructions) == 0 {
			continue
		}
		overlay, err := RenderOverlay(instructions, w, h)
		if err != nil {
			return nil, err
		}
		if len(overlay) == 0 {
			continue
		}
		ors := io.ReadSeeker(bytes.NewReader(overlay))
		overlayID := imp.ImportPageFromStream(pdf, &ors, 1, "/MediaBox")
		imp.UseImportedTemplate(pdf, overlayID, 0, 0, w, h)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("stamping template: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("stamping template: %w", err)
	}
	return buf.Bytes(), nil
}

// pageDims extracts a page's MediaBox dimensions from gofpdi's size map,
// falling back to US Letter.
func pageDims(sizes map[int]map[string]map[string]float64, page int) (w, h float64) {
	if boxes, ok := sizes[page]; ok {
		if mb, ok := boxes["/MediaBox"]; ok {
			w, h = mb["w"], mb["h"]
		}
	}
	if w <= 0 || h <= 0 {
		w, h = letterWidth, letterHeight
	}
	return w, h
}
