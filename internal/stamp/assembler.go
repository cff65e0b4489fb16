package stamp

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// ErrNothingToAssemble is returned when no stamped documents were supplied.
// Request validation requires at least one template name, so hitting this
// indicates a caller bug.
var ErrNothingToAssemble = errors.New("no documents to assemble")

// Assemble concatenates the page sequences of the stamped documents in the
// given order. No reordering, deduplication, or page filtering: the result
// has exactly the sum of the inputs' page counts.
func Assemble(parts [][]byte) (out []byte, err error) {
	if len(parts) == 0 {
		return nil, ErrNothingToAssemble
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("assembling document: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, part := range parts {
		if err := appendPages(pdf, part); err != nil {
			return nil, fmt.Errorf("assembling document part %d: %w", i+1, err)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("assembling document: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}
	return buf.Bytes(), nil
}

// appendPages imports every page of doc into pdf at its own size.
func appendPages(pdf *gofpdf.Fpdf, doc []byte) error {
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(doc))
	firstPage := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	sizes := imp.GetPageSizes()

	for page := 1; page <= len(sizes); page++ {
		tplID := firstPage
		if page > 1 {
			tplID = imp.ImportPageFromStream(pdf, &rs, page, "/MediaBox")
		}
		w, h := pageDims(sizes, page)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)
	}
	return pdf.Error()
}

// PageCount reports the number of pages in a PDF document.
func PageCount(doc []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("counting pages: %v", r)
		}
	}()
	pdf := gofpdf.New("P", "pt", "A4", "")
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(doc))
	imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	if pdf.Err() {
		return 0, fmt.Errorf("counting pages: %w", pdf.Error())
	}
	return len(imp.GetPageSizes()), nil
}
