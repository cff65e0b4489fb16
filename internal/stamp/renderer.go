package stamp

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Overlays use a single fixed font and size, matching the stamped
// templates' body text.
const (
	overlayFont     = "Helvetica"
	overlayFontSize = 12.0
)

// Fallback page size in points (US Letter) when a template page reports no
// usable MediaBox.
const (
	letterWidth  = 612.0
	letterHeight = 792.0
)

// widthMeasurer reports rendered text width for the active font. Satisfied
// by *gofpdf.Fpdf; tests substitute a fixed-width implementation.
type widthMeasurer interface {
	GetStringWidth(s string) float64
}

// textOp is a single positioned string in catalog coordinate space
// (origin bottom-left, y increasing upward).
type textOp struct {
	x, y float64
	text string
}

// layoutPage turns one page's instructions into draw operations. Item rows
// walk down from StartY by LineHeight with no pagination: a row count
// exceeding the page's vertical space keeps going past the page edge. The
// final total only appears when it has a value and at least one row was
// drawn, two line heights below the last row in the name column.
func layoutPage(m widthMeasurer, instructions []Instruction) []textOp {
	ops := make([]textOp, 0, len(instructions))
	lastRowY := 0.0
	for _, in := range instructions {
		switch v := in.(type) {
		case StaticText:
			x := v.X
			if v.Align == AlignCenter {
				x -= m.GetStringWidth(v.Text) / 2
			}
			ops = append(ops, textOp{x: x, y: v.Y, text: v.Text})
		case ItemsList:
			cols := v.Section.Columns
			y := v.Section.StartY
			for _, row := range v.Rows {
				ops = append(ops,
					textOp{x: cols.NameX, y: y, text: row.Name},
					textOp{x: cols.QtyX, y: y, text: row.Qty},
					textOp{x: cols.PriceX, y: y, text: row.Price},
					textOp{x: cols.TotalX, y: y, text: row.Total},
				)
				lastRowY = y
				y -= v.Section.LineHeight
			}
		case FinalTotal:
			if v.Value != "" && lastRowY > 0 {
				ops = append(ops, textOp{
					x:    v.Section.Columns.NameX,
					y:    lastRowY - 2*v.Section.LineHeight,
					text: "Total: " + v.Value,
				})
			}
		}
	}
	return ops
}

// RenderOverlay produces a transient single-page PDF containing only the
// text for one template page, sized pageW x pageH points. An empty
// instruction list yields nil bytes so the compositor can pass the page
// through untouched.
func RenderOverlay(instructions []Instruction, pageW, pageH float64) ([]byte, error) {
	if len(instructions) == 0 {
		return nil, nil
	}
	if pageW <= 0 || pageH <= 0 {
		pageW, pageH = letterWidth, letterHeight
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})
	pdf.SetFont(overlayFont, "", overlayFontSize)

	// Catalog y is measured from the bottom edge; gofpdf draws from the top.
	for _, op := range layoutPage(pdf, instructions) {
		pdf.Text(op.x, pageH-op.y, op.text)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("rendering overlay: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering overlay: %w", err)
	}
	return buf.Bytes(), nil
}
