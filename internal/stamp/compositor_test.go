package stamp

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTemplate builds a PDF with the given number of pages, standing in
// for a real contract template.
func newTestTemplate(t *testing.T, pages int) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 72, fmt.Sprintf("template page %d", i))
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestStamp_NoInstructionsPassesTemplateThrough(t *testing.T) {
	template := newTestTemplate(t, 2)

	stamped, err := Stamp(template, nil)
	require.NoError(t, err)

	pages, err := PageCount(stamped)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestStamp_PreservesPageCountWithOverlays(t *testing.T) {
	template := newTestTemplate(t, 3)
	byPage := map[int][]Instruction{
		0: {StaticText{Text: "Acme", X: 100, Y: 750}},
		2: {StaticText{Text: "K123", X: 100, Y: 100, Align: AlignCenter}},
	}

	stamped, err := Stamp(template, byPage)
	require.NoError(t, err)

	pages, err := PageCount(stamped)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestStamp_InvalidTemplateFails(t *testing.T) {
	_, err := Stamp([]byte("not a pdf"), nil)
	assert.Error(t, err)
}
