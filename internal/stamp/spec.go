// Package stamp implements the template-stamping core: binding a caller
// context against per-template coordinate specs, rendering text overlays,
// compositing overlays onto template pages, and assembling the stamped
// templates into one output document.
package stamp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrSpecNotFound     = errors.New("coordinate spec not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// Align controls horizontal text placement relative to a field's x coordinate.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// StaticField places one named context value at a fixed position.
// Page numbers are 1-indexed in the catalog; coordinates are PDF points
// with the origin at the bottom-left of the page.
type StaticField struct {
	Page  int     `json:"page"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Align Align   `json:"align,omitempty"`
}

// NamedField pairs a static field with the context key it binds to.
type NamedField struct {
	Name string
	StaticField
}

// StaticFields is an ordered list of static field declarations. Order is
// the declaration order in coordinates.json and determines draw order.
type StaticFields []NamedField

// UnmarshalJSON decodes a JSON object while preserving key order, which a
// plain map would lose.
func (sf *StaticFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("static_fields: expected object, got %v", tok)
	}
	fields := StaticFields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("static_fields: expected field name, got %v", keyTok)
		}
		var f StaticField
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("static_fields: field %q: %w", name, err)
		}
		fields = append(fields, NamedField{Name: name, StaticField: f})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*sf = fields
	return nil
}

// Columns holds the x offsets of the four item table columns.
type Columns struct {
	NameX  float64 `json:"name_x"`
	QtyX   float64 `json:"qty_x"`
	PriceX float64 `json:"price_x"`
	TotalX float64 `json:"total_x"`
}

// ItemsSection describes the single repeating-row region of a template.
// Rows are drawn downward from StartY, one LineHeight apart.
type ItemsSection struct {
	Page       int     `json:"page"`
	StartY     float64 `json:"start_y"`
	LineHeight float64 `json:"line_height"`
	Columns    Columns `json:"columns"`
}

// CoordinateSpec is the full field layout for one template.
type CoordinateSpec struct {
	StaticFields StaticFields  `json:"static_fields"`
	ItemsSection *ItemsSection `json:"items_section,omitempty"`
}
