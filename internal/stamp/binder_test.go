package stamp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type specMap map[string]CoordinateSpec

func (m specMap) CoordinateSpec(name string) (CoordinateSpec, error) {
	spec, ok := m[name]
	if !ok {
		return CoordinateSpec{}, ErrSpecNotFound
	}
	return spec, nil
}

func invoiceSpec() CoordinateSpec {
	return CoordinateSpec{
		StaticFields: StaticFields{
			{Name: "customer_name", StaticField: StaticField{Page: 1, X: 100, Y: 750}},
			{Name: "doc_date", StaticField: StaticField{Page: 1, X: 400, Y: 750, Align: AlignCenter}},
			{Name: "notes", StaticField: StaticField{Page: 2, X: 80, Y: 700}},
		},
		ItemsSection: &ItemsSection{
			Page:       1,
			StartY:     700,
			LineHeight: 20,
			Columns:    Columns{NameX: 60, QtyX: 300, PriceX: 380, TotalX: 460},
		},
	}
}

func TestBind_StaticFieldsFollowDeclarationOrder(t *testing.T) {
	binder := NewBinder(specMap{"invoice": invoiceSpec()})
	ctx := Context{
		"doc_date":      "01-02-2024",
		"customer_name": "Acme",
		"notes":         "fragile",
	}

	byPage, err := binder.Bind("invoice", ctx)
	require.NoError(t, err)

	require.Len(t, byPage[0], 2)
	assert.Equal(t, StaticText{Text: "Acme", X: 100, Y: 750}, byPage[0][0])
	assert.Equal(t, StaticText{Text: "01-02-2024", X: 400, Y: 750, Align: AlignCenter}, byPage[0][1])

	// Catalog page 2 lands in 0-indexed slot 1.
	require.Len(t, byPage[1], 1)
	assert.Equal(t, StaticText{Text: "fragile", X: 80, Y: 700}, byPage[1][0])
}

func TestBind_SkipsContextKeysMissingFromContext(t *testing.T) {
	binder := NewBinder(specMap{"invoice": invoiceSpec()})

	byPage, err := binder.Bind("invoice", Context{"customer_name": "Acme"})
	require.NoError(t, err)

	require.Len(t, byPage[0], 1)
	assert.NotContains(t, byPage, 1)
}

func TestBind_ItemsAppendListThenTotal(t *testing.T) {
	binder := NewBinder(specMap{"invoice": invoiceSpec()})
	ctx := Context{
		"customer_name": "Acme",
		"items": []any{
			map[string]any{"name": "Widget", "qty": float64(1), "price": "10", "total": "10"},
		},
		"total": "10",
	}

	byPage, err := binder.Bind("invoice", ctx)
	require.NoError(t, err)
	require.Len(t, byPage[0], 3)

	list, ok := byPage[0][1].(ItemsList)
	require.True(t, ok)
	assert.Equal(t, []LineItem{{Name: "Widget", Qty: "1", Price: "10", Total: "10"}}, list.Rows)

	total, ok := byPage[0][2].(FinalTotal)
	require.True(t, ok)
	assert.Equal(t, "10", total.Value)
}

func TestBind_NoItemsSectionInstructionsWithoutRows(t *testing.T) {
	binder := NewBinder(specMap{"invoice": invoiceSpec()})

	byPage, err := binder.Bind("invoice", Context{"customer_name": "Acme", "items": []any{}})
	require.NoError(t, err)
	require.Len(t, byPage[0], 1)
}

func TestBind_Idempotent(t *testing.T) {
	binder := NewBinder(specMap{"invoice": invoiceSpec()})
	ctx := Context{
		"customer_name": "Acme",
		"items":         []any{map[string]any{"name": "Widget", "qty": "2", "price": "5", "total": "10"}},
		"total":         "10",
	}

	first, err := binder.Bind("invoice", ctx)
	require.NoError(t, err)
	second, err := binder.Bind("invoice", ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBind_UnknownTemplate(t *testing.T) {
	binder := NewBinder(specMap{})

	_, err := binder.Bind("missing", Context{"customer_name": "Acme"})
	assert.ErrorIs(t, err, ErrSpecNotFound)
}

func TestStaticFields_UnmarshalPreservesDeclarationOrder(t *testing.T) {
	raw := `{
		"zeta":  {"page": 1, "x": 10, "y": 20},
		"alpha": {"page": 1, "x": 30, "y": 40, "align": "center"},
		"mid":   {"page": 2, "x": 50, "y": 60}
	}`

	var fields StaticFields
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))

	require.Len(t, fields, 3)
	assert.Equal(t, "zeta", fields[0].Name)
	assert.Equal(t, "alpha", fields[1].Name)
	assert.Equal(t, "mid", fields[2].Name)
	assert.Equal(t, AlignCenter, fields[1].Align)
	assert.Equal(t, 2, fields[2].Page)
}
