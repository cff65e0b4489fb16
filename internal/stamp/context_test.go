package stamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_DerivesFullAddress(t *testing.T) {
	ctx := Context{
		"customer_city":    "Tirana",
		"customer_address": "Rruga e Durresit 1",
	}

	ctx.Normalize(nil)

	assert.Equal(t, "Rruga e Durresit 1, Tirana", ctx["customer_full_address"])
}

func TestNormalize_NoAddressWithoutBothParts(t *testing.T) {
	ctx := Context{"customer_address": "Rruga e Durresit 1"}
	ctx.Normalize(nil)
	assert.NotContains(t, ctx, "customer_full_address")

	ctx = Context{"customer_city": "Tirana"}
	ctx.Normalize(nil)
	assert.NotContains(t, ctx, "customer_full_address")
}

func TestNormalize_BadDocDateIsKept(t *testing.T) {
	ctx := Context{"doc_date": "2024/31/02"}

	ctx.Normalize(nil)

	// Validation warns but never rewrites or rejects the value.
	assert.Equal(t, "2024/31/02", ctx["doc_date"])
}

func TestContext_LookupCoercesScalars(t *testing.T) {
	ctx := Context{"qty": float64(10), "rate": 10.5, "flag": true, "name": "x"}

	got, ok := ctx.Lookup("qty")
	assert.True(t, ok)
	assert.Equal(t, "10", got)

	got, _ = ctx.Lookup("rate")
	assert.Equal(t, "10.5", got)

	got, _ = ctx.Lookup("flag")
	assert.Equal(t, "true", got)

	_, ok = ctx.Lookup("absent")
	assert.False(t, ok)
}

func TestContext_Items(t *testing.T) {
	ctx := Context{
		"items": []any{
			map[string]any{"name": "Widget", "qty": float64(2), "price": "5", "total": "10"},
			map[string]any{"name": "Gadget"},
		},
	}

	items := ctx.Items()

	assert.Equal(t, []LineItem{
		{Name: "Widget", Qty: "2", Price: "5", Total: "10"},
		{Name: "Gadget"},
	}, items)
}

func TestContext_CustomerID(t *testing.T) {
	assert.Equal(t, "K123", Context{"customer_nipt": "K123"}.CustomerID())
	assert.Equal(t, "J456", Context{"nipt": "J456"}.CustomerID())
	assert.Equal(t, "K123", Context{"customer_nipt": "K123", "nipt": "J456"}.CustomerID())
	assert.Equal(t, "UNKNOWN_NIPT", Context{}.CustomerID())
}
