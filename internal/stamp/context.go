package stamp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// docDateLayout is the expected doc_date format (DD-MM-YYYY).
const docDateLayout = "02-01-2006"

const unknownCustomerID = "UNKNOWN_NIPT"

// Context is the caller-supplied data stamped onto templates for one
// request. Values are arbitrary JSON scalars; lookups coerce to string.
type Context map[string]any

// Lookup returns the string form of the value for key. Absent keys report
// ok=false and are skipped by the binder, never treated as an error.
func (c Context) Lookup(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	return stringify(v), true
}

// Get is Lookup without the presence flag.
func (c Context) Get(key string) string {
	s, _ := c.Lookup(key)
	return s
}

// LineItem is one row of the items table.
type LineItem struct {
	Name  string
	Qty   string
	Price string
	Total string
}

// Items returns the item rows, if any. Row fields are coerced to strings;
// malformed entries yield empty cells rather than failing the request.
func (c Context) Items() []LineItem {
	raw, ok := c["items"].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	items := make([]LineItem, 0, len(raw))
	for _, e := range raw {
		row, _ := e.(map[string]any)
		items = append(items, LineItem{
			Name:  stringify(row["name"]),
			Qty:   stringify(row["qty"]),
			Price: stringify(row["price"]),
			Total: stringify(row["total"]),
		})
	}
	return items
}

// Total returns the document-level total, empty when absent.
func (c Context) Total() string {
	return c.Get("total")
}

// CustomerID returns the customer tax id used in storage keys.
func (c Context) CustomerID() string {
	if id, ok := c.Lookup("customer_nipt"); ok && id != "" {
		return id
	}
	if id, ok := c.Lookup("nipt"); ok && id != "" {
		return id
	}
	return unknownCustomerID
}

// Normalize prepares the context for binding: it synthesizes
// customer_full_address from customer_address and customer_city so the
// catalog can reference it like any other field, and sanity-checks
// doc_date. A malformed doc_date is logged and kept as-is; validation is
// never fatal.
func (c Context) Normalize(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if date, ok := c.Lookup("doc_date"); ok {
		if _, err := time.Parse(docDateLayout, date); err != nil {
			logger.Warn("could not validate doc_date format, using original value", "doc_date", date)
		}
	}
	addr, haveAddr := c.Lookup("customer_address")
	city, haveCity := c.Lookup("customer_city")
	if haveAddr && haveCity {
		c["customer_full_address"] = addr + ", " + city
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
