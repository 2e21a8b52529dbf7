package tiendanube

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single resource as returned by the API. Fields are platform
// defined; the client only relies on "id".
type Item map[string]any

// ID returns the item's id rendered as a string, or "" when absent.
func (it Item) ID() string {
	v, ok := it["id"]
	if !ok || v == nil {
		return ""
	}
	return formatValue(v)
}

func (it Item) Has(key string) bool {
	_, ok := it[key]
	return ok
}

// String returns the value under key as a string. Numbers and booleans are
// formatted; nested objects and missing keys yield "".
func (it Item) String(key string) string {
	switch v := it[key].(type) {
	case nil, map[string]any, []any:
		return ""
	default:
		return formatValue(v)
	}
}

func (it Item) Int64(key string) (int64, error) {
	switch v := it[key].(type) {
	case json.Number:
		return v.Int64()
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("field %q is %v, not an integer", key, v)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, fmt.Errorf("field %q not present", key)
	default:
		return 0, fmt.Errorf("field %q is %T, not an integer", key, v)
	}
}

// Decimal parses money-like fields. The API sends prices as strings ("10.50")
// and stock as numbers; both are accepted.
func (it Item) Decimal(key string) (decimal.Decimal, error) {
	switch v := it[key].(type) {
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case nil:
		return decimal.Zero, fmt.Errorf("field %q not present", key)
	default:
		return decimal.Zero, fmt.Errorf("field %q is %T, not a number", key, v)
	}
}

// Time parses timestamp fields such as created_at.
func (it Item) Time(key string) (time.Time, error) {
	s, ok := it[key].(string)
	if !ok || s == "" {
		return time.Time{}, fmt.Errorf("field %q is not a timestamp", key)
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("field %q: unrecognized timestamp %q", key, s)
}

// Object returns a nested object, e.g. the localized "name" map of a product.
func (it Item) Object(key string) Item {
	m, _ := it[key].(map[string]any)
	return Item(m)
}
