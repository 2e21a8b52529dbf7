package tiendanube

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Filters are extra query parameters for List, e.g. since_id or
// created_at_min. time.Time values are sent as ISO-8601 with a numeric offset.
type Filters map[string]any

// ListOptions narrows a List call. A nil *ListOptions sends no query at all.
type ListOptions struct {
	Fields  []string
	Filters Filters
}

func (o *ListOptions) values() url.Values {
	if o == nil {
		return nil
	}
	q := url.Values{}
	for k, v := range o.Filters {
		if isNil(v) {
			continue
		}
		q.Set(k, formatValue(v))
	}
	if len(o.Fields) > 0 {
		q.Set("fields", strings.Join(o.Fields, ","))
	}
	if len(q) == 0 {
		return nil
	}
	return q
}

// FormatTime renders t the way the API expects timestamp filters:
// 2013-01-01T00:00:00+00:00. The offset of t's own location is kept;
// sub-second precision is written as microseconds only when present.
func FormatTime(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format("2006-01-02T15:04:05.000000-07:00")
	}
	return t.Format("2006-01-02T15:04:05-07:00")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return FormatTime(*x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ",")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *time.Time:
		return x == nil
	}
	return false
}
