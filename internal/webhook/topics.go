package webhook

import "strings"

// NormalizeEvent turns platform event names into a stable internal form:
// "order/paid" -> "order_paid", "app/uninstalled" -> "app_uninstalled".
func NormalizeEvent(event string) string {
	e := strings.TrimSpace(strings.ToLower(event))
	e = strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(e)
	for strings.Contains(e, "__") {
		e = strings.ReplaceAll(e, "__", "_")
	}
	return strings.Trim(e, "_")
}
