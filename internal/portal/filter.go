package portal

import (
	"fmt"
	"strings"

	"github.com/staff-portal/internal/domain"
)

// Filter returns the notifications of master whose title or content contains
// query, restricted to category unless it is CategoryAll. master is never
// modified and its order is kept.
func Filter(master []domain.Notification, query string, category domain.Category) []domain.Notification {
	q := normalizeQuery(query)
	out := make([]domain.Notification, 0, len(master))
	for _, n := range master {
		if q != "" &&
			!strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			continue
		}
		if category != domain.CategoryAll && category != "" && n.Type != category {
			continue
		}
		out = append(out, n)
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ResultsInfo is the "showing X of Y" line. It is empty when neither a query
// nor a category restricts the list.
func ResultsInfo(filtered, total int, query string, category domain.Category) string {
	if normalizeQuery(query) == "" && (category == domain.CategoryAll || category == "") {
		return ""
	}
	return fmt.Sprintf("عرض %d من %d إشعار", filtered, total)
}
