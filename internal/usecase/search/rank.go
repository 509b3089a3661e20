package search

import (
	"sort"
	"strings"
	"time"

	"github.com/ansrdlabs/contentd/internal/domain"
)

// rank orders results in place: with a query, title matches form a leading
// partition; within each partition results are date-descending. The sort is
// stable, so the ordering is deterministic regardless of fetch completion
// order.
func rank(results []domain.SearchResult, needle string) {
	sort.SliceStable(results, func(i, j int) bool {
		if needle != "" {
			it := strings.Contains(strings.ToLower(results[i].Title), needle)
			jt := strings.Contains(strings.ToLower(results[j].Title), needle)
			if it != jt {
				return it
			}
		}
		return parseDate(results[i].Date).After(parseDate(results[j].Date))
	})
}

// dateLayouts covers the formats the CMS emits. Unparseable dates sort last.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
