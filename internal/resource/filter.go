package resource

import "strings"

// Visible derives the filtered subset of records for the given criteria.
// A record passes when the query is a case-insensitive substring of at
// least one searchable field AND the category field equals the categorical
// criterion exactly. Empty criteria pass everything. Collection order is
// preserved.
func Visible[T Record](records []T, criteria Criteria, schema Schema[T]) []T {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	visible := make([]T, 0, len(records))
	for _, rec := range records {
		if query != "" && !matchesQuery(schema.SearchValues(rec), query) {
			continue
		}
		if criteria.Category != "" && schema.CategoryValue(rec) != criteria.Category {
			continue
		}
		visible = append(visible, rec)
	}
	return visible
}

func matchesQuery(values []string, query string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}
