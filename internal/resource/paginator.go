package resource

// PageCount returns the number of pages needed for total records, never
// below 1 so an empty subset still renders page 1 of 1.
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	count := (total + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	return count
}

// ClampPage bounds a requested page to [1, PageCount(total, pageSize)].
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if max := PageCount(total, pageSize); page > max {
		return max
	}
	return page
}

// PageWindow slices the visible subset down to the requested page. The page
// is clamped rather than allowed to index out of range.
func PageWindow[T any](subset []T, pageSize, page int) []T {
	if pageSize < 1 {
		pageSize = 1
	}
	page = ClampPage(page, len(subset), pageSize)

	start := (page - 1) * pageSize
	if start >= len(subset) {
		return subset[:0]
	}
	end := start + pageSize
	if end > len(subset) {
		end = len(subset)
	}
	return subset[start:end]
}
