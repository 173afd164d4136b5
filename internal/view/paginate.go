package view

// Pages returns the number of fixed-size pages needed for n items.
func Pages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// PageSlice returns page `page` (1-based) of items. Out-of-range pages are
// clamped to the nearest valid page; an empty list yields an empty slice.
func PageSlice[T any](items []T, pageSize, page int) []T {
	total := Pages(len(items), pageSize)
	if total == 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// HasPrev reports whether a previous page exists.
func HasPrev(page int) bool { return page > 1 }

// HasNext reports whether a next page exists for n items.
func HasNext(n, pageSize, page int) bool { return page < Pages(n, pageSize) }
