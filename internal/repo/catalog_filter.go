package repo

// CatalogFilter narrows catalog listings. The zero value returns everything in
// insertion order.
type CatalogFilter struct {
	AvailableOnly bool
	Category      string
	Offset        *int
	Limit         *int
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
