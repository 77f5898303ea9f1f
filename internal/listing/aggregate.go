package listing

import (
	"sort"

	"vintrack/models"
)

// SortOrder selects how an aggregated listing view is ordered.
type SortOrder string

const (
	// SortByDateDesc orders all listings by last-seen date, newest first.
	// This is the default presentation.
	SortByDateDesc SortOrder = "date"
	// SortByVINThenDate groups listings by VIN value and orders by
	// last-seen date, newest first, within each group.
	SortByVINThenDate SortOrder = "vin"
)

// Aggregate merges per-VIN listing sets into a single ordered sequence.
// Listings with identical ids from separate fetches are not collapsed; the
// normalizer's id and date requirements are the only dedup applied upstream.
func Aggregate(sets [][]models.Listing, order SortOrder) []models.Listing {
	merged := make([]models.Listing, 0)
	for _, set := range sets {
		merged = append(merged, set...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if order == SortByVINThenDate && a.VIN != b.VIN {
			return a.VIN < b.VIN
		}
		return laterDate(a.Date, b.Date)
	})

	return merged
}

// laterDate reports whether date a is more recent than date b. Dates that do
// not parse sort after any date that does.
func laterDate(a, b string) bool {
	ta, errA := ParseListingDate(a)
	tb, errB := ParseListingDate(b)
	switch {
	case errA == nil && errB == nil:
		return ta.After(tb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a > b
	}
}
